// Package filter parses the query string of the public spot search.
package filter

import (
	"math"
	"net/url"
	apperrors "stayspot/pkg/errors"
	"stayspot/pkg/validation"
	"strconv"
	"strings"
)

const (
	ParamPage     = "page"
	ParamSize     = "size"
	ParamMinLat   = "minLat"
	ParamMaxLat   = "maxLat"
	ParamMinLng   = "minLng"
	ParamMaxLng   = "maxLng"
	ParamMinPrice = "minPrice"
	ParamMaxPrice = "maxPrice"
)

const (
	DefaultPage = 1
	DefaultSize = 20
	MaxSize     = 20
	MaxPage     = 10
)

type Limits struct {
	DefaultSize int
	MaxSize     int
	MaxPage     int
}

func DefaultLimits() Limits {
	return Limits{
		DefaultSize: DefaultSize,
		MaxSize:     MaxSize,
		MaxPage:     MaxPage,
	}
}

// Range is an inclusive bound on one attribute. Either end may be open.
type Range struct {
	Min *float64
	Max *float64
}

func (r Range) IsSet() bool {
	return r.Min != nil || r.Max != nil
}

type Filter struct {
	Page  int
	Size  int
	Lat   Range
	Lng   Range
	Price Range
}

func (f Filter) Offset() int64 {
	return int64(f.Size) * int64(f.Page-1)
}

// bounds holds the parsed numeric parameters for the range checks.
type bounds struct {
	MinLat   *float64 `json:"minLat" validate:"omitnil,gte=-90,lte=90"`
	MaxLat   *float64 `json:"maxLat" validate:"omitnil,gte=-90,lte=90"`
	MinLng   *float64 `json:"minLng" validate:"omitnil,gte=-180,lte=180"`
	MaxLng   *float64 `json:"maxLng" validate:"omitnil,gte=-180,lte=180"`
	MinPrice *float64 `json:"minPrice" validate:"omitnil,gte=0"`
	MaxPrice *float64 `json:"maxPrice" validate:"omitnil,gte=0"`
}

var boundMessages = validation.Messages{
	ParamMinLat:   "Minimum latitude is invalid",
	ParamMaxLat:   "Maximum latitude is invalid",
	ParamMinLng:   "Minimum longitude is invalid",
	ParamMaxLng:   "Maximum longitude is invalid",
	ParamMinPrice: "Minimum price must be greater than or equal to 0",
	ParamMaxPrice: "Maximum price must be greater than or equal to 0",
}

type pair struct {
	min, max       *float64
	minParam       string
	maxParam       string
	minMsg, maxMsg string
}

var checker = validation.New()

// Parse reads every search parameter and reports all problems at once.
// Page and size above the limits are clamped, not rejected.
func Parse(q url.Values, limits Limits) (Filter, error) {
	fields := map[string]string{}
	f := Filter{
		Page: DefaultPage,
		Size: limits.DefaultSize,
	}

	if page, ok := parseCount(q, ParamPage); ok {
		f.Page = min(page, limits.MaxPage)
	} else {
		fields[ParamPage] = "Page must be greater than or equal to 1"
	}
	if size, ok := parseCount(q, ParamSize); ok {
		f.Size = min(size, limits.MaxSize)
	} else {
		fields[ParamSize] = "Size must be greater than or equal to 1"
	}
	if f.Page == 0 {
		f.Page = DefaultPage
	}
	if f.Size == 0 {
		f.Size = limits.DefaultSize
	}

	var b bounds
	numbers := []struct {
		param string
		dst   **float64
	}{
		{ParamMinLat, &b.MinLat},
		{ParamMaxLat, &b.MaxLat},
		{ParamMinLng, &b.MinLng},
		{ParamMaxLng, &b.MaxLng},
		{ParamMinPrice, &b.MinPrice},
		{ParamMaxPrice, &b.MaxPrice},
	}
	for _, n := range numbers {
		v, ok := parseNumber(q, n.param)
		if !ok {
			fields[n.param] = n.param + " must be a number"
			continue
		}
		*n.dst = v
	}

	rangeErrs, err := checker.Struct(b, boundMessages)
	if err != nil {
		return Filter{}, apperrors.Internal("Failed to validate query", err)
	}
	fields = validation.Merge(fields, rangeErrs)

	pairs := []pair{
		{b.MinLat, b.MaxLat, ParamMinLat, ParamMaxLat,
			"Minimum latitude cannot be greater than maximum latitude",
			"Maximum latitude cannot be less than minimum latitude"},
		{b.MinLng, b.MaxLng, ParamMinLng, ParamMaxLng,
			"Minimum longitude cannot be greater than maximum longitude",
			"Maximum longitude cannot be less than minimum longitude"},
		{b.MinPrice, b.MaxPrice, ParamMinPrice, ParamMaxPrice,
			"Minimum price cannot be greater than maximum price",
			"Maximum price cannot be less than minimum price"},
	}
	for _, p := range pairs {
		if p.min != nil && p.max != nil && *p.min > *p.max {
			fields = validation.Merge(fields, map[string]string{
				p.minParam: p.minMsg,
				p.maxParam: p.maxMsg,
			})
		}
	}

	if len(fields) > 0 {
		return Filter{}, apperrors.Validation(fields)
	}

	f.Lat = Range{Min: b.MinLat, Max: b.MaxLat}
	f.Lng = Range{Min: b.MinLng, Max: b.MaxLng}
	f.Price = Range{Min: b.MinPrice, Max: b.MaxPrice}
	return f, nil
}

// parseCount returns 0, true when the parameter is absent.
func parseCount(q url.Values, param string) (int, bool) {
	raw := strings.TrimSpace(q.Get(param))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// parseNumber returns nil, true when the parameter is absent.
func parseNumber(q url.Values, param string) (*float64, bool) {
	raw := strings.TrimSpace(q.Get(param))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	return &v, true
}
