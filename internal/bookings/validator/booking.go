package validator

import (
	"stayspot/pkg/model"
	"stayspot/pkg/validation"
	"strings"
)

const messageDateFormat = " must be a date formatted YYYY-MM-DD"

var bookingMessages = validation.Messages{
	"startDate": "startDate is required",
	"endDate":   "endDate is required",
}

type BookingValidator struct {
	v *validation.Validator
}

func NewBookingValidator() *BookingValidator {
	return &BookingValidator{v: validation.New()}
}

// Validate checks presence and parses both dates, reporting every bad field.
// The dates are only meaningful when fields is nil.
func (v *BookingValidator) Validate(in *model.BookingInput) (start, end model.Date, fields map[string]string, err error) {
	in.StartDate = strings.TrimSpace(in.StartDate)
	in.EndDate = strings.TrimSpace(in.EndDate)

	fields, err = v.v.Struct(in, bookingMessages)
	if err != nil {
		return start, end, nil, err
	}

	parse := func(field, value string) model.Date {
		if _, reported := fields[field]; reported {
			return model.Date{}
		}
		d, perr := model.ParseDate(value)
		if perr != nil {
			fields = validation.Merge(fields, map[string]string{field: field + messageDateFormat})
		}
		return d
	}
	start = parse("startDate", in.StartDate)
	end = parse("endDate", in.EndDate)
	return start, end, fields, nil
}
