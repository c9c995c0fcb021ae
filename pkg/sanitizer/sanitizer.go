package sanitizer

import "math"

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

// Round rounds half away from zero to the given number of decimals.
func Round(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}

func RoundCoordinate(value float64) float64 {
	return Round(value, 7)
}

func RoundPrice(value float64) float64 {
	return Round(value, 2)
}
