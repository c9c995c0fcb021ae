package validator

import (
	"stayspot/pkg/model"
	"stayspot/pkg/validation"
)

var spotMessages = validation.Messages{
	"address":     "Street address is required",
	"city":        "City is required",
	"state":       "State is required",
	"country":     "Country is required",
	"lat":         "Latitude is not valid",
	"lng":         "Longitude is not valid",
	"name":        "Name is required",
	"name.max":    "Name must be less than 50 characters",
	"description": "Description is required",
	"price":       "Price per day is required",
	"price.min":   "Price per day must be more than $0",
}

type SpotValidator struct {
	v *validation.Validator
}

func NewSpotValidator() *SpotValidator {
	return &SpotValidator{v: validation.New()}
}

// Validate returns every failing field of in, or nil.
func (v *SpotValidator) Validate(in *model.SpotInput) (map[string]string, error) {
	return v.v.Struct(in, spotMessages)
}
