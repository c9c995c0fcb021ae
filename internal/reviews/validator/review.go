package validator

import (
	"stayspot/pkg/model"
	"stayspot/pkg/validation"
)

var reviewMessages = validation.Messages{
	"review": "Review text is required",
	"stars":  "Stars must be an integer from 1 to 5",
}

type ReviewValidator struct {
	v *validation.Validator
}

func NewReviewValidator() *ReviewValidator {
	return &ReviewValidator{v: validation.New()}
}

func (v *ReviewValidator) Validate(in *model.ReviewInput) (map[string]string, error) {
	return v.v.Struct(in, reviewMessages)
}
