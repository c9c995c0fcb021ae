package validator

import (
	"stayspot/pkg/model"
	"stayspot/pkg/validation"
)

var imageMessages = validation.Messages{
	"url.required": "Url is required",
	"url.http_url": "Url must be a valid http or https URL",
	"url.max":      "Url must be at most 2048 characters",
}

type ImageValidator struct {
	v *validation.Validator
}

func NewImageValidator() *ImageValidator {
	return &ImageValidator{v: validation.New()}
}

func (v *ImageValidator) ValidateSpotImage(in *model.SpotImageInput) (map[string]string, error) {
	return v.v.Struct(in, imageMessages)
}

func (v *ImageValidator) ValidateReviewImage(in *model.ReviewImageInput) (map[string]string, error) {
	return v.v.Struct(in, imageMessages)
}
