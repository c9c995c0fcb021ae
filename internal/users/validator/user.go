package validator

import (
	"stayspot/pkg/model"
	"stayspot/pkg/validation"
)

var signupMessages = validation.Messages{
	"email":              "Invalid email",
	"username.required":  "Username is required",
	"username.min":       "Username must be between 4 and 30 characters",
	"username.max":       "Username must be between 4 and 30 characters",
	"username.not_email": "Username cannot be an email",
	"firstName":          "First Name is required",
	"firstName.max":      "First Name must be at most 100 characters",
	"lastName":           "Last Name is required",
	"lastName.max":       "Last Name must be at most 100 characters",
	"password":           "Password must be 6 characters or more",
	"password.max":       "Password must be at most 72 characters",
}

var loginMessages = validation.Messages{
	"credential": "Email or username is required",
	"password":   "Password is required",
}

type UserValidator struct {
	v *validation.Validator
}

func NewUserValidator() *UserValidator {
	return &UserValidator{v: validation.New()}
}

// ValidateSignup returns the failing fields of req, or nil.
func (v *UserValidator) ValidateSignup(req *model.SignupRequest) (map[string]string, error) {
	return v.v.Struct(req, signupMessages)
}

func (v *UserValidator) ValidateLogin(req *model.LoginRequest) (map[string]string, error) {
	return v.v.Struct(req, loginMessages)
}
