package auth

import (
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/validation"

	"github.com/go-playground/validator/v10"
)

// LoginSchema checks the shape of login input before credentials are looked at.
type LoginSchema struct {
	validate *validator.Validate
	messages validation.Messages
}

func NewLoginSchema(orgDomain string) *LoginSchema {
	v := validation.NewValidate()
	_ = v.RegisterValidation("orgdomain", validation.EmailDomain(orgDomain))

	return &LoginSchema{
		validate: v,
		messages: validation.Messages{
			"email": {
				"required":  "Email is required",
				"email":     "Please enter a valid email address",
				"orgdomain": "Email must use " + orgDomain + " domain",
			},
			"password": {
				"required": "Password is required",
				"min":      "Password must be at least 6 characters",
			},
		},
	}
}

// Validate returns the payload and a nil FieldErrors when req is acceptable.
func (s *LoginSchema) Validate(req LoginRequest) (LoginPayload, validation.FieldErrors) {
	fe, err := validation.Collect(s.validate.Struct(req), s.messages)
	if err != nil {
		// Struct only fails this way for non-struct input.
		panic(err)
	}
	if len(fe) > 0 {
		return LoginPayload{}, fe
	}
	return LoginPayload{Email: req.Email, Password: req.Password}, nil
}
