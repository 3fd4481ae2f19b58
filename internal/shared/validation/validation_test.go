package validation_test

import (
	"testing"

	"github.com/geraldDev01/onboarding-dashboard/internal/shared/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" validate:"required,min=3"`
	Email string `json:"email" validate:"required,email,orgdomain"`
}

var sampleMessages = validation.Messages{
	"name": {
		"required": "Name is required",
		"min":      "Name is too short",
	},
	"email": {
		"*":         "Email is wrong",
		"orgdomain": "Email must use @acme.io",
	},
}

func newValidate(t *testing.T) func(any) error {
	t.Helper()
	v := validation.NewValidate()
	require.NoError(t, v.RegisterValidation("orgdomain", validation.EmailDomain("@acme.io")))
	return v.Struct
}

func TestCollect(t *testing.T) {
	validate := newValidate(t)

	t.Run("valid input", func(t *testing.T) {
		fe, err := validation.Collect(validate(sample{Name: "Jane", Email: "jane@acme.io"}), sampleMessages)
		assert.NoError(t, err)
		assert.Nil(t, fe)
	})

	t.Run("messages keyed by json name", func(t *testing.T) {
		fe, err := validation.Collect(validate(sample{Name: "Jo", Email: "jo@gmail.com"}), sampleMessages)
		require.NoError(t, err)
		assert.Equal(t, validation.FieldErrors{
			"name":  "Name is too short",
			"email": "Email must use @acme.io",
		}, fe)
	})

	t.Run("wildcard message", func(t *testing.T) {
		fe, err := validation.Collect(validate(sample{Name: "Jane", Email: "not-an-email"}), sampleMessages)
		require.NoError(t, err)
		assert.Equal(t, "Email is wrong", fe["email"])
	})

	t.Run("non struct input is an error", func(t *testing.T) {
		fe, err := validation.Collect(validate(42), sampleMessages)
		assert.Error(t, err)
		assert.Nil(t, fe)
	})
}

func TestFieldErrors_Join(t *testing.T) {
	fe := validation.FieldErrors{
		"salary": "Minimum salary is $800",
		"email":  "Invalid email format",
		"name":   "Full name is required",
	}

	assert.Equal(t, "Full name is required, Invalid email format, Minimum salary is $800", fe.Join("name", "email"))
	assert.Equal(t, "Validation failed: Invalid email format, Full name is required, Minimum salary is $800", fe.Error())
	assert.Equal(t, []string{"email", "name", "salary"}, fe.Fields())
}
