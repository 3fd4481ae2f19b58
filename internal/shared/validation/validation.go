// Package validation wraps go-playground/validator so that every rule set in
// the service reports one human readable message per JSON field.
package validation

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a JSON field name to the message shown next to that field.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	return "Validation failed: " + fe.Join()
}

// Join concatenates the messages. Fields listed in order come first, in that
// order; any remaining fields follow alphabetically.
func (fe FieldErrors) Join(order ...string) string {
	return strings.Join(fe.Messages(order...), ", ")
}

func (fe FieldErrors) Messages(order ...string) []string {
	seen := make(map[string]bool, len(fe))
	msgs := make([]string, 0, len(fe))
	for _, field := range order {
		if msg, ok := fe[field]; ok && !seen[field] {
			msgs = append(msgs, msg)
			seen[field] = true
		}
	}

	rest := make([]string, 0, len(fe))
	for field := range fe {
		if !seen[field] {
			rest = append(rest, field)
		}
	}
	sort.Strings(rest)
	for _, field := range rest {
		msgs = append(msgs, fe[field])
	}
	return msgs
}

// Fields returns the sorted field names.
func (fe FieldErrors) Fields() []string {
	out := make([]string, 0, len(fe))
	for field := range fe {
		out = append(out, field)
	}
	sort.Strings(out)
	return out
}

// Merge copies other into fe without overwriting existing entries.
func (fe FieldErrors) Merge(other FieldErrors) FieldErrors {
	if fe == nil {
		fe = FieldErrors{}
	}
	for field, msg := range other {
		if _, exists := fe[field]; !exists {
			fe[field] = msg
		}
	}
	return fe
}

// Messages is the per field, per tag message table of a rule set.
type Messages map[string]map[string]string

// Lookup returns the message for field and tag, falling back to the
// field's "*" entry and then to "<field> is invalid".
func (m Messages) Lookup(field, tag string) string {
	if byTag, ok := m[field]; ok {
		if msg, ok := byTag[tag]; ok {
			return msg
		}
		if msg, ok := byTag["*"]; ok {
			return msg
		}
	}
	return field + " is invalid"
}

// JSONTagName makes validator report fields by their json name.
func JSONTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// NewValidate returns a validator reporting json field names.
func NewValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(JSONTagName)
	return v
}

// Collect converts the result of validate.Struct into FieldErrors. A nil
// FieldErrors means the input is valid. Errors that are not validation
// failures (for example a nil or non-struct input) are returned as is.
func Collect(err error, msgs Messages) (FieldErrors, error) {
	if err == nil {
		return nil, nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return nil, err
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil, err
	}

	out := make(FieldErrors, len(errs))
	for _, e := range errs {
		if _, exists := out[e.Field()]; exists {
			continue
		}
		out[e.Field()] = msgs.Lookup(e.Field(), e.Tag())
	}
	return out, nil
}

// EmailDomain returns a rule passing when the string ends with suffix, e.g.
// "@rebuhr.com". Empty strings are left to the required rule.
func EmailDomain(suffix string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		if v == "" {
			return true
		}
		return strings.HasSuffix(v, suffix)
	}
}
