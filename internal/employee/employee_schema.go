package employee

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
	"time"

	employeeerrors "github.com/geraldDev01/onboarding-dashboard/internal/employee/errors"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/clock"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/validation"

	"github.com/go-playground/validator/v10"
)

const (
	SalaryMin     = 800
	SalaryMax     = 10000
	SalaryStep    = 100
	DefaultSalary = 3000

	DefaultDepartment = "Engineering"
	DefaultCountry    = "El Salvador"
)

var Departments = []string{
	"Engineering",
	"Marketing",
	"Sales",
	"Human Resources",
	"Finance",
	"Operations",
	"Customer Support",
	"Product Management",
	"Design",
	"Legal",
}

var Countries = []string{
	"El Salvador",
	"Guatemala",
	"Nicaragua",
	"Honduras",
	"Costa Rica",
	"Panamá",
}

// FieldOrder is the order fields appear on the form and in joined messages.
var FieldOrder = []string{"name", "email", "department", "hireDate", "salary", "country"}

// Schema validates employee creation input. The only impure input is the
// clock, which decides what "today" means for the hire date rule.
type Schema struct {
	validate *validator.Validate
	messages validation.Messages
	clock    clock.Clock
}

func NewSchema(orgDomain string, clk clock.Clock) *Schema {
	s := &Schema{clock: clk}

	v := validation.NewValidate()
	_ = v.RegisterValidation("orgdomain", validation.EmailDomain(orgDomain))
	_ = v.RegisterValidation("department", oneOf(Departments))
	_ = v.RegisterValidation("country", oneOf(Countries))
	_ = v.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
		_, ok := ParseDate(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("notpast", func(fl validator.FieldLevel) bool {
		d, ok := ParseDate(fl.Field().String())
		if !ok {
			return false
		}
		return !s.onDay(d).Before(clock.Today(s.clock))
	})
	s.validate = v

	s.messages = validation.Messages{
		"name": {
			"required": "Full name is required",
			"min":      "Name must have at least 3 characters",
			"type":     "Full name must be text",
		},
		"email": {
			"required":  "Email is required",
			"email":     "Invalid email format",
			"orgdomain": "Email must use the domain " + orgDomain,
			"type":      "Invalid email format",
		},
		"department": {"*": "Must select a department"},
		"country":    {"*": "Must select a country"},
		"hireDate": {
			"required":     "Hire date is required",
			"calendardate": "Hire date must be a valid date",
			"notpast":      "Hire date cannot be before today",
			"type":         "Hire date must be a valid date",
		},
		"salary": {
			"required": "Salary is required",
			"min":      "Minimum salary is $800",
			"max":      "Maximum salary is $10,000",
			"type":     "Salary must be a number",
		},
	}
	return s
}

// Today is the reference day of the hire date rule, as YYYY-MM-DD.
func (s *Schema) Today() string {
	return clock.Today(s.clock).Format(DateLayout)
}

// Validate returns the normalised payload, or the field errors when req is
// not acceptable. A nil FieldErrors means success.
func (s *Schema) Validate(req CreateEmployeeRequest) (CreateEmployeePayload, validation.FieldErrors) {
	fe, err := validation.Collect(s.validate.Struct(req), s.messages)
	if err != nil {
		// Struct only fails this way for non-struct input.
		panic(err)
	}
	if len(fe) > 0 {
		return CreateEmployeePayload{}, fe
	}

	d, _ := ParseDate(req.HireDate)
	return CreateEmployeePayload{
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		HireDate:   d.Format(DateLayout),
		Salary:     *req.Salary,
		Country:    req.Country,
	}, nil
}

// Decode reads a JSON object into a request. Anything that is not a JSON
// object yields ErrMalformedInput. Fields of the wrong JSON type are left
// empty and reported in the returned FieldErrors; null counts as absent.
func (s *Schema) Decode(raw []byte) (CreateEmployeeRequest, validation.FieldErrors, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return CreateEmployeeRequest{}, nil, employeeerrors.ErrMalformedInput
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return CreateEmployeeRequest{}, nil, employeeerrors.ErrMalformedInput
	}

	var req CreateEmployeeRequest
	typeErrs := validation.FieldErrors{}

	strField := func(name string, dst *string) {
		v, ok := fields[name]
		if !ok || isNull(v) {
			return
		}
		if err := json.Unmarshal(v, dst); err != nil {
			typeErrs[name] = s.messages.Lookup(name, "type")
		}
	}
	strField("name", &req.Name)
	strField("email", &req.Email)
	strField("department", &req.Department)
	strField("hireDate", &req.HireDate)
	strField("country", &req.Country)

	if v, ok := fields["salary"]; ok && !isNull(v) {
		var f float64
		if err := json.Unmarshal(v, &f); err != nil {
			typeErrs["salary"] = s.messages.Lookup("salary", "type")
		} else {
			req.Salary = &f
		}
	}

	if len(typeErrs) == 0 {
		typeErrs = nil
	}
	return req, typeErrs, nil
}

// Parse is Decode followed by Validate. Type errors win over the rule that the
// emptied field would otherwise break.
func (s *Schema) Parse(raw []byte) (CreateEmployeeRequest, CreateEmployeePayload, validation.FieldErrors, error) {
	req, typeErrs, err := s.Decode(raw)
	if err != nil {
		return CreateEmployeeRequest{}, CreateEmployeePayload{}, nil, err
	}

	payload, fe := s.Validate(req)
	if typeErrs != nil {
		return req, CreateEmployeePayload{}, typeErrs.Merge(fe), nil
	}
	return req, payload, fe, nil
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp, whose calendar date
// is kept as written. The result is midnight UTC.
func ParseDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, v); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

func (s *Schema) onDay(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, s.clock.Now().Location())
}

func oneOf(options []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(options, fl.Field().String())
	}
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
