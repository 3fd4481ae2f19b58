package form

import (
	"math"
	"strconv"
	"strings"

	"github.com/geraldDev01/onboarding-dashboard/internal/employee"
	formerrors "github.com/geraldDev01/onboarding-dashboard/internal/employee/form/errors"
)

type Kind string

const (
	KindText         Kind = "text"
	KindEnumSelect   Kind = "enumSelect"
	KindDate         Kind = "date"
	KindNumericRange Kind = "numericRange"
)

// Field describes one input of the employee form. Which of the optional
// attributes matter depends on Kind.
type Field struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Kind        Kind     `json:"kind"`
	InputType   string   `json:"inputType,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Helper      string   `json:"helper,omitempty"`
	Options     []string `json:"options,omitempty"`
	Min         float64  `json:"min,omitempty"`
	Max         float64  `json:"max,omitempty"`
	Step        float64  `json:"step,omitempty"`
	Marks       []Mark   `json:"marks,omitempty"`
}

type Mark struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// Fields lists the form inputs in display order.
func Fields(orgDomain string) []Field {
	return []Field{
		{
			Name:        "name",
			Label:       "Full name",
			Kind:        KindText,
			InputType:   "text",
			Placeholder: "John Doe",
			Helper:      "Minimum 3 characters",
		},
		{
			Name:        "email",
			Label:       "Corporate email",
			Kind:        KindText,
			InputType:   "email",
			Placeholder: "john.doe" + orgDomain,
			Helper:      "Must use the " + orgDomain + " domain",
		},
		{
			Name:    "department",
			Label:   "Department",
			Kind:    KindEnumSelect,
			Helper:  "Select the employee's department",
			Options: employee.Departments,
		},
		{
			Name:    "country",
			Label:   "Country",
			Kind:    KindEnumSelect,
			Helper:  "Select the employee's country",
			Options: employee.Countries,
		},
		{
			Name:        "hireDate",
			Label:       "Hire date",
			Kind:        KindDate,
			Placeholder: "Select the hire date",
			Helper:      "Cannot be before today",
		},
		{
			Name:  "salary",
			Label: "Monthly salary",
			Kind:  KindNumericRange,
			Min:   employee.SalaryMin,
			Max:   employee.SalaryMax,
			Step:  employee.SalaryStep,
			Marks: []Mark{
				{Value: 800, Label: "$800"},
				{Value: 4000, Label: "$4,000"},
				{Value: 8000, Label: "$8,000"},
				{Value: 10000, Label: "$10,000"},
			},
		},
	}
}

// parse turns raw input into the canonical text kept by the form. Only the
// shape is checked here; the schema owns the rules.
func (f Field) parse(raw string) (string, error) {
	switch f.Kind {
	case KindText:
		return raw, nil
	case KindEnumSelect, KindDate:
		return strings.TrimSpace(raw), nil
	case KindNumericRange:
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return "", nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return "", formerrors.ErrInvalidValue
		}
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", formerrors.ErrUnknownField
	}
}

func fieldByName(fields []Field, name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
