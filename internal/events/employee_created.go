package events

import "time"

const (
	EmployeeCreatedTopic = "onboarding.employee.created.v1"
	EmployeeCreatedType  = "employee.created"
)

type EmployeeCreatedEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Country    string    `json:"country"`
	HireDate   string    `json:"hire_date"`
	CreatedBy  string    `json:"created_by,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
