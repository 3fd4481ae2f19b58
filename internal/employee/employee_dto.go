package employee

import "time"

const DateLayout = "2006-01-02"

// CreateEmployeeRequest is the raw creation input. Salary is a pointer so that
// a missing value can be told apart from zero.
type CreateEmployeeRequest struct {
	Name       string   `json:"name" validate:"required,min=3"`
	Email      string   `json:"email" validate:"required,email,orgdomain"`
	Department string   `json:"department" validate:"required,department"`
	HireDate   string   `json:"hireDate" validate:"required,calendardate,notpast"`
	Salary     *float64 `json:"salary" validate:"required,min=800,max=10000"`
	Country    string   `json:"country" validate:"required,country"`
}

// CreateEmployeePayload is a request that passed the schema. HireDate is
// normalised to YYYY-MM-DD.
type CreateEmployeePayload struct {
	Name       string
	Email      string
	Department string
	HireDate   string
	Salary     float64
	Country    string
}

type EmployeeResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	HireDate   string    `json:"hireDate"`
	Country    string    `json:"country"`
	Salary     float64   `json:"salary"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID.String(),
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		HireDate:   e.HireDate.Format(DateLayout),
		Country:    e.Country,
		Salary:     e.Salary,
		CreatedAt:  e.CreatedAt,
	}
}
