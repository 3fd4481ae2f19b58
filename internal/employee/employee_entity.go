package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"not null"`
	Email      string    `gorm:"not null;index"`
	Department string    `gorm:"not null"`
	Country    string    `gorm:"not null"`
	HireDate   time.Time `gorm:"type:date;not null"`
	// numeric without a scale keeps every decimal the schema accepted
	Salary     float64   `gorm:"type:numeric;not null"`
	CreatedAt  time.Time `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
