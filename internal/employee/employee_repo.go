package employee

import (
	"context"
	"sync"

	employeeerrors "github.com/geraldDev01/onboarding-dashboard/internal/employee/errors"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, e *Employee) error
	// FindAll returns every employee, most recently created first.
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
}

// memoryRepository keeps employees for the life of the process.
type memoryRepository struct {
	mu        sync.RWMutex
	employees []Employee
}

func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, e *Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.employees = append([]Employee{*e}, r.employees...)
	return nil
}

func (r *memoryRepository) FindAll(_ context.Context) ([]Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Employee, len(r.employees))
	copy(out, r.employees)
	return out, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (*Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.employees {
		if r.employees[i].ID.String() == id {
			e := r.employees[i]
			return &e, nil
		}
	}
	return nil, employeeerrors.ErrEmployeeNotFound
}
