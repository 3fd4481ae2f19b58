package employee

import (
	"context"

	"gorm.io/gorm"
)

type gormRepository struct {
	db *gorm.DB
}

// NewGormRepository stores employees in the employees table.
func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, e *Employee) error {
	return mapRepositoryError(r.db.WithContext(ctx).Create(e).Error)
}

func (r *gormRepository) FindAll(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&employees).Error
	return employees, mapRepositoryError(err)
}

func (r *gormRepository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, mapRepositoryError(err)
	}
	return &e, nil
}
