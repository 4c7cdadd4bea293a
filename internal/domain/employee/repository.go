package employee

import (
	"context"
	"errors"
)

var ErrEmployeeNotFound = errors.New("employee not found")

// Repository is a read-only view of the employee directory.
type Repository interface {
	// GetByID retrieves a single employee, ErrEmployeeNotFound when missing.
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListActive returns all active employees.
	ListActive(ctx context.Context) ([]Employee, error)
}
