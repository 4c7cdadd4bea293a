package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type EmployeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	var emp employee.Employee
	err := r.db.QueryRow(ctx, `
		SELECT id, full_name, active, created_at
		FROM employees
		WHERE id = $1
	`, id).Scan(&emp.ID, &emp.FullName, &emp.Active, &emp.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if err != nil {
		return employee.Employee{}, fmt.Errorf("get employee by id: %w", err)
	}

	return emp, nil
}

func (r *EmployeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, full_name, active, created_at
		FROM employees
		WHERE active = true
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(&emp.ID, &emp.FullName, &emp.Active, &emp.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}

	return employees, nil
}
