package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/attendly/attendance-backend-go/internal/domain/employee"
)

type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

func NewEmployeeRepository(seed ...employee.Employee) *EmployeeRepository {
	r := &EmployeeRepository{employees: make(map[string]employee.Employee)}
	for _, emp := range seed {
		r.employees[emp.ID] = emp
	}
	return r
}

func (r *EmployeeRepository) Add(emp employee.Employee) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.employees[emp.ID] = emp
}

func (r *EmployeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *EmployeeRepository) ListActive(_ context.Context) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []employee.Employee
	for _, emp := range r.employees {
		if emp.Active {
			out = append(out, emp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
