package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	ListEmployees(ctx context.Context, companyID string, filter EmployeeFilter) (ListEmployeeResponse, error)
	GetEmployee(ctx context.Context, companyID string, id string) (EmployeeResponse, error)
	CreateEmployee(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, companyID string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	ChangeStatus(ctx context.Context, companyID string, req ChangeStatusRequest) (EmployeeResponse, error)
	// DeleteEmployee refuses to remove employees that still have time entries.
	DeleteEmployee(ctx context.Context, companyID string, id string) error
}
