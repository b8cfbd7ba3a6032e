package employee

import "context"

// EmployeeRepository defines data access for employees.
// Every method is scoped by companyID so one tenant never sees another tenant's rows.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter, companyID string) ([]Employee, int64, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, emp Employee) (Employee, error)
	UpdateStatus(ctx context.Context, id string, companyID string, status Status) error
	Delete(ctx context.Context, id string, companyID string) error
	ExistsByEmail(ctx context.Context, companyID string, email string, excludeID *string) (bool, error)
	// HasTimeEntries guards deletion while time entries still reference the employee.
	HasTimeEntries(ctx context.Context, id string, companyID string) (bool, error)
	CountByStatus(ctx context.Context, companyID string) (StatusCounts, error)
	CountByDepartment(ctx context.Context, companyID string) ([]DepartmentCount, error)
}
