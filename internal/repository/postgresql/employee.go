package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, company_id, first_name, last_name, email, department, position, status, hire_date, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.CompanyID,
		&e.FirstName,
		&e.LastName,
		&e.Email,
		&e.Department,
		&e.Position,
		&e.Status,
		&e.HireDate,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND company_id = $2`

	e, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}
	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter, companyID string) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Department != nil && *filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("department = $%d", argIdx))
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM employees WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE %s
		ORDER BY last_name, first_name, id
		LIMIT $%d OFFSET $%d
	`, employeeColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := []employee.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (company_id, first_name, last_name, email, department, position, status, hire_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.CompanyID,
		newEmployee.FirstName,
		newEmployee.LastName,
		newEmployee.Email,
		newEmployee.Department,
		newEmployee.Position,
		newEmployee.Status,
		newEmployee.HireDate,
	))
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET first_name = $1, last_name = $2, email = $3, department = $4, position = $5,
			hire_date = $6, updated_at = NOW()
		WHERE id = $7 AND company_id = $8
		RETURNING ` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query,
		emp.FirstName,
		emp.LastName,
		emp.Email,
		emp.Department,
		emp.Position,
		emp.HireDate,
		emp.ID,
		emp.CompanyID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee with id %s: %w", emp.ID, err)
	}
	return updated, nil
}

// UpdateStatus implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateStatus(ctx context.Context, id string, companyID string, status employee.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET status = $1, updated_at = NOW() WHERE id = $2 AND company_id = $3`, status, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to update employee status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// ExistsByEmail implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsByEmail(ctx context.Context, companyID string, email string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM employees WHERE company_id = $1 AND lower(email) = lower($2)`
	args := []interface{}{companyID, email}
	if excludeID != nil {
		query += ` AND id <> $3`
		args = append(args, *excludeID)
	}
	query += `)`

	var exists bool
	if err := q.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check employee email: %w", err)
	}
	return exists, nil
}

// HasTimeEntries implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) HasTimeEntries(ctx context.Context, id string, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM time_entries WHERE employee_id = $1 AND company_id = $2)`,
		id, companyID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check time entries for employee %s: %w", id, err)
	}
	return exists, nil
}

// CountByStatus implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CountByStatus(ctx context.Context, companyID string) (employee.StatusCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'ACTIVE' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'INACTIVE' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'SUSPENDED' THEN 1 ELSE 0 END), 0)
		FROM employees
		WHERE company_id = $1
	`

	var c employee.StatusCounts
	if err := q.QueryRow(ctx, query, companyID).Scan(&c.Total, &c.Active, &c.Inactive, &c.Suspended); err != nil {
		return employee.StatusCounts{}, fmt.Errorf("failed to count employees by status: %w", err)
	}
	return c, nil
}

// CountByDepartment implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CountByDepartment(ctx context.Context, companyID string) ([]employee.DepartmentCount, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT COALESCE(department, ''), COUNT(*)
		FROM employees
		WHERE company_id = $1 AND status = 'ACTIVE'
		GROUP BY COALESCE(department, '')
		ORDER BY COUNT(*) DESC, 1
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees by department: %w", err)
	}
	defer rows.Close()

	counts := []employee.DepartmentCount{}
	for rows.Next() {
		var dc employee.DepartmentCount
		if err := rows.Scan(&dc.Department, &dc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan department count: %w", err)
		}
		counts = append(counts, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate department counts: %w", err)
	}
	return counts, nil
}
