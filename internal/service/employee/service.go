package employee

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

func parseHireDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	d, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &d
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*email)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, companyID string, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	filter.Normalize()
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter, companyID)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.ToResponse(emp))
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Employees:  responses,
	}, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, companyID string, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	email := normalizeEmail(req.Email)
	if email != nil {
		exists, err := s.employeeRepo.ExistsByEmail(ctx, companyID, *email, nil)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		if exists {
			return employee.EmployeeResponse{}, employee.ErrEmailExists
		}
	}

	status := employee.StatusActive
	if req.Status != "" {
		status = employee.Status(req.Status)
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		CompanyID:  companyID,
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Email:      email,
		Department: req.Department,
		Position:   req.Position,
		Status:     status,
		HireDate:   parseHireDate(req.HireDate),
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, companyID string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.employeeRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	email := normalizeEmail(req.Email)
	if email != nil {
		exists, err := s.employeeRepo.ExistsByEmail(ctx, companyID, *email, &req.ID)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		if exists {
			return employee.EmployeeResponse{}, employee.ErrEmailExists
		}
	}

	current.FirstName = strings.TrimSpace(req.FirstName)
	current.LastName = strings.TrimSpace(req.LastName)
	current.Email = email
	current.Department = req.Department
	current.Position = req.Position
	current.HireDate = parseHireDate(req.HireDate)

	updated, err := s.employeeRepo.Update(ctx, current)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(updated), nil
}

// ChangeStatus implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ChangeStatus(ctx context.Context, companyID string, req employee.ChangeStatusRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.employeeRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	status := employee.Status(req.Status)
	if current.Status == status {
		return employee.EmployeeResponse{}, employee.ErrStatusUnchanged
	}

	if err := s.employeeRepo.UpdateStatus(ctx, req.ID, companyID, status); err != nil {
		return employee.EmployeeResponse{}, err
	}
	current.Status = status
	current.UpdatedAt = time.Now()
	return employee.ToResponse(current), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, companyID string, id string) error {
	if _, err := s.employeeRepo.GetByID(ctx, id, companyID); err != nil {
		return err
	}

	hasEntries, err := s.employeeRepo.HasTimeEntries(ctx, id, companyID)
	if err != nil {
		return err
	}
	if hasEntries {
		return employee.ErrEmployeeHasTimeEntries
	}

	if err := s.employeeRepo.Delete(ctx, id, companyID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}
