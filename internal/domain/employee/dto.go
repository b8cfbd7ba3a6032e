package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
)

type EmployeeFilter struct {
	Status     *string
	Department *string
	Search     *string
	Page       int
	Limit      int
}

// Normalize applies paging defaults.
func (f *EmployeeFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.Status != nil && !validator.IsInSlice(*f.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: ErrInvalidStatus.Error(),
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateEmployeeRequest struct {
	FirstName  string  `json:"first_name" validate:"required,max=100"`
	LastName   string  `json:"last_name" validate:"max=100"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=100"`
	Position   *string `json:"position,omitempty" validate:"omitempty,max=100"`
	Status     string  `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED"`
	HireDate   *string `json:"hire_date,omitempty" validate:"omitempty,date"`
}

// Validate trims the names and email before checking them.
func (r *CreateEmployeeRequest) Validate() error {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = trimOptional(r.Email)
	return validator.Struct(r)
}

type UpdateEmployeeRequest struct {
	ID         string  `json:"-"`
	FirstName  string  `json:"first_name" validate:"required,max=100"`
	LastName   string  `json:"last_name" validate:"max=100"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=100"`
	Position   *string `json:"position,omitempty" validate:"omitempty,max=100"`
	HireDate   *string `json:"hire_date,omitempty" validate:"omitempty,date"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = trimOptional(r.Email)
	return validator.Struct(r)
}

// trimOptional trims s and maps a blank value to nil.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type ChangeStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status" validate:"required,oneof=ACTIVE INACTIVE SUSPENDED"`
}

func (r *ChangeStatusRequest) Validate() error {
	return validator.Struct(r)
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	FullName   string  `json:"full_name"`
	Email      *string `json:"email,omitempty"`
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
	Status     string  `json:"status"`
	HireDate   *string `json:"hire_date,omitempty"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}

// ToResponse converts the entity into its API representation.
func ToResponse(e Employee) EmployeeResponse {
	var hireDate *string
	if e.HireDate != nil {
		s := e.HireDate.Format("2006-01-02")
		hireDate = &s
	}
	return EmployeeResponse{
		ID:         e.ID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		FullName:   e.FullName(),
		Email:      e.Email,
		Department: e.Department,
		Position:   e.Position,
		Status:     string(e.Status),
		HireDate:   hireDate,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  e.UpdatedAt.Format(time.RFC3339),
	}
}
