package employee

import "time"

type Employee struct {
	ID         string
	CompanyID  string
	FirstName  string
	LastName   string
	Email      *string
	Department *string
	Position   *string
	Status     Status
	HireDate   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FullName joins first and last name.
func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusInactive  Status = "INACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

var StatusValues = []string{
	string(StatusActive),
	string(StatusInactive),
	string(StatusSuspended),
}

// StatusCounts holds the number of employees per status for one company.
type StatusCounts struct {
	Total     int64
	Active    int64
	Inactive  int64
	Suspended int64
}

// DepartmentCount is the number of employees in one department.
// Employees without a department are grouped under an empty name.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}
