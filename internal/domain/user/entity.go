package user

import "time"

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Manages schedules, holidays and time entries
	RoleEmployee Role = "employee" // Regular employee
)

var RoleValues = []string{
	string(RoleOwner),
	string(RoleManager),
	string(RoleEmployee),
}

type User struct {
	ID           string
	CompanyID    string
	EmployeeID   *string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOwner checks if user is company owner
func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}

// IsManager checks if user is manager or owner
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleOwner
}

// RoleCount is the number of users holding a role inside one company.
type RoleCount struct {
	Role  Role  `json:"role"`
	Count int64 `json:"count"`
}
