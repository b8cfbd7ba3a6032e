package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrOwnerAccessRequired     = errors.New("owner access required")
	ErrManagerAccessRequired   = errors.New("manager access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrCompanyIDRequired       = errors.New("company ID is required")
	ErrEmployeeIDRequired      = errors.New("user is not linked to an employee")
)
