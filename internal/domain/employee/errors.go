package employee

import "errors"

var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrEmailExists            = errors.New("email already registered in this company")
	ErrInvalidStatus          = errors.New("status must be ACTIVE, INACTIVE or SUSPENDED")
	ErrStatusUnchanged        = errors.New("employee already has this status")
	ErrEmployeeHasTimeEntries = errors.New("employee has time entries and cannot be deleted")
)
