package timeentry

import "errors"

var (
	ErrTimeEntryNotFound     = errors.New("time entry not found")
	ErrTimeEntryExists       = errors.New("time entry already exists for this employee and date")
	ErrClockOutBeforeClockIn = errors.New("clock out must be after clock in")
	ErrAlreadyClockedIn      = errors.New("already clocked in today")
	ErrNotClockedIn          = errors.New("not clocked in today")
	ErrAlreadyClockedOut     = errors.New("already clocked out today")
	ErrEmployeeNotActive     = errors.New("employee is not active")
)
