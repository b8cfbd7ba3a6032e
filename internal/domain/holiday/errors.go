package holiday

import "errors"

var (
	ErrHolidayNotFound = errors.New("holiday not found")
	ErrHolidayExists   = errors.New("a holiday with this name already exists on this date")
	ErrInvalidYear     = errors.New("year must be between 1900 and 2200")
)
