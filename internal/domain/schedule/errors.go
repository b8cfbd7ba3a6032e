package schedule

import "errors"

var (
	ErrInvalidDayOfWeek  = errors.New("day of week must be between 0 (Sunday) and 6 (Saturday)")
	ErrDuplicateDay      = errors.New("day of week appears more than once")
	ErrShiftRequired     = errors.New("work days require a work shift")
	ErrShiftNotAllowed   = errors.New("non-work days cannot reference a work shift")
	ErrInactiveWorkShift = errors.New("work shift is inactive")
)
