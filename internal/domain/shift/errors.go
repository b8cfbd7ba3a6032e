package shift

import "errors"

var (
	ErrShiftNotFound      = errors.New("work shift not found")
	ErrShiftNameExists    = errors.New("work shift with this name already exists")
	ErrShiftInUse         = errors.New("work shift is referenced by employee schedules")
	ErrInvalidClock       = errors.New("time must be in HH:MM format")
	ErrInvalidShiftWindow = errors.New("end time must differ from start time and may only be earlier for night shifts")
)
