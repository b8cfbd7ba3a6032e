package shift

import (
	"fmt"
	"time"
)

// WorkShift is a company-defined working window. StartTime and EndTime are wall clock
// times in HH:MM. A night shift may end before it starts, meaning it ends on the next day.
type WorkShift struct {
	ID           string
	CompanyID    string
	Name         string
	StartTime    string
	EndTime      string
	IsNightShift bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ParseClock converts "HH:MM" into the offset since midnight.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// Wraps reports whether the shift crosses midnight.
func (s WorkShift) Wraps() bool {
	start, err1 := ParseClock(s.StartTime)
	end, err2 := ParseClock(s.EndTime)
	if err1 != nil || err2 != nil {
		return false
	}
	return end < start
}

// Duration returns the shift length, adding a day when the shift crosses midnight.
func (s WorkShift) Duration() (time.Duration, error) {
	start, err := ParseClock(s.StartTime)
	if err != nil {
		return 0, err
	}
	end, err := ParseClock(s.EndTime)
	if err != nil {
		return 0, err
	}
	if end < start {
		end += 24 * time.Hour
	}
	return end - start, nil
}

// CheckWindow enforces the shift window rules: start and end differ, and only night
// shifts may end before they start.
func (s WorkShift) CheckWindow() error {
	start, err := ParseClock(s.StartTime)
	if err != nil {
		return err
	}
	end, err := ParseClock(s.EndTime)
	if err != nil {
		return err
	}
	if start == end {
		return ErrInvalidShiftWindow
	}
	if end < start && !s.IsNightShift {
		return ErrInvalidShiftWindow
	}
	return nil
}

// On anchors a wall clock onto the UTC calendar day of date.
func On(date time.Time, clock string) (time.Time, error) {
	offset, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return day.Add(offset), nil
}
