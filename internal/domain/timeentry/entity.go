package timeentry

import "time"

// TimeEntry records an employee's clock-in and clock-out for one calendar day.
// There is at most one entry per (employee, date).
type TimeEntry struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       time.Time
	ClockIn    *time.Time
	ClockOut   *time.Time
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (e TimeEntry) WorkedDuration() *time.Duration {
	if e.ClockIn == nil || e.ClockOut == nil {
		return nil
	}
	d := e.ClockOut.Sub(*e.ClockIn)
	return &d
}
