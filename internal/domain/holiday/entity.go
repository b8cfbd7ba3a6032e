package holiday

import "time"

type Holiday struct {
	ID          string
	CompanyID   string
	Name        string
	Date        time.Time // calendar day, stored at UTC midnight
	Description *string
	IsRecurring bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProjectTo returns the holiday's date moved to year, keeping month and day.
// ok is false when the date does not exist in that year (Feb 29 outside leap years).
func (h Holiday) ProjectTo(year int) (time.Time, bool) {
	projected := time.Date(year, h.Date.Month(), h.Date.Day(), 0, 0, 0, 0, time.UTC)
	if projected.Month() != h.Date.Month() {
		return time.Time{}, false
	}
	return projected, true
}

// Counts summarises a company's holiday calendar.
type Counts struct {
	ThisYear int64
	Upcoming int64
}
