package schedule

import (
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/shift"
)

var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Schedule is one day of an employee's weekly pattern. DayOfWeek follows time.Weekday,
// so 0 is Sunday.
type Schedule struct {
	ID          string
	EmployeeID  string
	DayOfWeek   int
	IsWorkDay   bool
	WorkShiftID *string
	WorkShift   *shift.WorkShift
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func DayName(day int) string {
	if day < 0 || day > 6 {
		return ""
	}
	return dayNames[day]
}

// RosterEmployee is an active employee together with the full weekly schedule.
type RosterEmployee struct {
	ID        string
	FirstName string
	LastName  string
	Schedules []Schedule
}

// ForDay returns the schedule row for day, or nil when the employee has none.
func (r RosterEmployee) ForDay(day int) *Schedule {
	for i := range r.Schedules {
		if r.Schedules[i].DayOfWeek == day {
			return &r.Schedules[i]
		}
	}
	return nil
}
