package alert

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
)

// AttendanceAlert is published once per employee, day and status when a scheduled employee
// is late or absent on a work day.
type AttendanceAlert struct {
	ID             string            `json:"id"`
	CompanyID      string            `json:"company_id"`
	EmployeeID     string            `json:"employee_id"`
	EmployeeName   string            `json:"employee_name"`
	Status         attendance.Status `json:"status"`
	Date           string            `json:"date"`
	ScheduledStart *time.Time        `json:"scheduled_start,omitempty"`
	ClockIn        *time.Time        `json:"clock_in,omitempty"`
	LateMinutes    int               `json:"late_minutes,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// DedupeKey identifies an alert for at-most-once delivery.
func (a AttendanceAlert) DedupeKey() string {
	return fmt.Sprintf("alert:%s:%s:%s:%s", a.CompanyID, a.Date, a.EmployeeID, a.Status)
}

type DispatchResult struct {
	Companies int `json:"companies"`
	Skipped   int `json:"skipped_non_work_day"`
	Published int `json:"published"`
}
