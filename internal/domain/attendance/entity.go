package attendance

import "time"

type SpecialDayType string

const (
	SpecialDayHoliday SpecialDayType = "HOLIDAY"
	SpecialDayWeekend SpecialDayType = "WEEKEND"
)

// WorkDayInfo says whether a company works on a date and, when it does not, why.
type WorkDayInfo struct {
	Date           string          `json:"date"`
	IsWorkDay      bool            `json:"is_work_day"`
	Reason         *string         `json:"reason,omitempty"`
	SpecialDayType *SpecialDayType `json:"special_day_type,omitempty"`
}

type Status string

const (
	StatusWorking      Status = "working"
	StatusAbsent       Status = "absent"
	StatusLate         Status = "late"
	StatusNotScheduled Status = "not_scheduled"
)

// ShiftWindow is the wall clock window of the shift assigned to a scheduled day.
type ShiftWindow struct {
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	IsNightShift bool   `json:"is_night_shift"`
}

// ScheduledEmployee is an active employee whose weekly schedule marks the date's weekday
// as a work day. Schedule is nil when no shift is attached.
type ScheduledEmployee struct {
	ID        string       `json:"id"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Schedule  *ShiftWindow `json:"schedule"`
}

type EmployeeAttendanceStatus struct {
	EmployeeID     string     `json:"employee_id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Status         Status     `json:"status"`
	ClockIn        *time.Time `json:"clock_in"`
	ClockOut       *time.Time `json:"clock_out"`
	ScheduledStart *time.Time `json:"scheduled_start"`
	ScheduledEnd   *time.Time `json:"scheduled_end"`
	IsLate         bool       `json:"is_late"`
	LateMinutes    int        `json:"late_minutes"`
}

// DailyAttendanceStats counts scheduled employees by status. EmployeesWorking includes
// late employees, so EmployeesWorking + EmployeesAbsent == EmployeesScheduled.
type DailyAttendanceStats struct {
	Date               string  `json:"date"`
	EmployeesWorking   int     `json:"employees_working"`
	EmployeesLate      int     `json:"employees_late"`
	EmployeesAbsent    int     `json:"employees_absent"`
	EmployeesScheduled int     `json:"employees_scheduled"`
	IsWorkDay          bool    `json:"is_work_day"`
	WorkDayReason      *string `json:"work_day_reason,omitempty"`
}
