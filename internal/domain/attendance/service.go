package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	IsWorkDay(ctx context.Context, companyID string, date time.Time) (WorkDayInfo, error)
	GetScheduledEmployees(ctx context.Context, companyID string, date time.Time) ([]ScheduledEmployee, error)
	Classify(ctx context.Context, companyID string, date time.Time) ([]EmployeeAttendanceStatus, error)
	GetDailyAttendanceStats(ctx context.Context, companyID string, date time.Time) (DailyAttendanceStats, error)

	// The methods below check the company first. ClassifyEmployees and ComputeDailyStats
	// also default a nil date to today.
	CheckWorkDay(ctx context.Context, companyID string, date time.Time) (WorkDayInfo, error)
	ListScheduledEmployees(ctx context.Context, companyID string, date time.Time) ([]ScheduledEmployee, error)
	ClassifyEmployees(ctx context.Context, companyID string, date *time.Time, includeUnscheduled bool) ([]EmployeeAttendanceStatus, error)
	ComputeDailyStats(ctx context.Context, companyID string, date *time.Time) (DailyAttendanceStats, error)
}
