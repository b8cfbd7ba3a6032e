package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
)

type EmployeeCounter interface {
	CountByStatus(ctx context.Context, companyID string) (employee.StatusCounts, error)
	CountByDepartment(ctx context.Context, companyID string) ([]employee.DepartmentCount, error)
}

type RoleCounter interface {
	CountByRole(ctx context.Context, companyID string) ([]user.RoleCount, error)
}

type HolidayCounter interface {
	Count(ctx context.Context, companyID string, from time.Time, upcomingUntil time.Time) (holiday.Counts, error)
}

type ShiftCounter interface {
	CountActive(ctx context.Context, companyID string) (int64, error)
}

type AttendanceStats interface {
	GetDailyAttendanceStats(ctx context.Context, companyID string, date time.Time) (attendance.DailyAttendanceStats, error)
}
