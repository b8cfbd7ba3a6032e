package attendance

import (
	"context"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/timeentry"
)

// HolidayLookup finds a company holiday falling on the UTC day of date, or nil.
type HolidayLookup interface {
	FindForDate(ctx context.Context, companyID string, date time.Time) (*holiday.Holiday, error)
}

type EmployeeRoster interface {
	ListActiveWithSchedules(ctx context.Context, companyID string) ([]schedule.RosterEmployee, error)
}

type TimeEntryStore interface {
	FindForDate(ctx context.Context, companyID string, employeeIDs []string, date time.Time) ([]timeentry.TimeEntry, error)
}

type CompanyChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}
