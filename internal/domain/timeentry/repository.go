package timeentry

import (
	"context"
	"time"
)

type TimeEntryRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (TimeEntry, error)
	// GetForDate returns nil when the employee has no entry on date.
	GetForDate(ctx context.Context, companyID string, employeeID string, date time.Time) (*TimeEntry, error)
	List(ctx context.Context, filter TimeEntryFilter, companyID string) ([]TimeEntry, int64, error)
	Create(ctx context.Context, e TimeEntry) (TimeEntry, error)
	Update(ctx context.Context, e TimeEntry) (TimeEntry, error)
	Delete(ctx context.Context, id string, companyID string) error
	// FindForDate fetches the entries of all given employees for one UTC day in a single query.
	FindForDate(ctx context.Context, companyID string, employeeIDs []string, date time.Time) ([]TimeEntry, error)
}
