package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	// FindForDate returns the first holiday whose date falls within the UTC calendar day of date,
	// or nil when there is none.
	FindForDate(ctx context.Context, companyID string, date time.Time) (*Holiday, error)
	GetByID(ctx context.Context, id string, companyID string) (Holiday, error)
	List(ctx context.Context, companyID string, year *int) ([]Holiday, error)
	ListRecurring(ctx context.Context, companyID string) ([]Holiday, error)
	Create(ctx context.Context, h Holiday) (Holiday, error)
	Update(ctx context.Context, h Holiday) (Holiday, error)
	Delete(ctx context.Context, id string, companyID string) error
	ExistsByDateAndName(ctx context.Context, companyID string, date time.Time, name string, excludeID *string) (bool, error)
	Count(ctx context.Context, companyID string, from time.Time, upcomingUntil time.Time) (Counts, error)
}
