package holiday

import "context"

type HolidayService interface {
	ListHolidays(ctx context.Context, companyID string, year *int) ([]HolidayResponse, error)
	GetHoliday(ctx context.Context, companyID string, id string) (HolidayResponse, error)
	CreateHoliday(ctx context.Context, companyID string, req CreateHolidayRequest) (HolidayResponse, error)
	UpdateHoliday(ctx context.Context, companyID string, req UpdateHolidayRequest) (HolidayResponse, error)
	DeleteHoliday(ctx context.Context, companyID string, id string) error

	// GenerateRecurring materialises recurring holidays of other years onto year.
	// It is idempotent and returns the number of rows created.
	GenerateRecurring(ctx context.Context, companyID string, year int) (GenerateRecurringResponse, error)
}
