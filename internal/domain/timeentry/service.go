package timeentry

import "context"

type TimeEntryService interface {
	ListTimeEntries(ctx context.Context, companyID string, filter TimeEntryFilter) (ListTimeEntryResponse, error)
	GetTimeEntry(ctx context.Context, companyID string, id string) (TimeEntryResponse, error)
	CreateTimeEntry(ctx context.Context, companyID string, req CreateTimeEntryRequest) (TimeEntryResponse, error)
	UpdateTimeEntry(ctx context.Context, companyID string, req UpdateTimeEntryRequest) (TimeEntryResponse, error)
	DeleteTimeEntry(ctx context.Context, companyID string, id string) error
	ClockIn(ctx context.Context, companyID string, employeeID string, req ClockRequest) (TimeEntryResponse, error)
	ClockOut(ctx context.Context, companyID string, employeeID string, req ClockRequest) (TimeEntryResponse, error)
}
