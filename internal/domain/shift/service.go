package shift

import "context"

type WorkShiftService interface {
	ListShifts(ctx context.Context, companyID string, activeOnly bool) ([]WorkShiftResponse, error)
	GetShift(ctx context.Context, companyID string, id string) (WorkShiftResponse, error)
	CreateShift(ctx context.Context, companyID string, req CreateWorkShiftRequest) (WorkShiftResponse, error)
	UpdateShift(ctx context.Context, companyID string, req UpdateWorkShiftRequest) (WorkShiftResponse, error)
	DeleteShift(ctx context.Context, companyID string, id string) error
}
