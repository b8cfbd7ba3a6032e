package shift

import "context"

type WorkShiftRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (WorkShift, error)
	List(ctx context.Context, companyID string, activeOnly bool) ([]WorkShift, error)
	Create(ctx context.Context, s WorkShift) (WorkShift, error)
	Update(ctx context.Context, s WorkShift) (WorkShift, error)
	Delete(ctx context.Context, id string, companyID string) error
	ExistsByName(ctx context.Context, companyID string, name string, excludeID *string) (bool, error)
	IsReferenced(ctx context.Context, id string, companyID string) (bool, error)
	CountActive(ctx context.Context, companyID string) (int64, error)
}
