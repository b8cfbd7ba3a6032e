package dashboard

import (
	"context"
	"time"
)

type DashboardService interface {
	GetDashboard(ctx context.Context, companyID string, date *time.Time) (DashboardResponse, error)
}
