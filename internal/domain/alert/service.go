package alert

import "context"

type AlertService interface {
	// Dispatch classifies today's attendance for every company and publishes new alerts.
	Dispatch(ctx context.Context) (DispatchResult, error)
	DispatchCompany(ctx context.Context, companyID string) (int, bool, error)
}
