package company

import "context"

type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (Company, error)
	Exists(ctx context.Context, id string) (bool, error)
	// ListIDs returns every company ID, used by background jobs that sweep all tenants.
	ListIDs(ctx context.Context) ([]string, error)
}
