package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	CountByRole(ctx context.Context, companyID string) ([]RoleCount, error)
}
