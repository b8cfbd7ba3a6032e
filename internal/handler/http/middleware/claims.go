package middleware

import (
	"context"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

func stringClaim(ctx context.Context, name string) (string, bool) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", false
	}
	v, ok := claims[name].(string)
	return v, ok && v != ""
}

// CompanyID returns the tenant of the authenticated user.
func CompanyID(ctx context.Context) (string, error) {
	id, ok := stringClaim(ctx, "company_id")
	if !ok {
		return "", user.ErrCompanyIDRequired
	}
	return id, nil
}

func UserID(ctx context.Context) (string, error) {
	id, ok := stringClaim(ctx, "user_id")
	if !ok {
		return "", auth.ErrInvalidToken
	}
	return id, nil
}

// EmployeeID returns the employee linked to the authenticated user.
func EmployeeID(ctx context.Context) (string, error) {
	id, ok := stringClaim(ctx, "employee_id")
	if !ok {
		return "", user.ErrEmployeeIDRequired
	}
	return id, nil
}

func Role(ctx context.Context) user.Role {
	role, _ := stringClaim(ctx, "role")
	return user.Role(role)
}

// TokenExpiry returns the exp claim of the request token.
func TokenExpiry(ctx context.Context) time.Time {
	token, _, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return time.Time{}
	}
	return token.Expiration()
}
