package auth

import (
	"context"
	"time"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	// Logout revokes the token until its own expiry.
	Logout(ctx context.Context, token string, expiresAt time.Time) error
	Me(ctx context.Context, userID string) (MeResponse, error)
}
