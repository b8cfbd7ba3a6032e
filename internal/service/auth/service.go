package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer is the part of the jwt service the auth flow depends on.
type TokenIssuer interface {
	GenerateAccessToken(userID string, email string, employeeID *string, companyID string, role user.Role) (token string, expiresAt int64, err error)
	RevokeToken(ctx context.Context, token string, expiresAt time.Time) error
}

type AuthServiceImpl struct {
	user.UserRepository
	tokens TokenIssuer
}

func NewAuthService(userRepository user.UserRepository, tokens TokenIssuer) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		tokens:         tokens,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == "" {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.tokens.GenerateAccessToken(userData.ID, userData.Email, userData.EmployeeID, userData.CompanyID, userData.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresAt: expiresAt,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	return a.tokens.RevokeToken(ctx, token, expiresAt)
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, userID string) (auth.MeResponse, error) {
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.MeResponse{}, auth.ErrInvalidToken
		}
		return auth.MeResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	return auth.MeResponse{
		UserID:     userData.ID,
		Email:      userData.Email,
		CompanyID:  userData.CompanyID,
		EmployeeID: userData.EmployeeID,
		Role:       string(userData.Role),
	}, nil
}
