package jwt

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const revokedKeyPrefix = "revoked_token:"

// TokenStore persists revoked token keys until they expire.
type TokenStore interface {
	Revoke(ctx context.Context, key string, ttl time.Duration) error
	IsRevoked(ctx context.Context, key string) (bool, error)
}

type Service interface {
	GenerateAccessToken(userID string, email string, employeeID *string, companyID string, role user.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	// Verifier decodes the token from the cookie, falling back to the Authorization header.
	Verifier() func(http.Handler) http.Handler
	TokenFromRequest(r *http.Request) string
	AccessTokenCookie(token string, expiresAt int64) *http.Cookie
	ClearCookie() *http.Cookie
	RevokeToken(ctx context.Context, token string, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
}

type Options struct {
	Secret           string
	AccessExpiration string
	CookieName       string
	CookieSecure     bool
}

type JWTService struct {
	accessTokenExpirationTime string
	cookieName                string
	cookieSecure              bool
	tokenAuth                 *jwtauth.JWTAuth
	store                     TokenStore
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(opts Options, store TokenStore) *JWTService {
	cookieName := opts.CookieName
	if cookieName == "" {
		cookieName = "jwt"
	}
	return &JWTService{
		accessTokenExpirationTime: opts.AccessExpiration,
		cookieName:                cookieName,
		cookieSecure:              opts.CookieSecure,
		tokenAuth:                 jwtauth.New("HS256", []byte(opts.Secret), nil, jwt.WithAcceptableSkew(30*time.Second)),
		store:                     store,
		now:                       time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(userID string, email string, employeeID *string, companyID string, role user.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, fmt.Errorf("invalid access token expiration: %w", err)
	}
	now := j.now()
	expiresAt = now.Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":     userID,
		"email":       email,
		"employee_id": j.returnValueOrNil(employeeID),
		"company_id":  companyID,
		"role":        string(role),
		"type":        "access",
		"iat":         now.Unix(),
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) Verifier() func(http.Handler) http.Handler {
	return jwtauth.Verify(j.tokenAuth, j.tokenFromCookie, jwtauth.TokenFromHeader)
}

func (j *JWTService) TokenFromRequest(r *http.Request) string {
	if tok := j.tokenFromCookie(r); tok != "" {
		return tok
	}
	return jwtauth.TokenFromHeader(r)
}

func (j *JWTService) tokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(j.cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (j *JWTService) AccessTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     j.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
}

func (j *JWTService) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     j.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   j.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
}

// RevokeToken blacklists token until expiresAt. Already expired tokens are ignored.
func (j *JWTService) RevokeToken(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(j.now())
	if ttl <= 0 {
		return nil
	}
	if err := j.store.Revoke(ctx, revokedKey(token), ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (j *JWTService) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	revoked, err := j.store.IsRevoked(ctx, revokedKey(token))
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return revoked, nil
}

func revokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return revokedKeyPrefix + hex.EncodeToString(sum[:])
}

func (j *JWTService) returnValueOrNil(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}
