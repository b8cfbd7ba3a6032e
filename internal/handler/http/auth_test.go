package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryTokenStore struct {
	mu   sync.Mutex
	keys map[string]bool
}

func (m *memoryTokenStore) Revoke(_ context.Context, key string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[key] = true
	return nil
}

func (m *memoryTokenStore) IsRevoked(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.keys[key], nil
}

// stubAuthService issues real tokens so the cookie flow can be exercised end to end.
type stubAuthService struct {
	jwt *jwt.JWTService
}

func (s stubAuthService) Login(_ context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if req.Password != "password123" {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	tok, exp, err := s.jwt.GenerateAccessToken("user-1", req.Email, nil, "company-1", user.RoleOwner)
	return auth.TokenResponse{AccessToken: tok, AccessTokenExpiresAt: exp}, err
}

func (s stubAuthService) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	return s.jwt.RevokeToken(ctx, token, expiresAt)
}

func (s stubAuthService) Me(_ context.Context, userID string) (auth.MeResponse, error) {
	return auth.MeResponse{UserID: userID, CompanyID: "company-1", Role: "owner"}, nil
}

func authRouter() http.Handler {
	jwtSvc := jwt.NewJWTService(jwt.Options{
		Secret:           "test-secret-key-for-jwt",
		AccessExpiration: "1h",
		CookieName:       "jwt",
	}, &memoryTokenStore{keys: map[string]bool{}})
	h := NewAuthHandler(jwtSvc, stubAuthService{jwt: jwtSvc})

	r := chi.NewRouter()
	r.Post("/auth/login", h.Login)
	r.Group(func(r chi.Router) {
		r.Use(jwtSvc.Verifier())
		r.Use(middleware.AuthRequired(jwtSvc))
		r.Post("/auth/logout", h.Logout)
		r.Get("/auth/me", h.Me)
	})
	return r
}

func serve(h http.Handler, method, url, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLoginSetsCookieAndLogoutRevokes(t *testing.T) {
	router := authRouter()

	rec := serve(router, http.MethodPost, "/auth/login", `{"email":"owner@acme.co","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	session := cookies[0]
	assert.Equal(t, "jwt", session.Name)
	assert.True(t, session.HttpOnly)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/auth/me", "", session).Code)

	rec = serve(router, http.MethodPost, "/auth/logout", "", session)
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Empty(t, cleared[0].Value)

	assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodGet, "/auth/me", "", session).Code)
}

func TestLoginRejectsBadInput(t *testing.T) {
	router := authRouter()

	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, "/auth/login", `{`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, serve(router, http.MethodPost, "/auth/login", `{"email":"x"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodPost, "/auth/login", `{"email":"owner@acme.co","password":"wrong"}`).Code)
}
