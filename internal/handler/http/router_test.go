package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/ratelimit"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type denyLimiter struct{}

func (denyLimiter) Allow(context.Context, string) (ratelimit.Result, error) {
	return ratelimit.Result{Allowed: false, Count: 11, Limit: 10, RetryAfter: 30 * time.Second}, nil
}

func testRouter(t *testing.T) (http.Handler, *jwt.JWTService, *fakeAttendanceService) {
	t.Helper()
	jwtSvc := jwt.NewJWTService(jwt.Options{
		Secret:           "test-secret-key-for-jwt",
		AccessExpiration: "1h",
		CookieName:       "jwt",
	}, &memoryTokenStore{keys: map[string]bool{}})

	attendanceSvc := &fakeAttendanceService{}
	router := NewRouter(RouterOptions{
		AllowedOrigins: []string{"http://localhost:3000"},
		LoginLimiter:   denyLimiter{},
		Metrics:        metrics.New(),
	}, jwtSvc, Handlers{
		Auth:        NewAuthHandler(jwtSvc, stubAuthService{jwt: jwtSvc}),
		Employee:    NewEmployeeHandler(nil),
		Schedule:    NewScheduleHandler(nil),
		Shift:       NewWorkShiftHandler(nil),
		Holiday:     NewHolidayHandler(nil),
		TimeEntry:   NewTimeEntryHandler(nil),
		Attendance:  NewAttendanceHandler(attendanceSvc),
		Dashboard:   NewDashboardHandler(nil),
		AlertStream: NewAlertStreamHandler(sse.NewHub(), time.Hour),
	})
	return router, jwtSvc, attendanceSvc
}

func bearer(t *testing.T, jwtSvc *jwt.JWTService, role user.Role) string {
	t.Helper()
	tok, _, err := jwtSvc.GenerateAccessToken("user-1", "someone@acme.co", nil, "company-1", role)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestRouter(t *testing.T) {
	router, jwtSvc, attendanceSvc := testRouter(t)

	cases := []struct {
		name   string
		method string
		path   string
		role   user.Role
		want   int
	}{
		{"heartbeat", http.MethodGet, "/", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"login rate limited", http.MethodPost, "/api/v1/auth/login", "", http.StatusTooManyRequests},
		{"anonymous attendance", http.MethodGet, "/api/v1/attendance", "", http.StatusUnauthorized},
		{"employee cannot read attendance", http.MethodGet, "/api/v1/attendance", user.RoleEmployee, http.StatusForbidden},
		{"manager reads attendance", http.MethodGet, "/api/v1/attendance?date=2025-03-10", user.RoleManager, http.StatusOK},
		{"employee cannot list employees", http.MethodGet, "/api/v1/employees", user.RoleEmployee, http.StatusForbidden},
		{"manager cannot delete employees", http.MethodDelete, "/api/v1/employees/e1", user.RoleManager, http.StatusForbidden},
		{"employee cannot stream alerts", http.MethodGet, "/api/v1/alerts/stream", user.RoleEmployee, http.StatusForbidden},
		{"anonymous me", http.MethodGet, "/api/v1/auth/me", "", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.role != "" {
				req.Header.Set("Authorization", bearer(t, jwtSvc, tc.role))
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}

	assert.Equal(t, "company-1", attendanceSvc.companyID)
}

func TestRouter_LoginRetryAfter(t *testing.T) {
	router, _, _ := testRouter(t)

	rec := serve(router, http.MethodPost, "/api/v1/auth/login", `{"email":"owner@acme.co","password":"password123"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))
}
