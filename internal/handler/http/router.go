package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	LoginLimiter   middleware.RateLimiter
	Metrics        *metrics.Metrics
}

type Handlers struct {
	Auth        AuthHandler
	Employee    EmployeeHandler
	Schedule    ScheduleHandler
	Shift       WorkShiftHandler
	Holiday     HolidayHandler
	TimeEntry   TimeEntryHandler
	Attendance  AttendanceHandler
	Dashboard   DashboardHandler
	AlertStream AlertStreamHandler
}

func NewRouter(opts RouterOptions, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if opts.LoginLimiter != nil {
					r.Use(middleware.RateLimit(opts.LoginLimiter))
				}
				r.Post("/login", h.Auth.Login)
			})

			r.Group(func(r chi.Router) {
				r.Use(jwtService.Verifier())
				r.Use(middleware.AuthRequired(jwtService))
				r.Post("/logout", h.Auth.Logout)
				r.Get("/me", h.Auth.Me)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtService.Verifier())
			r.Use(middleware.AuthRequired(jwtService))

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionEmployeeViewAll)).Get("/", h.Employee.ListEmployees)
				r.With(middleware.RequirePermission(user.PermissionEmployeeManage)).Post("/", h.Employee.CreateEmployee)

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionEmployeeViewAll)).Get("/", h.Employee.GetEmployee)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
						r.Put("/", h.Employee.UpdateEmployee)
						r.Patch("/status", h.Employee.ChangeStatus)
					})
					r.With(middleware.RequireOwner).Delete("/", h.Employee.DeleteEmployee)

					r.Route("/schedule", func(r chi.Router) {
						r.With(middleware.RequirePermission(user.PermissionEmployeeViewAll)).Get("/", h.Schedule.GetWeekly)
						r.Group(func(r chi.Router) {
							r.Use(middleware.RequirePermission(user.PermissionScheduleManage))
							r.Put("/", h.Schedule.ReplaceWeek)
							r.Put("/{day}", h.Schedule.UpsertDay)
						})
					})
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", h.Shift.List)
				r.Get("/{id}", h.Shift.Get)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionShiftManage))
					r.Post("/", h.Shift.Create)
					r.Put("/{id}", h.Shift.Update)
					r.Delete("/{id}", h.Shift.Delete)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Holiday.List)
				r.Get("/{id}", h.Holiday.Get)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionHolidayManage))
					r.Post("/", h.Holiday.Create)
					r.Post("/generate", h.Holiday.GenerateRecurring)
					r.Put("/{id}", h.Holiday.Update)
					r.Delete("/{id}", h.Holiday.Delete)
				})
			})

			r.Route("/time-entries", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionTimeEntryClockSelf))
					r.Post("/clock-in", h.TimeEntry.ClockIn)
					r.Post("/clock-out", h.TimeEntry.ClockOut)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionTimeEntryViewAll))
					r.Get("/", h.TimeEntry.List)
					r.Get("/{id}", h.TimeEntry.Get)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionTimeEntryManage))
					r.Post("/", h.TimeEntry.Create)
					r.Put("/{id}", h.TimeEntry.Update)
					r.Delete("/{id}", h.TimeEntry.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
				r.Get("/", h.Attendance.List)
				r.Get("/work-day", h.Attendance.WorkDay)
				r.Get("/scheduled", h.Attendance.Scheduled)
				r.Get("/stats", h.Attendance.Stats)
			})

			r.With(middleware.RequirePermission(user.PermissionDashboardView)).Get("/dashboard", h.Dashboard.GetDashboard)

			if h.AlertStream != nil {
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/alerts/stream", h.AlertStream.Stream)
			}
		})
	})
	return r
}
