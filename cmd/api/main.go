package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/workforce-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/alert"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/ratelimit"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/workforce-backend-go/internal/repository/postgresql"
	alertService "github.com/cmlabs-hris/workforce-backend-go/internal/service/alert"
	attendanceService "github.com/cmlabs-hris/workforce-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/workforce-backend-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/workforce-backend-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/workforce-backend-go/internal/service/employee"
	holidayService "github.com/cmlabs-hris/workforce-backend-go/internal/service/holiday"
	scheduleService "github.com/cmlabs-hris/workforce-backend-go/internal/service/schedule"
	shiftService "github.com/cmlabs-hris/workforce-backend-go/internal/service/shift"
	timeEntryService "github.com/cmlabs-hris/workforce-backend-go/internal/service/timeentry"
	"github.com/go-chi/httplog/v3"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workforce-backend"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cache.Options{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer redisClient.Close()

	appMetrics := metrics.New()

	// Repositories
	companyRepo := postgresql.NewCompanyRepository(db)
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	shiftRepo := postgresql.NewWorkShiftRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	rosterRepo := postgresql.NewEmployeeRoster(db)
	timeEntryRepo := postgresql.NewTimeEntryRepository(db)

	withTx := func(ctx context.Context, fn func(txCtx context.Context) error) error {
		return postgresql.WithTransaction(ctx, db, fn)
	}

	// Services
	JWTService := jwt.NewJWTService(jwt.Options{
		Secret:           cfg.JWT.Secret,
		AccessExpiration: cfg.JWT.AccessExpiration,
		CookieName:       cfg.JWT.CookieName,
		CookieSecure:     cfg.JWT.CookieSecure,
	}, jwt.NewRedisTokenStore(redisClient))

	authSvc := serviceAuth.NewAuthService(userRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	holidaySvc := holidayService.NewHolidayService(holidayRepo)
	shiftSvc := shiftService.NewWorkShiftService(shiftRepo)
	scheduleSvc := scheduleService.NewScheduleService(withTx, scheduleRepo, employeeRepo, shiftRepo)
	timeEntrySvc := timeEntryService.NewTimeEntryService(timeEntryRepo, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		holidayRepo,
		rosterRepo,
		timeEntryRepo,
		companyRepo,
		attendanceService.WithGracePeriod(cfg.Attendance.GracePeriod),
		attendanceService.WithObserver(appMetrics),
	)
	dashboardSvc := dashboardService.NewDashboardService(
		attendanceSvc,
		employeeRepo,
		userRepo,
		holidayRepo,
		shiftRepo,
		companyRepo,
	)

	// Background jobs
	scheduler := cron.NewScheduler(cron.WithObserver(appMetrics))
	cron.NewHolidayJobs(companyRepo, holidaySvc).RegisterJobs(scheduler)

	alertHub := sse.NewHub()
	if err := appMetrics.TrackStreams(alertHub); err != nil {
		return fmt.Errorf("register stream metrics: %w", err)
	}
	if cfg.Alerts.Enabled {
		amqpPublisher, err := alert.NewAMQPPublisher(cfg.Alerts.AMQPURL, cfg.Alerts.Queue, cfg.Server.WriteTimeout)
		if err != nil {
			return fmt.Errorf("connect amqp: %w", err)
		}
		defer amqpPublisher.Close()

		// The stream only sees alerts the queue accepted.
		publisher := alert.MultiPublisher{amqpPublisher, alert.NewStreamPublisher(alertHub)}
		alertSvc := alertService.NewAlertService(companyRepo, attendanceSvc, publisher, alert.NewRedisDeduper(redisClient))
		cron.NewAttendanceJobs(alertSvc, cfg.Alerts.Interval).RegisterJobs(scheduler)
	}

	scheduler.Start()
	defer scheduler.Stop()

	// HTTP
	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Logger:         logger,
		AllowedOrigins: cfg.App.FrontendURL,
		LoginLimiter:   ratelimit.NewFixedWindow(redisClient, "login", int64(cfg.RateLimit.LoginRequests), cfg.RateLimit.LoginWindow),
		Metrics:        appMetrics,
	}, JWTService, appHTTP.Handlers{
		Auth:        appHTTP.NewAuthHandler(JWTService, authSvc),
		Employee:    appHTTP.NewEmployeeHandler(employeeSvc),
		Schedule:    appHTTP.NewScheduleHandler(scheduleSvc),
		Shift:       appHTTP.NewWorkShiftHandler(shiftSvc),
		Holiday:     appHTTP.NewHolidayHandler(holidaySvc),
		TimeEntry:   appHTTP.NewTimeEntryHandler(timeEntrySvc),
		Attendance:  appHTTP.NewAttendanceHandler(attendanceSvc),
		Dashboard:   appHTTP.NewDashboardHandler(dashboardSvc),
		AlertStream: appHTTP.NewAlertStreamHandler(alertHub, 30*time.Second),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	srv.RegisterOnShutdown(alertHub.Close)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case sig := <-quit:
		slog.Info("Shutting down server", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}
