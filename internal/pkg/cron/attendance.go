package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/alert"
)

// AttendanceJobs publishes late and absent alerts for today.
type AttendanceJobs struct {
	alerts   alert.AlertService
	interval time.Duration
}

func NewAttendanceJobs(alerts alert.AlertService, interval time.Duration) *AttendanceJobs {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &AttendanceJobs{
		alerts:   alerts,
		interval: interval,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("dispatch_attendance_alerts", j.interval, j.DispatchAlerts)
}

func (j *AttendanceJobs) DispatchAlerts(ctx context.Context) error {
	res, err := j.alerts.Dispatch(ctx)
	slog.Info("Cron: attendance alerts dispatched",
		"companies", res.Companies,
		"skipped", res.Skipped,
		"published", res.Published,
	)
	return err
}
