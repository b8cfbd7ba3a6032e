package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/holiday"
)

type CompanyLister interface {
	ListIDs(ctx context.Context) ([]string, error)
}

type RecurringHolidayGenerator interface {
	GenerateRecurring(ctx context.Context, companyID string, year int) (holiday.GenerateRecurringResponse, error)
}

// HolidayJobs materialises recurring holidays ahead of the calendar year.
type HolidayJobs struct {
	companies CompanyLister
	holidays  RecurringHolidayGenerator
	now       func() time.Time
}

func NewHolidayJobs(companies CompanyLister, holidays RecurringHolidayGenerator) *HolidayJobs {
	return &HolidayJobs{
		companies: companies,
		holidays:  holidays,
		now:       time.Now,
	}
}

func (j *HolidayJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("generate_recurring_holidays", 24*time.Hour, j.GenerateNextYear)
}

// GenerateNextYear projects recurring holidays onto next year for every company.
// A failing company does not stop the others.
func (j *HolidayJobs) GenerateNextYear(ctx context.Context) error {
	ids, err := j.companies.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	year := j.now().UTC().Year() + 1
	var errs []error
	created := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		res, err := j.holidays.GenerateRecurring(ctx, id, year)
		if err != nil {
			errs = append(errs, fmt.Errorf("company %s: %w", id, err))
			continue
		}
		created += res.Created
	}

	slog.Info("Cron: recurring holidays generated", "year", year, "companies", len(ids), "created", created)
	return errors.Join(errs...)
}
