package alert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
)

const dedupeTTL = 36 * time.Hour

var _ alert.AlertService = (*AlertServiceImpl)(nil)

// AttendanceReader is the part of the attendance engine the alert job needs.
type AttendanceReader interface {
	IsWorkDay(ctx context.Context, companyID string, date time.Time) (attendance.WorkDayInfo, error)
	Classify(ctx context.Context, companyID string, date time.Time) ([]attendance.EmployeeAttendanceStatus, error)
}

type AlertServiceImpl struct {
	companies  alert.CompanyLister
	attendance AttendanceReader
	publisher  alert.Publisher
	deduper    alert.Deduper
	now        func() time.Time
}

func NewAlertService(
	companies alert.CompanyLister,
	attendance AttendanceReader,
	publisher alert.Publisher,
	deduper alert.Deduper,
) *AlertServiceImpl {
	return &AlertServiceImpl{
		companies:  companies,
		attendance: attendance,
		publisher:  publisher,
		deduper:    deduper,
		now:        time.Now,
	}
}

// Dispatch implements alert.AlertService. A failing company is logged and does not stop the others.
func (s *AlertServiceImpl) Dispatch(ctx context.Context) (alert.DispatchResult, error) {
	ids, err := s.companies.ListIDs(ctx)
	if err != nil {
		return alert.DispatchResult{}, fmt.Errorf("failed to list companies: %w", err)
	}

	var result alert.DispatchResult
	var errs []error
	for _, companyID := range ids {
		published, workDay, err := s.DispatchCompany(ctx, companyID)
		if err != nil {
			slog.Error("attendance alert dispatch failed", "company_id", companyID, "error", err)
			errs = append(errs, err)
			continue
		}
		result.Companies++
		if !workDay {
			result.Skipped++
		}
		result.Published += published
	}
	return result, errors.Join(errs...)
}

// DispatchCompany implements alert.AlertService. It reports how many alerts were published
// and whether the day was a work day.
func (s *AlertServiceImpl) DispatchCompany(ctx context.Context, companyID string) (int, bool, error) {
	now := s.now().UTC()
	today := attendance.DayOf(now)

	info, err := s.attendance.IsWorkDay(ctx, companyID, today)
	if err != nil {
		return 0, false, err
	}
	if !info.IsWorkDay {
		return 0, false, nil
	}

	statuses, err := s.attendance.Classify(ctx, companyID, today)
	if err != nil {
		return 0, true, err
	}

	published := 0
	for _, st := range statuses {
		if !s.alertable(st, now) {
			continue
		}

		a := alert.AttendanceAlert{
			ID:             uuid.NewString(),
			CompanyID:      companyID,
			EmployeeID:     st.EmployeeID,
			EmployeeName:   st.FirstName + " " + st.LastName,
			Status:         st.Status,
			Date:           today.Format(attendance.DateLayout),
			ScheduledStart: st.ScheduledStart,
			ClockIn:        st.ClockIn,
			LateMinutes:    st.LateMinutes,
			CreatedAt:      now,
		}

		claimed, err := s.deduper.Claim(ctx, a.DedupeKey(), dedupeTTL)
		if err != nil {
			return published, true, err
		}
		if !claimed {
			continue
		}

		if err := s.publisher.Publish(ctx, a); err != nil {
			if relErr := s.deduper.Release(ctx, a.DedupeKey()); relErr != nil {
				slog.Error("failed to release alert claim", "key", a.DedupeKey(), "error", relErr)
			}
			return published, true, err
		}
		published++
	}

	if published > 0 {
		slog.Info("attendance alerts published", "company_id", companyID, "date", today.Format(attendance.DateLayout), "count", published)
	}
	return published, true, nil
}

// alertable holds back absence alerts until the shift has started.
func (s *AlertServiceImpl) alertable(st attendance.EmployeeAttendanceStatus, now time.Time) bool {
	switch st.Status {
	case attendance.StatusLate:
		return true
	case attendance.StatusAbsent:
		return st.ScheduledStart == nil || !now.Before(*st.ScheduledStart)
	default:
		return false
	}
}
