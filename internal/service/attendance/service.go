package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/timeentry"
	"golang.org/x/sync/errgroup"
)

const (
	reasonHolidayPrefix = "Feriado: "
	reasonSunday        = "Domingo"
	reasonSaturday      = "Sábado"
)

// ClassificationObserver receives the status counts and latency of every classification run.
type ClassificationObserver interface {
	ObserveClassification(counts map[string]int, elapsed time.Duration)
}

type AttendanceServiceImpl struct {
	holidays    attendance.HolidayLookup
	roster      attendance.EmployeeRoster
	entries     attendance.TimeEntryStore
	companies   attendance.CompanyChecker
	observer    ClassificationObserver
	gracePeriod time.Duration
	now         func() time.Time
}

type Option func(*AttendanceServiceImpl)

// WithGracePeriod moves the late threshold to scheduledStart + grace.
func WithGracePeriod(grace time.Duration) Option {
	return func(s *AttendanceServiceImpl) {
		if grace > 0 {
			s.gracePeriod = grace
		}
	}
}

func WithObserver(o ClassificationObserver) Option {
	return func(s *AttendanceServiceImpl) {
		s.observer = o
	}
}

// WithClock replaces time.Now when resolving the default date.
func WithClock(now func() time.Time) Option {
	return func(s *AttendanceServiceImpl) {
		s.now = now
	}
}

func NewAttendanceService(
	holidays attendance.HolidayLookup,
	roster attendance.EmployeeRoster,
	entries attendance.TimeEntryStore,
	companies attendance.CompanyChecker,
	opts ...Option,
) attendance.AttendanceService {
	s := &AttendanceServiceImpl{
		holidays:  holidays,
		roster:    roster,
		entries:   entries,
		companies: companies,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsWorkDay implements attendance.AttendanceService.
// A holiday wins over the weekend check.
func (s *AttendanceServiceImpl) IsWorkDay(ctx context.Context, companyID string, date time.Time) (attendance.WorkDayInfo, error) {
	day := attendance.DayOf(date)
	info := attendance.WorkDayInfo{Date: day.Format(attendance.DateLayout)}

	h, err := s.holidays.FindForDate(ctx, companyID, day)
	if err != nil {
		return attendance.WorkDayInfo{}, fmt.Errorf("failed to look up holiday: %w", err)
	}
	if h != nil {
		reason := reasonHolidayPrefix + h.Name
		kind := attendance.SpecialDayHoliday
		info.Reason = &reason
		info.SpecialDayType = &kind
		return info, nil
	}

	var reason string
	switch day.Weekday() {
	case time.Sunday:
		reason = reasonSunday
	case time.Saturday:
		reason = reasonSaturday
	default:
		info.IsWorkDay = true
		return info, nil
	}
	kind := attendance.SpecialDayWeekend
	info.Reason = &reason
	info.SpecialDayType = &kind
	return info, nil
}

// GetScheduledEmployees implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetScheduledEmployees(ctx context.Context, companyID string, date time.Time) ([]attendance.ScheduledEmployee, error) {
	scheduled, _, err := s.resolveSchedules(ctx, companyID, attendance.DayOf(date))
	return scheduled, err
}

// resolveSchedules splits the active roster into employees scheduled to work on day and the rest.
func (s *AttendanceServiceImpl) resolveSchedules(ctx context.Context, companyID string, day time.Time) ([]attendance.ScheduledEmployee, []schedule.RosterEmployee, error) {
	roster, err := s.roster.ListActiveWithSchedules(ctx, companyID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load employee roster: %w", err)
	}

	dayOfWeek := int(day.Weekday())
	scheduled := make([]attendance.ScheduledEmployee, 0, len(roster))
	var unscheduled []schedule.RosterEmployee
	for _, emp := range roster {
		row := emp.ForDay(dayOfWeek)
		if row == nil || !row.IsWorkDay {
			unscheduled = append(unscheduled, emp)
			continue
		}
		se := attendance.ScheduledEmployee{
			ID:        emp.ID,
			FirstName: emp.FirstName,
			LastName:  emp.LastName,
		}
		if row.WorkShift != nil {
			se.Schedule = &attendance.ShiftWindow{
				StartTime:    row.WorkShift.StartTime,
				EndTime:      row.WorkShift.EndTime,
				IsNightShift: row.WorkShift.IsNightShift,
			}
		}
		scheduled = append(scheduled, se)
	}
	return scheduled, unscheduled, nil
}

// Classify implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Classify(ctx context.Context, companyID string, date time.Time) ([]attendance.EmployeeAttendanceStatus, error) {
	day := attendance.DayOf(date)
	scheduled, _, err := s.resolveSchedules(ctx, companyID, day)
	if err != nil {
		return nil, err
	}
	return s.classify(ctx, companyID, day, scheduled)
}

func (s *AttendanceServiceImpl) classify(ctx context.Context, companyID string, day time.Time, scheduled []attendance.ScheduledEmployee) ([]attendance.EmployeeAttendanceStatus, error) {
	started := time.Now()
	statuses := make([]attendance.EmployeeAttendanceStatus, 0, len(scheduled))
	if len(scheduled) == 0 {
		s.observe(statuses, started)
		return statuses, nil
	}

	ids := make([]string, len(scheduled))
	for i, emp := range scheduled {
		ids[i] = emp.ID
	}
	entries, err := s.entries.FindForDate(ctx, companyID, ids, day)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch time entries: %w", err)
	}

	byEmployee := make(map[string]timeentry.TimeEntry, len(entries))
	for _, e := range entries {
		if _, seen := byEmployee[e.EmployeeID]; !seen {
			byEmployee[e.EmployeeID] = e
		}
	}

	for _, emp := range scheduled {
		var entry *timeentry.TimeEntry
		if e, ok := byEmployee[emp.ID]; ok {
			entry = &e
		}
		st, err := s.classifyOne(day, emp, entry)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, st)
	}

	s.observe(statuses, started)
	return statuses, nil
}

func (s *AttendanceServiceImpl) classifyOne(day time.Time, emp attendance.ScheduledEmployee, entry *timeentry.TimeEntry) (attendance.EmployeeAttendanceStatus, error) {
	st := attendance.EmployeeAttendanceStatus{
		EmployeeID: emp.ID,
		FirstName:  emp.FirstName,
		LastName:   emp.LastName,
		Status:     attendance.StatusAbsent,
	}

	if emp.Schedule != nil {
		start, err := shift.On(day, emp.Schedule.StartTime)
		if err != nil {
			return attendance.EmployeeAttendanceStatus{}, fmt.Errorf("invalid shift start for employee %s: %w", emp.ID, err)
		}
		end, err := shift.On(day, emp.Schedule.EndTime)
		if err != nil {
			return attendance.EmployeeAttendanceStatus{}, fmt.Errorf("invalid shift end for employee %s: %w", emp.ID, err)
		}
		if emp.Schedule.IsNightShift || !end.After(start) {
			end = end.Add(24 * time.Hour)
		}
		st.ScheduledStart = &start
		st.ScheduledEnd = &end
	}

	if entry == nil {
		return st, nil
	}
	st.ClockOut = entry.ClockOut
	if entry.ClockIn == nil {
		return st, nil
	}

	st.ClockIn = entry.ClockIn
	st.Status = attendance.StatusWorking
	if st.ScheduledStart != nil && entry.ClockIn.After(st.ScheduledStart.Add(s.gracePeriod)) {
		st.Status = attendance.StatusLate
		st.IsLate = true
		st.LateMinutes = int(math.Floor(entry.ClockIn.Sub(*st.ScheduledStart).Minutes()))
	}
	return st, nil
}

func (s *AttendanceServiceImpl) observe(statuses []attendance.EmployeeAttendanceStatus, started time.Time) {
	if s.observer == nil {
		return
	}
	counts := map[string]int{
		string(attendance.StatusWorking): 0,
		string(attendance.StatusLate):    0,
		string(attendance.StatusAbsent):  0,
	}
	for _, st := range statuses {
		counts[string(st.Status)]++
	}
	s.observer.ObserveClassification(counts, time.Since(started))
}

// GetDailyAttendanceStats implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetDailyAttendanceStats(ctx context.Context, companyID string, date time.Time) (attendance.DailyAttendanceStats, error) {
	day := attendance.DayOf(date)

	var (
		info     attendance.WorkDayInfo
		statuses []attendance.EmployeeAttendanceStatus
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		info, err = s.IsWorkDay(gctx, companyID, day)
		return err
	})
	g.Go(func() error {
		var err error
		statuses, err = s.Classify(gctx, companyID, day)
		return err
	})
	if err := g.Wait(); err != nil {
		return attendance.DailyAttendanceStats{}, err
	}

	stats := attendance.DailyAttendanceStats{
		Date:               day.Format(attendance.DateLayout),
		EmployeesScheduled: len(statuses),
		IsWorkDay:          info.IsWorkDay,
		WorkDayReason:      info.Reason,
	}
	for _, st := range statuses {
		switch st.Status {
		case attendance.StatusWorking:
			stats.EmployeesWorking++
		case attendance.StatusLate:
			stats.EmployeesWorking++
			stats.EmployeesLate++
		case attendance.StatusAbsent:
			stats.EmployeesAbsent++
		}
	}
	return stats, nil
}

// CheckWorkDay implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckWorkDay(ctx context.Context, companyID string, date time.Time) (attendance.WorkDayInfo, error) {
	if err := s.ensureCompany(ctx, companyID); err != nil {
		return attendance.WorkDayInfo{}, err
	}
	return s.IsWorkDay(ctx, companyID, date)
}

// ListScheduledEmployees implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListScheduledEmployees(ctx context.Context, companyID string, date time.Time) ([]attendance.ScheduledEmployee, error) {
	if err := s.ensureCompany(ctx, companyID); err != nil {
		return nil, err
	}
	return s.GetScheduledEmployees(ctx, companyID, date)
}

// ClassifyEmployees implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClassifyEmployees(ctx context.Context, companyID string, date *time.Time, includeUnscheduled bool) ([]attendance.EmployeeAttendanceStatus, error) {
	day := s.resolveDate(date)
	if err := s.ensureCompany(ctx, companyID); err != nil {
		return nil, err
	}

	scheduled, unscheduled, err := s.resolveSchedules(ctx, companyID, day)
	if err != nil {
		return nil, err
	}
	statuses, err := s.classify(ctx, companyID, day, scheduled)
	if err != nil {
		return nil, err
	}
	if includeUnscheduled {
		for _, emp := range unscheduled {
			statuses = append(statuses, attendance.EmployeeAttendanceStatus{
				EmployeeID: emp.ID,
				FirstName:  emp.FirstName,
				LastName:   emp.LastName,
				Status:     attendance.StatusNotScheduled,
			})
		}
	}
	return statuses, nil
}

// ComputeDailyStats implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ComputeDailyStats(ctx context.Context, companyID string, date *time.Time) (attendance.DailyAttendanceStats, error) {
	day := s.resolveDate(date)
	if err := s.ensureCompany(ctx, companyID); err != nil {
		return attendance.DailyAttendanceStats{}, err
	}
	return s.GetDailyAttendanceStats(ctx, companyID, day)
}

func (s *AttendanceServiceImpl) resolveDate(date *time.Time) time.Time {
	if date == nil {
		return attendance.DayOf(s.now())
	}
	return attendance.DayOf(*date)
}

func (s *AttendanceServiceImpl) ensureCompany(ctx context.Context, companyID string) error {
	exists, err := s.companies.Exists(ctx, companyID)
	if err != nil {
		return fmt.Errorf("failed to check company: %w", err)
	}
	if !exists {
		return company.ErrCompanyNotFound
	}
	return nil
}
