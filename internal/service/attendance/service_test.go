package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/timeentry"
)

const companyID = "company-1"

type fakeHolidays struct {
	byDate map[string]holiday.Holiday
	err    error
}

func (f *fakeHolidays) FindForDate(_ context.Context, _ string, date time.Time) (*holiday.Holiday, error) {
	if f.err != nil {
		return nil, f.err
	}
	h, ok := f.byDate[date.Format(attendance.DateLayout)]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

type fakeRoster struct {
	employees []schedule.RosterEmployee
	err       error
}

func (f *fakeRoster) ListActiveWithSchedules(_ context.Context, _ string) ([]schedule.RosterEmployee, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.employees, nil
}

type fakeEntries struct {
	mu      sync.Mutex
	entries []timeentry.TimeEntry
	err     error
	calls   int
	lastIDs []string
}

func (f *fakeEntries) FindForDate(_ context.Context, _ string, employeeIDs []string, date time.Time) ([]timeentry.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastIDs = employeeIDs
	if f.err != nil {
		return nil, f.err
	}
	wanted := make(map[string]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		wanted[id] = true
	}
	var out []timeentry.TimeEntry
	for _, e := range f.entries {
		if wanted[e.EmployeeID] && e.Date.Equal(date) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeCompanies struct {
	known map[string]bool
	err   error
}

func (f *fakeCompanies) Exists(_ context.Context, id string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.known[id], nil
}

type recordingObserver struct {
	mu     sync.Mutex
	counts map[string]int
	runs   int
}

func (r *recordingObserver) ObserveClassification(counts map[string]int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = make(map[string]int)
	}
	for k, v := range counts {
		r.counts[k] += v
	}
	r.runs++
}

func day(s string) time.Time {
	d, err := time.Parse(attendance.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func at(date string, clock string) *time.Time {
	t, err := shift.On(day(date), clock)
	if err != nil {
		panic(err)
	}
	return &t
}

var dayShift = &shift.WorkShift{ID: "shift-day", Name: "Day", StartTime: "08:00", EndTime: "16:00", IsActive: true}

// weekdays schedules Monday to Friday on ws and marks the weekend as non-work days.
func weekdays(id, first, last string, ws *shift.WorkShift) schedule.RosterEmployee {
	emp := schedule.RosterEmployee{ID: id, FirstName: first, LastName: last}
	for d := 0; d < 7; d++ {
		s := schedule.Schedule{EmployeeID: id, DayOfWeek: d, IsWorkDay: d >= 1 && d <= 5}
		if s.IsWorkDay && ws != nil {
			s.WorkShiftID = &ws.ID
			s.WorkShift = ws
		}
		emp.Schedules = append(emp.Schedules, s)
	}
	return emp
}

func entry(employeeID, date string, clockIn, clockOut *time.Time) timeentry.TimeEntry {
	return timeentry.TimeEntry{
		ID:         employeeID + "-" + date,
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Date:       day(date),
		ClockIn:    clockIn,
		ClockOut:   clockOut,
	}
}

type fixture struct {
	holidays  *fakeHolidays
	roster    *fakeRoster
	entries   *fakeEntries
	companies *fakeCompanies
}

func newFixture() *fixture {
	return &fixture{
		holidays:  &fakeHolidays{byDate: map[string]holiday.Holiday{}},
		roster:    &fakeRoster{},
		entries:   &fakeEntries{},
		companies: &fakeCompanies{known: map[string]bool{companyID: true}},
	}
}

func (f *fixture) service(opts ...Option) attendance.AttendanceService {
	return NewAttendanceService(f.holidays, f.roster, f.entries, f.companies, opts...)
}

func TestIsWorkDay(t *testing.T) {
	f := newFixture()
	f.holidays.byDate["2024-01-01"] = holiday.Holiday{Name: "Año Nuevo", Date: day("2024-01-01")}
	f.holidays.byDate["2024-01-06"] = holiday.Holiday{Name: "Reyes", Date: day("2024-01-06")}
	svc := f.service()

	tests := []struct {
		name      string
		date      string
		isWorkDay bool
		reason    string
		kind      attendance.SpecialDayType
	}{
		{name: "holiday on a weekday", date: "2024-01-01", reason: "Feriado: Año Nuevo", kind: attendance.SpecialDayHoliday},
		{name: "holiday beats saturday", date: "2024-01-06", reason: "Feriado: Reyes", kind: attendance.SpecialDayHoliday},
		{name: "sunday", date: "2024-01-07", reason: "Domingo", kind: attendance.SpecialDayWeekend},
		{name: "saturday", date: "2024-01-13", reason: "Sábado", kind: attendance.SpecialDayWeekend},
		{name: "ordinary wednesday", date: "2024-01-03", isWorkDay: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := svc.IsWorkDay(context.Background(), companyID, day(tt.date))
			require.NoError(t, err)
			assert.Equal(t, tt.isWorkDay, info.IsWorkDay)
			assert.Equal(t, tt.date, info.Date)
			if tt.isWorkDay {
				assert.Nil(t, info.Reason)
				assert.Nil(t, info.SpecialDayType)
				return
			}
			require.NotNil(t, info.Reason)
			require.NotNil(t, info.SpecialDayType)
			assert.Equal(t, tt.reason, *info.Reason)
			assert.Equal(t, tt.kind, *info.SpecialDayType)
		})
	}
}

func TestIsWorkDay_NoCrossYearMatch(t *testing.T) {
	f := newFixture()
	f.holidays.byDate["2023-01-02"] = holiday.Holiday{Name: "Old", Date: day("2023-01-02"), IsRecurring: true}

	info, err := f.service().IsWorkDay(context.Background(), companyID, day("2024-01-02"))
	require.NoError(t, err)
	assert.True(t, info.IsWorkDay)
}

func TestIsWorkDay_HolidayLookupErrorPropagates(t *testing.T) {
	f := newFixture()
	f.holidays.err = assert.AnError

	_, err := f.service().IsWorkDay(context.Background(), companyID, day("2024-01-03"))
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestGetScheduledEmployees(t *testing.T) {
	f := newFixture()
	noShift := weekdays("emp-noshift", "Nora", "Free", nil)
	partTime := weekdays("emp-part", "Paul", "Part", dayShift)
	partTime.Schedules[3].IsWorkDay = false
	noRows := schedule.RosterEmployee{ID: "emp-norows", FirstName: "Nick", LastName: "None"}
	f.roster.employees = []schedule.RosterEmployee{
		weekdays("emp-full", "Ana", "Full", dayShift),
		noShift,
		partTime,
		noRows,
	}
	svc := f.service()

	wednesday, err := svc.GetScheduledEmployees(context.Background(), companyID, day("2024-01-03"))
	require.NoError(t, err)
	require.Len(t, wednesday, 2)
	assert.Equal(t, "emp-full", wednesday[0].ID)
	require.NotNil(t, wednesday[0].Schedule)
	assert.Equal(t, "08:00", wednesday[0].Schedule.StartTime)
	assert.Equal(t, "16:00", wednesday[0].Schedule.EndTime)
	assert.Equal(t, "emp-noshift", wednesday[1].ID)
	assert.Nil(t, wednesday[1].Schedule)

	tuesday, err := svc.GetScheduledEmployees(context.Background(), companyID, day("2024-01-02"))
	require.NoError(t, err)
	assert.Len(t, tuesday, 3)

	sunday, err := svc.GetScheduledEmployees(context.Background(), companyID, day("2024-01-07"))
	require.NoError(t, err)
	assert.Empty(t, sunday)
}

func TestGetScheduledEmployees_IgnoresHolidays(t *testing.T) {
	f := newFixture()
	f.holidays.byDate["2024-01-01"] = holiday.Holiday{Name: "Año Nuevo"}
	f.roster.employees = []schedule.RosterEmployee{weekdays("emp-1", "Ana", "Full", dayShift)}

	scheduled, err := f.service().GetScheduledEmployees(context.Background(), companyID, day("2024-01-01"))
	require.NoError(t, err)
	assert.Len(t, scheduled, 1)
}

func TestClassify(t *testing.T) {
	const date = "2024-01-03"
	tests := []struct {
		name        string
		ws          *shift.WorkShift
		entry       *timeentry.TimeEntry
		grace       time.Duration
		status      attendance.Status
		isLate      bool
		lateMinutes int
	}{
		{name: "no entry", ws: dayShift, status: attendance.StatusAbsent},
		{
			name:   "entry without clock in",
			ws:     dayShift,
			entry:  ptr(entry("emp-1", date, nil, nil)),
			status: attendance.StatusAbsent,
		},
		{
			name:   "clock in before start",
			ws:     dayShift,
			entry:  ptr(entry("emp-1", date, at(date, "07:50"), nil)),
			status: attendance.StatusWorking,
		},
		{
			name:   "clock in exactly at start",
			ws:     dayShift,
			entry:  ptr(entry("emp-1", date, at(date, "08:00"), nil)),
			status: attendance.StatusWorking,
		},
		{
			name:        "clock in after start",
			ws:          dayShift,
			entry:       ptr(entry("emp-1", date, at(date, "08:15"), nil)),
			status:      attendance.StatusLate,
			isLate:      true,
			lateMinutes: 15,
		},
		{
			name:   "no shift is never late",
			entry:  ptr(entry("emp-1", date, at(date, "11:45"), nil)),
			status: attendance.StatusWorking,
		},
		{
			name:   "within grace period",
			ws:     dayShift,
			entry:  ptr(entry("emp-1", date, at(date, "08:04"), nil)),
			grace:  5 * time.Minute,
			status: attendance.StatusWorking,
		},
		{
			name:        "past grace period counts from start",
			ws:          dayShift,
			entry:       ptr(entry("emp-1", date, at(date, "08:06"), nil)),
			grace:       5 * time.Minute,
			status:      attendance.StatusLate,
			isLate:      true,
			lateMinutes: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.roster.employees = []schedule.RosterEmployee{weekdays("emp-1", "Ana", "Full", tt.ws)}
			if tt.entry != nil {
				f.entries.entries = []timeentry.TimeEntry{*tt.entry}
			}

			statuses, err := f.service(WithGracePeriod(tt.grace)).Classify(context.Background(), companyID, day(date))
			require.NoError(t, err)
			require.Len(t, statuses, 1)

			st := statuses[0]
			assert.Equal(t, "emp-1", st.EmployeeID)
			assert.Equal(t, "Ana", st.FirstName)
			assert.Equal(t, tt.status, st.Status)
			assert.Equal(t, tt.isLate, st.IsLate)
			assert.Equal(t, tt.lateMinutes, st.LateMinutes)
			if tt.ws == nil {
				assert.Nil(t, st.ScheduledStart)
				assert.Nil(t, st.ScheduledEnd)
			} else {
				require.NotNil(t, st.ScheduledStart)
				assert.Equal(t, *at(date, tt.ws.StartTime), *st.ScheduledStart)
			}
		})
	}
}

func TestClassify_ClockOutCarriedThrough(t *testing.T) {
	const date = "2024-01-03"
	f := newFixture()
	f.roster.employees = []schedule.RosterEmployee{
		weekdays("emp-1", "Ana", "Full", dayShift),
		weekdays("emp-2", "Ben", "Gone", dayShift),
	}
	f.entries.entries = []timeentry.TimeEntry{
		entry("emp-1", date, at(date, "07:55"), at(date, "16:05")),
		entry("emp-2", date, nil, at(date, "12:00")),
	}

	statuses, err := f.service().Classify(context.Background(), companyID, day(date))
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	assert.Equal(t, attendance.StatusWorking, statuses[0].Status)
	require.NotNil(t, statuses[0].ClockOut)
	assert.Equal(t, *at(date, "16:05"), *statuses[0].ClockOut)

	assert.Equal(t, attendance.StatusAbsent, statuses[1].Status)
	require.NotNil(t, statuses[1].ClockOut)
}

func TestClassify_NightShiftComparesSameDayStart(t *testing.T) {
	const date = "2024-01-03"
	night := &shift.WorkShift{ID: "shift-night", StartTime: "22:00", EndTime: "06:00", IsNightShift: true}
	f := newFixture()
	f.roster.employees = []schedule.RosterEmployee{
		weekdays("emp-early", "Eve", "Early", night),
		weekdays("emp-late", "Lou", "Late", night),
	}
	f.entries.entries = []timeentry.TimeEntry{
		entry("emp-early", date, at(date, "21:55"), nil),
		entry("emp-late", date, at(date, "22:30"), nil),
	}

	statuses, err := f.service().Classify(context.Background(), companyID, day(date))
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	assert.Equal(t, attendance.StatusWorking, statuses[0].Status)
	assert.Equal(t, attendance.StatusLate, statuses[1].Status)
	assert.Equal(t, 30, statuses[1].LateMinutes)

	require.NotNil(t, statuses[0].ScheduledEnd)
	assert.Equal(t, *at("2024-01-04", "06:00"), *statuses[0].ScheduledEnd)
}

func TestClassify_SingleBatchedFetch(t *testing.T) {
	f := newFixture()
	f.roster.employees = []schedule.RosterEmployee{
		weekdays("emp-1", "Ana", "A", dayShift),
		weekdays("emp-2", "Ben", "B", dayShift),
		weekdays("emp-3", "Cy", "C", dayShift),
	}

	_, err := f.service().Classify(context.Background(), companyID, day("2024-01-03"))
	require.NoError(t, err)
	assert.Equal(t, 1, f.entries.calls)
	assert.ElementsMatch(t, []string{"emp-1", "emp-2", "emp-3"}, f.entries.lastIDs)
}

func TestClassify_NobodyScheduledSkipsFetch(t *testing.T) {
	f := newFixture()
	f.roster.employees = []schedule.RosterEmployee{weekdays("emp-1", "Ana", "A", dayShift)}

	statuses, err := f.service().Classify(context.Background(), companyID, day("2024-01-07"))
	require.NoError(t, err)
	assert.Empty(t, statuses)
	assert.Equal(t, 0, f.entries.calls)
}

func TestClassify_TimeEntryErrorPropagates(t *testing.T) {
	f := newFixture()
	f.roster.employees = []schedule.RosterEmployee{weekdays("emp-1", "Ana", "A", dayShift)}
	f.entries.err = assert.AnError

	statuses, err := f.service().Classify(context.Background(), companyID, day("2024-01-03"))
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, statuses)
}

func TestClassifyEmployees_IncludeUnscheduled(t *testing.T) {
	const date = "2024-01-03"
	f := newFixture()
	off := weekdays("emp-off", "Olga", "Off", dayShift)
	off.Schedules[3].IsWorkDay = false
	f.roster.employees = []schedule.RosterEmployee{weekdays("emp-1", "Ana", "A", dayShift), off}
	d := day(date)

	without, err := f.service().ClassifyEmployees(context.Background(), companyID, &d, false)
	require.NoError(t, err)
	require.Len(t, without, 1)

	with, err := f.service().ClassifyEmployees(context.Background(), companyID, &d, true)
	require.NoError(t, err)
	require.Len(t, with, 2)
	assert.Equal(t, "emp-off", with[1].EmployeeID)
	assert.Equal(t, attendance.StatusNotScheduled, with[1].Status)

	stats, err := f.service().ComputeDailyStats(context.Background(), companyID, &d)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.EmployeesScheduled)
}

func TestClassifyEmployees_DefaultsToToday(t *testing.T) {
	f := newFixture()
	f.roster.employees = []schedule.RosterEmployee{weekdays("emp-1", "Ana", "A", dayShift)}
	clock := func() time.Time { return time.Date(2024, 1, 3, 23, 30, 0, 0, time.UTC) }
	f.entries.entries = []timeentry.TimeEntry{entry("emp-1", "2024-01-03", at("2024-01-03", "07:00"), nil)}

	statuses, err := f.service(WithClock(clock)).ClassifyEmployees(context.Background(), companyID, nil, false)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, attendance.StatusWorking, statuses[0].Status)
}

func TestComputeDailyStats(t *testing.T) {
	const date = "2024-01-03"
	f := newFixture()
	f.roster.employees = []schedule.RosterEmployee{
		weekdays("emp-on-time", "Ana", "A", dayShift),
		weekdays("emp-late", "Ben", "B", dayShift),
		weekdays("emp-absent", "Cy", "C", dayShift),
		weekdays("emp-noshift", "Di", "D", nil),
	}
	f.entries.entries = []timeentry.TimeEntry{
		entry("emp-on-time", date, at(date, "07:50"), nil),
		entry("emp-late", date, at(date, "08:15"), nil),
		entry("emp-noshift", date, at(date, "13:00"), nil),
	}
	observer := &recordingObserver{}
	svc := f.service(WithObserver(observer))
	d := day(date)

	stats, err := svc.ComputeDailyStats(context.Background(), companyID, &d)
	require.NoError(t, err)

	assert.Equal(t, date, stats.Date)
	assert.Equal(t, 4, stats.EmployeesScheduled)
	assert.Equal(t, 3, stats.EmployeesWorking)
	assert.Equal(t, 1, stats.EmployeesLate)
	assert.Equal(t, 1, stats.EmployeesAbsent)
	assert.Equal(t, stats.EmployeesScheduled, stats.EmployeesWorking+stats.EmployeesAbsent)
	assert.True(t, stats.IsWorkDay)
	assert.Nil(t, stats.WorkDayReason)

	again, err := svc.ComputeDailyStats(context.Background(), companyID, &d)
	require.NoError(t, err)
	assert.Equal(t, stats, again)

	assert.Equal(t, 2, observer.runs)
	assert.Equal(t, 4, observer.counts["working"])
	assert.Equal(t, 2, observer.counts["late"])
	assert.Equal(t, 2, observer.counts["absent"])
}

func TestComputeDailyStats_NewYearHoliday(t *testing.T) {
	f := newFixture()
	f.holidays.byDate["2024-01-01"] = holiday.Holiday{Name: "Año Nuevo", Date: day("2024-01-01")}
	f.roster.employees = []schedule.RosterEmployee{weekdays("emp-1", "Ana", "A", dayShift)}
	d := day("2024-01-01")

	stats, err := f.service().ComputeDailyStats(context.Background(), companyID, &d)
	require.NoError(t, err)

	assert.False(t, stats.IsWorkDay)
	require.NotNil(t, stats.WorkDayReason)
	assert.Equal(t, "Feriado: Año Nuevo", *stats.WorkDayReason)
	assert.Equal(t, 1, stats.EmployeesScheduled)
	assert.Equal(t, 1, stats.EmployeesAbsent)
	assert.Equal(t, 0, stats.EmployeesWorking)
}

func TestComputeDailyStats_UnknownCompany(t *testing.T) {
	f := newFixture()
	d := day("2024-01-03")

	_, err := f.service().ComputeDailyStats(context.Background(), "missing", &d)
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)

	_, err = f.service().ClassifyEmployees(context.Background(), "missing", &d, false)
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)

	_, err = f.service().CheckWorkDay(context.Background(), "missing", d)
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)

	_, err = f.service().ListScheduledEmployees(context.Background(), "missing", d)
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestCheckWorkDay_KnownCompany(t *testing.T) {
	f := newFixture()
	f.roster.employees = []schedule.RosterEmployee{weekdays("e1", "Ana", "Silva", dayShift)}

	info, err := f.service().CheckWorkDay(context.Background(), companyID, day("2024-01-06"))
	require.NoError(t, err)
	assert.False(t, info.IsWorkDay)

	scheduled, err := f.service().ListScheduledEmployees(context.Background(), companyID, day("2024-01-03"))
	require.NoError(t, err)
	assert.Len(t, scheduled, 1)
}

func TestComputeDailyStats_StoreFailuresPropagate(t *testing.T) {
	d := day("2024-01-03")

	t.Run("roster", func(t *testing.T) {
		f := newFixture()
		f.roster.err = assert.AnError
		_, err := f.service().ComputeDailyStats(context.Background(), companyID, &d)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("holidays", func(t *testing.T) {
		f := newFixture()
		f.holidays.err = assert.AnError
		_, err := f.service().ComputeDailyStats(context.Background(), companyID, &d)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("company lookup", func(t *testing.T) {
		f := newFixture()
		f.companies.err = assert.AnError
		_, err := f.service().ComputeDailyStats(context.Background(), companyID, &d)
		assert.ErrorIs(t, err, assert.AnError)
		assert.NotErrorIs(t, err, company.ErrCompanyNotFound)
	})
}

func ptr[T any](v T) *T {
	return &v
}
