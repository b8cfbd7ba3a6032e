package schedule

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	dayShiftID    = "0194f0c5-6f2e-7d3a-9b1c-000000000001"
	oldShiftID    = "0194f0c5-6f2e-7d3a-9b1c-000000000002"
	otherTenantID = "0194f0c5-6f2e-7d3a-9b1c-000000000003"
)

// fakeEmployees only implements the lookup the schedule service uses.
type fakeEmployees struct {
	employee.EmployeeRepository
}

func (fakeEmployees) GetByID(_ context.Context, id string, companyID string) (employee.Employee, error) {
	if id == "ana" && companyID == "c1" {
		return employee.Employee{ID: "ana", CompanyID: "c1", Status: employee.StatusActive}, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

type fakeShifts struct {
	shift.WorkShiftRepository
}

func (fakeShifts) GetByID(_ context.Context, id string, companyID string) (shift.WorkShift, error) {
	shifts := map[string]shift.WorkShift{
		dayShiftID:    {ID: dayShiftID, CompanyID: "c1", Name: "Day", StartTime: "08:00", EndTime: "16:00", IsActive: true},
		oldShiftID:    {ID: oldShiftID, CompanyID: "c1", Name: "Old", StartTime: "06:00", EndTime: "14:00"},
		otherTenantID: {ID: otherTenantID, CompanyID: "c2", Name: "Day", StartTime: "08:00", EndTime: "16:00", IsActive: true},
	}
	ws, ok := shifts[id]
	if !ok || ws.CompanyID != companyID {
		return shift.WorkShift{}, shift.ErrShiftNotFound
	}
	return ws, nil
}

type fakeSchedules struct {
	rows map[int]schedule.Schedule
}

func (f *fakeSchedules) ListByEmployee(_ context.Context, employeeID string, _ string) ([]schedule.Schedule, error) {
	var out []schedule.Schedule
	for day := 0; day < 7; day++ {
		if row, ok := f.rows[day]; ok && row.EmployeeID == employeeID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeSchedules) Upsert(_ context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	f.rows[s.DayOfWeek] = s
	return s, nil
}

// snapshotTx restores the schedule rows when fn fails, like a rolled back transaction.
func snapshotTx(repo *fakeSchedules, calls *int) TxRunner {
	return func(ctx context.Context, fn func(txCtx context.Context) error) error {
		*calls++
		saved := make(map[int]schedule.Schedule, len(repo.rows))
		for k, v := range repo.rows {
			saved[k] = v
		}
		if err := fn(ctx); err != nil {
			repo.rows = saved
			return err
		}
		return nil
	}
}

func strPtr(s string) *string { return &s }

func TestGetWeekly_FillsMissingDays(t *testing.T) {
	repo := &fakeSchedules{rows: map[int]schedule.Schedule{
		1: {EmployeeID: "ana", DayOfWeek: 1, IsWorkDay: true, WorkShift: &shift.WorkShift{ID: dayShiftID, StartTime: "08:00", EndTime: "16:00"}},
	}}
	svc := NewScheduleService(nil, repo, fakeEmployees{}, fakeShifts{})

	week, err := svc.GetWeekly(context.Background(), "c1", "ana")
	require.NoError(t, err)
	require.Len(t, week.Days, 7)
	assert.Equal(t, "Sunday", week.Days[0].DayName)
	assert.False(t, week.Days[0].IsWorkDay)
	assert.True(t, week.Days[1].IsWorkDay)
	require.NotNil(t, week.Days[1].WorkShift)

	_, err = svc.GetWeekly(context.Background(), "c2", "ana")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUpsertDay(t *testing.T) {
	ctx := context.Background()
	repo := &fakeSchedules{rows: map[int]schedule.Schedule{}}
	svc := NewScheduleService(nil, repo, fakeEmployees{}, fakeShifts{})

	day, err := svc.UpsertDay(ctx, "c1", "ana", schedule.DayScheduleRequest{DayOfWeek: 2, IsWorkDay: true, WorkShiftID: strPtr(dayShiftID)})
	require.NoError(t, err)
	assert.Equal(t, "Tuesday", day.DayName)
	require.NotNil(t, repo.rows[2].WorkShiftID)
	assert.Equal(t, dayShiftID, *repo.rows[2].WorkShiftID)

	cases := []struct {
		name string
		req  schedule.DayScheduleRequest
		want error
	}{
		{"inactive shift", schedule.DayScheduleRequest{DayOfWeek: 3, IsWorkDay: true, WorkShiftID: strPtr(oldShiftID)}, schedule.ErrInactiveWorkShift},
		{"shift of another company", schedule.DayScheduleRequest{DayOfWeek: 3, IsWorkDay: true, WorkShiftID: strPtr(otherTenantID)}, shift.ErrShiftNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpsertDay(ctx, "c1", "ana", tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("work day without shift", func(t *testing.T) {
		_, err := svc.UpsertDay(ctx, "c1", "ana", schedule.DayScheduleRequest{DayOfWeek: 4, IsWorkDay: true})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, schedule.ErrShiftRequired.Error(), verrs.ToMap()["work_shift_id"])
	})

	t.Run("day out of range", func(t *testing.T) {
		_, err := svc.UpsertDay(ctx, "c1", "ana", schedule.DayScheduleRequest{DayOfWeek: 7})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "day_of_week")
	})
}

func TestReplaceWeek(t *testing.T) {
	ctx := context.Background()

	t.Run("all days in one transaction", func(t *testing.T) {
		repo := &fakeSchedules{rows: map[int]schedule.Schedule{}}
		var txCalls int
		svc := NewScheduleService(snapshotTx(repo, &txCalls), repo, fakeEmployees{}, fakeShifts{})

		week, err := svc.ReplaceWeek(ctx, "c1", "ana", schedule.ReplaceWeekRequest{Days: []schedule.DayScheduleRequest{
			{DayOfWeek: 1, IsWorkDay: true, WorkShiftID: strPtr(dayShiftID)},
			{DayOfWeek: 2, IsWorkDay: true, WorkShiftID: strPtr(dayShiftID)},
			{DayOfWeek: 0, IsWorkDay: false},
		}})
		require.NoError(t, err)
		assert.Equal(t, 1, txCalls)
		assert.Len(t, repo.rows, 3)
		assert.True(t, week.Days[2].IsWorkDay)
	})

	t.Run("failure rolls back every day", func(t *testing.T) {
		repo := &fakeSchedules{rows: map[int]schedule.Schedule{}}
		var txCalls int
		svc := NewScheduleService(snapshotTx(repo, &txCalls), repo, fakeEmployees{}, fakeShifts{})

		_, err := svc.ReplaceWeek(ctx, "c1", "ana", schedule.ReplaceWeekRequest{Days: []schedule.DayScheduleRequest{
			{DayOfWeek: 1, IsWorkDay: true, WorkShiftID: strPtr(dayShiftID)},
			{DayOfWeek: 2, IsWorkDay: true, WorkShiftID: strPtr(oldShiftID)},
		}})
		assert.ErrorIs(t, err, schedule.ErrInactiveWorkShift)
		assert.Empty(t, repo.rows)
	})

	t.Run("duplicate day", func(t *testing.T) {
		repo := &fakeSchedules{rows: map[int]schedule.Schedule{}}
		var txCalls int
		svc := NewScheduleService(snapshotTx(repo, &txCalls), repo, fakeEmployees{}, fakeShifts{})

		_, err := svc.ReplaceWeek(ctx, "c1", "ana", schedule.ReplaceWeekRequest{Days: []schedule.DayScheduleRequest{
			{DayOfWeek: 5, IsWorkDay: false},
			{DayOfWeek: 5, IsWorkDay: false},
		}})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Zero(t, txCalls)
	})
}
