package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
)

type fakeStats struct {
	err      error
	lastDate time.Time
}

func (f *fakeStats) GetDailyAttendanceStats(_ context.Context, _ string, date time.Time) (attendance.DailyAttendanceStats, error) {
	f.lastDate = date
	if f.err != nil {
		return attendance.DailyAttendanceStats{}, f.err
	}
	return attendance.DailyAttendanceStats{
		Date:               date.Format(attendance.DateLayout),
		EmployeesWorking:   3,
		EmployeesLate:      1,
		EmployeesAbsent:    2,
		EmployeesScheduled: 5,
		IsWorkDay:          true,
	}, nil
}

type fakeEmployees struct{ err error }

func (f fakeEmployees) CountByStatus(context.Context, string) (employee.StatusCounts, error) {
	return employee.StatusCounts{Total: 7, Active: 5, Inactive: 1, Suspended: 1}, f.err
}

func (f fakeEmployees) CountByDepartment(context.Context, string) ([]employee.DepartmentCount, error) {
	return []employee.DepartmentCount{{Department: "Ops", Count: 3}, {Department: "Sales", Count: 2}}, nil
}

type fakeRoles struct{}

func (fakeRoles) CountByRole(context.Context, string) ([]user.RoleCount, error) {
	return []user.RoleCount{{Role: user.RoleOwner, Count: 1}, {Role: user.RoleEmployee, Count: 6}}, nil
}

type fakeHolidays struct {
	from, until time.Time
}

func (f *fakeHolidays) Count(_ context.Context, _ string, from time.Time, until time.Time) (holiday.Counts, error) {
	f.from, f.until = from, until
	return holiday.Counts{ThisYear: 12, Upcoming: 2}, nil
}

type fakeShifts struct{}

func (fakeShifts) CountActive(context.Context, string) (int64, error) { return 3, nil }

type fakeCompanies struct{ exists bool }

func (f fakeCompanies) Exists(context.Context, string) (bool, error) { return f.exists, nil }

func TestGetDashboard(t *testing.T) {
	stats := &fakeStats{}
	hol := &fakeHolidays{}
	svc := NewDashboardService(stats, fakeEmployees{}, fakeRoles{}, hol, fakeShifts{}, fakeCompanies{exists: true})
	date := time.Date(2024, 3, 4, 15, 0, 0, 0, time.UTC)

	resp, err := svc.GetDashboard(context.Background(), "c1", &date)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-04", resp.Date)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), stats.lastDate)
	assert.Equal(t, 5, resp.Attendance.EmployeesScheduled)
	assert.Equal(t, int64(7), resp.Employees.Total)
	assert.Equal(t, int64(1), resp.Employees.Suspended)
	assert.Len(t, resp.Departments, 2)
	assert.Len(t, resp.Roles, 2)
	assert.Equal(t, int64(12), resp.Holidays.ThisYear)
	assert.Equal(t, int64(2), resp.Holidays.UpcomingIn30Day)
	assert.Equal(t, int64(3), resp.ActiveShifts)
	assert.Equal(t, 30*24*time.Hour, hol.until.Sub(hol.from))
}

func TestGetDashboard_AnyBranchFailureFailsWhole(t *testing.T) {
	svc := NewDashboardService(&fakeStats{}, fakeEmployees{err: assert.AnError}, fakeRoles{}, &fakeHolidays{}, fakeShifts{}, fakeCompanies{exists: true})

	_, err := svc.GetDashboard(context.Background(), "c1", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestGetDashboard_UnknownCompany(t *testing.T) {
	svc := NewDashboardService(&fakeStats{}, fakeEmployees{}, fakeRoles{}, &fakeHolidays{}, fakeShifts{}, fakeCompanies{})

	_, err := svc.GetDashboard(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}
