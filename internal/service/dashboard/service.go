package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
)

const upcomingHolidayWindow = 30 * 24 * time.Hour

type DashboardServiceImpl struct {
	attendance dashboard.AttendanceStats
	employees  dashboard.EmployeeCounter
	roles      dashboard.RoleCounter
	holidays   dashboard.HolidayCounter
	shifts     dashboard.ShiftCounter
	companies  attendance.CompanyChecker
	now        func() time.Time
}

func NewDashboardService(
	attendanceStats dashboard.AttendanceStats,
	employees dashboard.EmployeeCounter,
	roles dashboard.RoleCounter,
	holidays dashboard.HolidayCounter,
	shifts dashboard.ShiftCounter,
	companies attendance.CompanyChecker,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		attendance: attendanceStats,
		employees:  employees,
		roles:      roles,
		holidays:   holidays,
		shifts:     shifts,
		companies:  companies,
		now:        time.Now,
	}
}

// GetDashboard returns the combined dashboard. Each section is one query, run in parallel;
// the first failure cancels the rest and fails the whole call.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, companyID string, date *time.Time) (dashboard.DashboardResponse, error) {
	day := attendance.DayOf(s.now())
	if date != nil {
		day = attendance.DayOf(*date)
	}

	exists, err := s.companies.Exists(ctx, companyID)
	if err != nil {
		return dashboard.DashboardResponse{}, fmt.Errorf("failed to check company: %w", err)
	}
	if !exists {
		return dashboard.DashboardResponse{}, company.ErrCompanyNotFound
	}

	var (
		stats        attendance.DailyAttendanceStats
		statusCounts employee.StatusCounts
		departments  []employee.DepartmentCount
		roles        []user.RoleCount
		holidays     holiday.Counts
		activeShifts int64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		stats, err = s.attendance.GetDailyAttendanceStats(gctx, companyID, day)
		if err != nil {
			return fmt.Errorf("attendance stats: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		statusCounts, err = s.employees.CountByStatus(gctx, companyID)
		if err != nil {
			return fmt.Errorf("employee status counts: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		departments, err = s.employees.CountByDepartment(gctx, companyID)
		if err != nil {
			return fmt.Errorf("department counts: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		roles, err = s.roles.CountByRole(gctx, companyID)
		if err != nil {
			return fmt.Errorf("role counts: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		holidays, err = s.holidays.Count(gctx, companyID, day, day.Add(upcomingHolidayWindow))
		if err != nil {
			return fmt.Errorf("holiday counts: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		activeShifts, err = s.shifts.CountActive(gctx, companyID)
		if err != nil {
			return fmt.Errorf("active shift count: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.DashboardResponse{}, err
	}

	return dashboard.DashboardResponse{
		Date:       day.Format(attendance.DateLayout),
		Attendance: stats,
		Employees: dashboard.EmployeeSummary{
			Total:     statusCounts.Total,
			Active:    statusCounts.Active,
			Inactive:  statusCounts.Inactive,
			Suspended: statusCounts.Suspended,
		},
		Departments: departments,
		Roles:       roles,
		Holidays: dashboard.HolidaySummary{
			ThisYear:        holidays.ThisYear,
			UpcomingIn30Day: holidays.Upcoming,
		},
		ActiveShifts: activeShifts,
	}, nil
}
