package dashboard

import (
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
)

type DashboardResponse struct {
	Date         string                          `json:"date"`
	Attendance   attendance.DailyAttendanceStats `json:"attendance"`
	Employees    EmployeeSummary                 `json:"employees"`
	Departments  []employee.DepartmentCount      `json:"departments"`
	Roles        []user.RoleCount                `json:"roles"`
	Holidays     HolidaySummary                  `json:"holidays"`
	ActiveShifts int64                           `json:"active_shifts"`
}

type EmployeeSummary struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Inactive  int64 `json:"inactive"`
	Suspended int64 `json:"suspended"`
}

type HolidaySummary struct {
	ThisYear        int64 `json:"this_year"`
	UpcomingIn30Day int64 `json:"upcoming_30_days"`
}
