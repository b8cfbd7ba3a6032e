package user

type Permission string

const (
	// Employee Management
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"

	// Scheduling
	PermissionScheduleManage Permission = "schedule.manage"
	PermissionShiftManage    Permission = "shift.manage"
	PermissionHolidayManage  Permission = "holiday.manage"

	// Time Entries
	PermissionTimeEntryViewAll   Permission = "time_entry.view_all"
	PermissionTimeEntryManage    Permission = "time_entry.manage"
	PermissionTimeEntryClockSelf Permission = "time_entry.clock_self"

	// Attendance & Dashboard
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionDashboardView     Permission = "dashboard.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		// Owner has all permissions
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionScheduleManage,
		PermissionShiftManage,
		PermissionHolidayManage,
		PermissionTimeEntryViewAll,
		PermissionTimeEntryManage,
		PermissionTimeEntryClockSelf,
		PermissionAttendanceViewAll,
		PermissionDashboardView,
	},
	RoleManager: {
		// Manager runs the day to day schedule but cannot manage employees
		PermissionEmployeeViewAll,
		PermissionScheduleManage,
		PermissionShiftManage,
		PermissionHolidayManage,
		PermissionTimeEntryViewAll,
		PermissionTimeEntryManage,
		PermissionTimeEntryClockSelf,
		PermissionAttendanceViewAll,
		PermissionDashboardView,
	},
	RoleEmployee: {
		PermissionTimeEntryClockSelf,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
