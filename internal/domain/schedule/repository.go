package schedule

import "context"

type ScheduleRepository interface {
	ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]Schedule, error)
	Upsert(ctx context.Context, s Schedule) (Schedule, error)
}

// EmployeeRoster loads every active employee of a company with the weekly schedule and
// joined shift in one query.
type EmployeeRoster interface {
	ListActiveWithSchedules(ctx context.Context, companyID string) ([]RosterEmployee, error)
}
