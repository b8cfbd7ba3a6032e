package schedule

import "context"

type ScheduleService interface {
	GetWeekly(ctx context.Context, companyID string, employeeID string) (WeeklyScheduleResponse, error)
	UpsertDay(ctx context.Context, companyID string, employeeID string, req DayScheduleRequest) (DayScheduleResponse, error)
	ReplaceWeek(ctx context.Context, companyID string, employeeID string, req ReplaceWeekRequest) (WeeklyScheduleResponse, error)
}
