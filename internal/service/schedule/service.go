package schedule

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/shift"
)

// TxRunner runs fn inside one database transaction.
type TxRunner func(ctx context.Context, fn func(txCtx context.Context) error) error

type scheduleServiceImpl struct {
	withTx       TxRunner
	scheduleRepo schedule.ScheduleRepository
	employeeRepo employee.EmployeeRepository
	shiftRepo    shift.WorkShiftRepository
}

func NewScheduleService(
	withTx TxRunner,
	scheduleRepo schedule.ScheduleRepository,
	employeeRepo employee.EmployeeRepository,
	shiftRepo shift.WorkShiftRepository,
) schedule.ScheduleService {
	return &scheduleServiceImpl{
		withTx:       withTx,
		scheduleRepo: scheduleRepo,
		employeeRepo: employeeRepo,
		shiftRepo:    shiftRepo,
	}
}

// GetWeekly implements schedule.ScheduleService.
func (s *scheduleServiceImpl) GetWeekly(ctx context.Context, companyID string, employeeID string) (schedule.WeeklyScheduleResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID, companyID); err != nil {
		return schedule.WeeklyScheduleResponse{}, err
	}

	rows, err := s.scheduleRepo.ListByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return schedule.WeeklyScheduleResponse{}, fmt.Errorf("failed to load weekly schedule: %w", err)
	}
	return schedule.ToWeeklyResponse(employeeID, rows), nil
}

// UpsertDay implements schedule.ScheduleService.
func (s *scheduleServiceImpl) UpsertDay(ctx context.Context, companyID string, employeeID string, req schedule.DayScheduleRequest) (schedule.DayScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.DayScheduleResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, employeeID, companyID); err != nil {
		return schedule.DayScheduleResponse{}, err
	}

	saved, err := s.upsert(ctx, companyID, employeeID, req)
	if err != nil {
		return schedule.DayScheduleResponse{}, err
	}
	return schedule.ToDayResponse(saved), nil
}

// ReplaceWeek implements schedule.ScheduleService.
func (s *scheduleServiceImpl) ReplaceWeek(ctx context.Context, companyID string, employeeID string, req schedule.ReplaceWeekRequest) (schedule.WeeklyScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.WeeklyScheduleResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, employeeID, companyID); err != nil {
		return schedule.WeeklyScheduleResponse{}, err
	}

	err := s.withTx(ctx, func(txCtx context.Context) error {
		for _, day := range req.Days {
			if _, err := s.upsert(txCtx, companyID, employeeID, day); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return schedule.WeeklyScheduleResponse{}, err
	}

	return s.GetWeekly(ctx, companyID, employeeID)
}

func (s *scheduleServiceImpl) upsert(ctx context.Context, companyID string, employeeID string, day schedule.DayScheduleRequest) (schedule.Schedule, error) {
	row := schedule.Schedule{
		EmployeeID: employeeID,
		DayOfWeek:  day.DayOfWeek,
		IsWorkDay:  day.IsWorkDay,
	}

	if day.WorkShiftID != nil {
		ws, err := s.shiftRepo.GetByID(ctx, *day.WorkShiftID, companyID)
		if err != nil {
			return schedule.Schedule{}, err
		}
		if !ws.IsActive {
			return schedule.Schedule{}, schedule.ErrInactiveWorkShift
		}
		row.WorkShiftID = &ws.ID
		row.WorkShift = &ws
	}

	return s.scheduleRepo.Upsert(ctx, row)
}
