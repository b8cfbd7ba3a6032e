package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
)

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}

// joinedShift holds the nullable columns of a LEFT JOIN on work_shifts.
type joinedShift struct {
	ID           *string
	CompanyID    *string
	Name         *string
	StartTime    *string
	EndTime      *string
	IsNightShift *bool
	IsActive     *bool
}

func (j joinedShift) toShift() *shift.WorkShift {
	if j.ID == nil {
		return nil
	}
	s := &shift.WorkShift{ID: *j.ID}
	if j.CompanyID != nil {
		s.CompanyID = *j.CompanyID
	}
	if j.Name != nil {
		s.Name = *j.Name
	}
	if j.StartTime != nil {
		s.StartTime = *j.StartTime
	}
	if j.EndTime != nil {
		s.EndTime = *j.EndTime
	}
	if j.IsNightShift != nil {
		s.IsNightShift = *j.IsNightShift
	}
	if j.IsActive != nil {
		s.IsActive = *j.IsActive
	}
	return s
}

const joinedShiftColumns = `ws.id, ws.company_id, ws.name, to_char(ws.start_time, 'HH24:MI'), to_char(ws.end_time, 'HH24:MI'),
	ws.is_night_shift, ws.is_active`

// ListByEmployee implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.employee_id, s.day_of_week, s.is_work_day, s.work_shift_id, s.created_at, s.updated_at,
			` + joinedShiftColumns + `
		FROM schedules s
		JOIN employees e ON e.id = s.employee_id
		LEFT JOIN work_shifts ws ON ws.id = s.work_shift_id
		WHERE s.employee_id = $1 AND e.company_id = $2
		ORDER BY s.day_of_week
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	schedules := []schedule.Schedule{}
	for rows.Next() {
		var s schedule.Schedule
		var j joinedShift
		err := rows.Scan(
			&s.ID, &s.EmployeeID, &s.DayOfWeek, &s.IsWorkDay, &s.WorkShiftID, &s.CreatedAt, &s.UpdatedAt,
			&j.ID, &j.CompanyID, &j.Name, &j.StartTime, &j.EndTime, &j.IsNightShift, &j.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		s.WorkShift = j.toShift()
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schedules: %w", err)
	}
	return schedules, nil
}

// Upsert implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Upsert(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO schedules (employee_id, day_of_week, is_work_day, work_shift_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, day_of_week)
		DO UPDATE SET is_work_day = EXCLUDED.is_work_day, work_shift_id = EXCLUDED.work_shift_id, updated_at = NOW()
		RETURNING id, employee_id, day_of_week, is_work_day, work_shift_id, created_at, updated_at
	`

	var saved schedule.Schedule
	err := q.QueryRow(ctx, query, s.EmployeeID, s.DayOfWeek, s.IsWorkDay, s.WorkShiftID).Scan(
		&saved.ID, &saved.EmployeeID, &saved.DayOfWeek, &saved.IsWorkDay, &saved.WorkShiftID, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("failed to upsert schedule for day %d: %w", s.DayOfWeek, err)
	}
	saved.WorkShift = s.WorkShift
	return saved, nil
}

type employeeRosterImpl struct {
	db *database.DB
}

func NewEmployeeRoster(db *database.DB) schedule.EmployeeRoster {
	return &employeeRosterImpl{db: db}
}

// ListActiveWithSchedules implements schedule.EmployeeRoster.
func (r *employeeRosterImpl) ListActiveWithSchedules(ctx context.Context, companyID string) ([]schedule.RosterEmployee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.first_name, e.last_name,
			s.id, s.day_of_week, s.is_work_day, s.work_shift_id, s.created_at, s.updated_at,
			` + joinedShiftColumns + `
		FROM employees e
		LEFT JOIN schedules s ON s.employee_id = e.id
		LEFT JOIN work_shifts ws ON ws.id = s.work_shift_id
		WHERE e.company_id = $1 AND e.status = 'ACTIVE'
		ORDER BY e.last_name, e.first_name, e.id, s.day_of_week
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee roster: %w", err)
	}
	defer rows.Close()

	roster := []schedule.RosterEmployee{}
	index := make(map[string]int)
	for rows.Next() {
		var (
			empID, firstName, lastName string
			schedID, workShiftID       *string
			dayOfWeek                  *int
			isWorkDay                  *bool
			createdAt, updatedAt       *time.Time
			j                          joinedShift
		)
		err := rows.Scan(
			&empID, &firstName, &lastName,
			&schedID, &dayOfWeek, &isWorkDay, &workShiftID, &createdAt, &updatedAt,
			&j.ID, &j.CompanyID, &j.Name, &j.StartTime, &j.EndTime, &j.IsNightShift, &j.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roster row: %w", err)
		}

		i, ok := index[empID]
		if !ok {
			roster = append(roster, schedule.RosterEmployee{ID: empID, FirstName: firstName, LastName: lastName})
			i = len(roster) - 1
			index[empID] = i
		}
		if schedID == nil {
			continue
		}

		s := schedule.Schedule{
			ID:          *schedID,
			EmployeeID:  empID,
			DayOfWeek:   *dayOfWeek,
			IsWorkDay:   *isWorkDay,
			WorkShiftID: workShiftID,
			WorkShift:   j.toShift(),
		}
		if createdAt != nil {
			s.CreatedAt = *createdAt
		}
		if updatedAt != nil {
			s.UpdatedAt = *updatedAt
		}
		roster[i].Schedules = append(roster[i].Schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roster: %w", err)
	}
	return roster, nil
}
