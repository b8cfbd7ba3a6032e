package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workShiftRepositoryImpl struct {
	db *database.DB
}

func NewWorkShiftRepository(db *database.DB) shift.WorkShiftRepository {
	return &workShiftRepositoryImpl{db: db}
}

// TIME columns are read back as HH:MM text.
const workShiftColumns = `id, company_id, name, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	is_night_shift, is_active, created_at, updated_at`

func scanWorkShift(row pgx.Row) (shift.WorkShift, error) {
	var s shift.WorkShift
	err := row.Scan(&s.ID, &s.CompanyID, &s.Name, &s.StartTime, &s.EndTime, &s.IsNightShift, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// GetByID implements shift.WorkShiftRepository.
func (r *workShiftRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (shift.WorkShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workShiftColumns + ` FROM work_shifts WHERE id = $1 AND company_id = $2`

	s, err := scanWorkShift(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.WorkShift{}, shift.ErrShiftNotFound
		}
		return shift.WorkShift{}, fmt.Errorf("failed to get work shift with id %s: %w", id, err)
	}
	return s, nil
}

// List implements shift.WorkShiftRepository.
func (r *workShiftRepositoryImpl) List(ctx context.Context, companyID string, activeOnly bool) ([]shift.WorkShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workShiftColumns + ` FROM work_shifts WHERE company_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY start_time, name`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work shifts: %w", err)
	}
	defer rows.Close()

	shifts := []shift.WorkShift{}
	for rows.Next() {
		s, err := scanWorkShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate work shifts: %w", err)
	}
	return shifts, nil
}

// Create implements shift.WorkShiftRepository.
func (r *workShiftRepositoryImpl) Create(ctx context.Context, s shift.WorkShift) (shift.WorkShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_shifts (company_id, name, start_time, end_time, is_night_shift, is_active)
		VALUES ($1, $2, $3::time, $4::time, $5, $6)
		RETURNING ` + workShiftColumns

	created, err := scanWorkShift(q.QueryRow(ctx, query, s.CompanyID, s.Name, s.StartTime, s.EndTime, s.IsNightShift, s.IsActive))
	if err != nil {
		return shift.WorkShift{}, fmt.Errorf("failed to create work shift: %w", err)
	}
	return created, nil
}

// Update implements shift.WorkShiftRepository.
func (r *workShiftRepositoryImpl) Update(ctx context.Context, s shift.WorkShift) (shift.WorkShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE work_shifts
		SET name = $1, start_time = $2::time, end_time = $3::time, is_night_shift = $4, is_active = $5, updated_at = NOW()
		WHERE id = $6 AND company_id = $7
		RETURNING ` + workShiftColumns

	updated, err := scanWorkShift(q.QueryRow(ctx, query, s.Name, s.StartTime, s.EndTime, s.IsNightShift, s.IsActive, s.ID, s.CompanyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.WorkShift{}, shift.ErrShiftNotFound
		}
		return shift.WorkShift{}, fmt.Errorf("failed to update work shift with id %s: %w", s.ID, err)
	}
	return updated, nil
}

// Delete implements shift.WorkShiftRepository.
func (r *workShiftRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM work_shifts WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete work shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}

// ExistsByName implements shift.WorkShiftRepository.
func (r *workShiftRepositoryImpl) ExistsByName(ctx context.Context, companyID string, name string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM work_shifts WHERE company_id = $1 AND name = $2`
	args := []interface{}{companyID, name}
	if excludeID != nil {
		query += ` AND id <> $3`
		args = append(args, *excludeID)
	}
	query += `)`

	var exists bool
	if err := q.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check work shift name: %w", err)
	}
	return exists, nil
}

// IsReferenced implements shift.WorkShiftRepository.
func (r *workShiftRepositoryImpl) IsReferenced(ctx context.Context, id string, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1
			FROM schedules s
			JOIN employees e ON e.id = s.employee_id
			WHERE s.work_shift_id = $1 AND e.company_id = $2
		)
	`

	var referenced bool
	if err := q.QueryRow(ctx, query, id, companyID).Scan(&referenced); err != nil {
		return false, fmt.Errorf("failed to check work shift references: %w", err)
	}
	return referenced, nil
}

// CountActive implements shift.WorkShiftRepository.
func (r *workShiftRepositoryImpl) CountActive(ctx context.Context, companyID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM work_shifts WHERE company_id = $1 AND is_active = TRUE`, companyID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active work shifts: %w", err)
	}
	return count, nil
}
