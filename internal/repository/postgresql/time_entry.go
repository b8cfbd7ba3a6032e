package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type timeEntryRepositoryImpl struct {
	db *database.DB
}

func NewTimeEntryRepository(db *database.DB) timeentry.TimeEntryRepository {
	return &timeEntryRepositoryImpl{db: db}
}

const timeEntryColumns = `id, employee_id, company_id, date, clock_in, clock_out, notes, created_at, updated_at`

func scanTimeEntry(row pgx.Row) (timeentry.TimeEntry, error) {
	var e timeentry.TimeEntry
	err := row.Scan(&e.ID, &e.EmployeeID, &e.CompanyID, &e.Date, &e.ClockIn, &e.ClockOut, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if err == nil {
		e.Date = e.Date.UTC()
	}
	return e, err
}

func scanTimeEntries(rows pgx.Rows) ([]timeentry.TimeEntry, error) {
	defer rows.Close()

	entries := []timeentry.TimeEntry{}
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time entries: %w", err)
	}
	return entries, nil
}

// GetByID implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE id = $1 AND company_id = $2`

	e, err := scanTimeEntry(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeentry.TimeEntry{}, timeentry.ErrTimeEntryNotFound
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to get time entry with id %s: %w", id, err)
	}
	return e, nil
}

// GetForDate implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) GetForDate(ctx context.Context, companyID string, employeeID string, date time.Time) (*timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	start, end := utcDay(date)
	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE company_id = $1 AND employee_id = $2 AND date >= $3 AND date < $4
		ORDER BY created_at
		LIMIT 1
	`

	e, err := scanTimeEntry(q.QueryRow(ctx, query, companyID, employeeID, start, end))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get time entry for employee %s: %w", employeeID, err)
	}
	return &e, nil
}

// List implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) List(ctx context.Context, filter timeentry.TimeEntryFilter, companyID string) ([]timeentry.TimeEntry, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.FromDate != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argIdx))
		args = append(args, filter.FromDate.UTC())
		argIdx++
	}
	if filter.ToDate != nil {
		conditions = append(conditions, fmt.Sprintf("date < $%d", argIdx))
		args = append(args, filter.ToDate.UTC().Add(24*time.Hour))
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM time_entries WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time entries: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s
		FROM time_entries
		WHERE %s
		ORDER BY date DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, timeEntryColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list time entries: %w", err)
	}
	entries, err := scanTimeEntries(rows)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Create implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) Create(ctx context.Context, e timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_entries (employee_id, company_id, date, clock_in, clock_out, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + timeEntryColumns

	created, err := scanTimeEntry(q.QueryRow(ctx, query, e.EmployeeID, e.CompanyID, e.Date.UTC(), e.ClockIn, e.ClockOut, e.Notes))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return timeentry.TimeEntry{}, timeentry.ErrTimeEntryExists
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to create time entry: %w", err)
	}
	return created, nil
}

// Update implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) Update(ctx context.Context, e timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET clock_in = $1, clock_out = $2, notes = $3, updated_at = NOW()
		WHERE id = $4 AND company_id = $5
		RETURNING ` + timeEntryColumns

	updated, err := scanTimeEntry(q.QueryRow(ctx, query, e.ClockIn, e.ClockOut, e.Notes, e.ID, e.CompanyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeentry.TimeEntry{}, timeentry.ErrTimeEntryNotFound
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to update time entry with id %s: %w", e.ID, err)
	}
	return updated, nil
}

// Delete implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM time_entries WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timeentry.ErrTimeEntryNotFound
	}
	return nil
}

// FindForDate implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) FindForDate(ctx context.Context, companyID string, employeeIDs []string, date time.Time) ([]timeentry.TimeEntry, error) {
	if len(employeeIDs) == 0 {
		return []timeentry.TimeEntry{}, nil
	}
	q := GetQuerier(ctx, r.db)

	start, end := utcDay(date)
	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE company_id = $1 AND employee_id = ANY($2::text[]::uuid[]) AND date >= $3 AND date < $4
		ORDER BY employee_id, created_at
	`

	rows, err := q.Query(ctx, query, companyID, employeeIDs, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch time entries for %s: %w", start.Format("2006-01-02"), err)
	}
	return scanTimeEntries(rows)
}
