package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

const holidayColumns = `id, company_id, name, date, description, is_recurring, created_at, updated_at`

func scanHoliday(row pgx.Row) (holiday.Holiday, error) {
	var h holiday.Holiday
	err := row.Scan(&h.ID, &h.CompanyID, &h.Name, &h.Date, &h.Description, &h.IsRecurring, &h.CreatedAt, &h.UpdatedAt)
	if err == nil {
		h.Date = h.Date.UTC()
	}
	return h, err
}

func scanHolidays(rows pgx.Rows) ([]holiday.Holiday, error) {
	defer rows.Close()

	holidays := []holiday.Holiday{}
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}
	return holidays, nil
}

func utcDay(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

// FindForDate implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) FindForDate(ctx context.Context, companyID string, date time.Time) (*holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	start, end := utcDay(date)
	query := `
		SELECT ` + holidayColumns + `
		FROM holidays
		WHERE company_id = $1 AND date >= $2 AND date < $3
		ORDER BY date, created_at
		LIMIT 1
	`

	h, err := scanHoliday(q.QueryRow(ctx, query, companyID, start, end))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find holiday for date %s: %w", start.Format("2006-01-02"), err)
	}
	return &h, nil
}

// GetByID implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + holidayColumns + ` FROM holidays WHERE id = $1 AND company_id = $2`

	h, err := scanHoliday(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.Holiday{}, holiday.ErrHolidayNotFound
		}
		return holiday.Holiday{}, fmt.Errorf("failed to get holiday with id %s: %w", id, err)
	}
	return h, nil
}

// List implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context, companyID string, year *int) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + holidayColumns + ` FROM holidays WHERE company_id = $1`
	args := []interface{}{companyID}
	if year != nil {
		from := time.Date(*year, time.January, 1, 0, 0, 0, 0, time.UTC)
		query += ` AND date >= $2 AND date < $3`
		args = append(args, from, from.AddDate(1, 0, 0))
	}
	query += ` ORDER BY date, name`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	return scanHolidays(rows)
}

// ListRecurring implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListRecurring(ctx context.Context, companyID string) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+holidayColumns+`
		FROM holidays
		WHERE company_id = $1 AND is_recurring = TRUE
		ORDER BY date
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring holidays: %w", err)
	}
	return scanHolidays(rows)
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (company_id, name, date, description, is_recurring)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + holidayColumns

	created, err := scanHoliday(q.QueryRow(ctx, query, h.CompanyID, h.Name, h.Date.UTC(), h.Description, h.IsRecurring))
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return created, nil
}

// Update implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Update(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE holidays
		SET name = $1, date = $2, description = $3, is_recurring = $4, updated_at = NOW()
		WHERE id = $5 AND company_id = $6
		RETURNING ` + holidayColumns

	updated, err := scanHoliday(q.QueryRow(ctx, query, h.Name, h.Date.UTC(), h.Description, h.IsRecurring, h.ID, h.CompanyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.Holiday{}, holiday.ErrHolidayNotFound
		}
		return holiday.Holiday{}, fmt.Errorf("failed to update holiday with id %s: %w", h.ID, err)
	}
	return updated, nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}

// ExistsByDateAndName implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ExistsByDateAndName(ctx context.Context, companyID string, date time.Time, name string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	start, end := utcDay(date)
	query := `SELECT EXISTS(SELECT 1 FROM holidays WHERE company_id = $1 AND date >= $2 AND date < $3 AND name = $4`
	args := []interface{}{companyID, start, end, name}
	if excludeID != nil {
		query += ` AND id <> $5`
		args = append(args, *excludeID)
	}
	query += `)`

	var exists bool
	if err := q.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check holiday existence: %w", err)
	}
	return exists, nil
}

// Count implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Count(ctx context.Context, companyID string, from time.Time, upcomingUntil time.Time) (holiday.Counts, error) {
	q := GetQuerier(ctx, r.db)

	yearStart := time.Date(from.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN date >= $2 AND date < $3 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN date >= $4 AND date < $5 THEN 1 ELSE 0 END), 0)
		FROM holidays
		WHERE company_id = $1
	`

	var c holiday.Counts
	err := q.QueryRow(ctx, query, companyID, yearStart, yearStart.AddDate(1, 0, 0), from.UTC(), upcomingUntil.UTC()).
		Scan(&c.ThisYear, &c.Upcoming)
	if err != nil {
		return holiday.Counts{}, fmt.Errorf("failed to count holidays: %w", err)
	}
	return c, nil
}
