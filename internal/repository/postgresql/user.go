package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `id, company_id, employee_id, email, password_hash, role, created_at, updated_at`

func (r *userRepositoryImpl) getOne(ctx context.Context, where string, arg interface{}) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	var u user.User
	err := q.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.CompanyID,
		&u.EmployeeID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, "lower(email) = lower($1)", email)
}

// CountByRole implements user.UserRepository.
func (r *userRepositoryImpl) CountByRole(ctx context.Context, companyID string) ([]user.RoleCount, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT role, COUNT(*)
		FROM users
		WHERE company_id = $1
		GROUP BY role
		ORDER BY role
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to count users by role: %w", err)
	}
	defer rows.Close()

	counts := []user.RoleCount{}
	for rows.Next() {
		var rc user.RoleCount
		if err := rows.Scan(&rc.Role, &rc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan role count: %w", err)
		}
		counts = append(counts, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate role counts: %w", err)
	}
	return counts, nil
}
