package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// GetByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT id, name, timezone, created_at, updated_at FROM companies WHERE id = $1`

	var co company.Company
	err := q.QueryRow(ctx, query, id).Scan(&co.ID, &co.Name, &co.Timezone, &co.CreatedAt, &co.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company with id %s: %w", id, err)
	}
	return co, nil
}

// Exists implements company.CompanyRepository.
func (c *companyRepositoryImpl) Exists(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, c.db)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM companies WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check company existence: %w", err)
	}
	return exists, nil
}

// ListIDs implements company.CompanyRepository.
func (c *companyRepositoryImpl) ListIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, c.db)

	rows, err := q.Query(ctx, `SELECT id FROM companies ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan company id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate companies: %w", err)
	}
	return ids, nil
}
