package postgresqltest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

// tables in truncate order.
var tables = []string{
	"time_entries",
	"schedules",
	"work_shifts",
	"holidays",
	"users",
	"employees",
	"companies",
}

// TestDatabaseSetup holds a connection to the integration database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema.
// The test is skipped when the variable is not set.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn, database.PoolOptions{MaxConns: 4, MinConns: 1})
	require.NoError(t, err, "failed to connect to test database")

	setup := &TestDatabaseSetup{DB: db}
	t.Cleanup(setup.Close)

	ctx := context.Background()
	require.NoError(t, setup.migrate(ctx))
	require.NoError(t, setup.TruncateAllTables(ctx))
	return setup
}

func (s *TestDatabaseSetup) migrate(ctx context.Context) error {
	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "001_init.sql"))
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	if _, err := s.DB.Exec(ctx, string(schema)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// TruncateAllTables removes every row the repositories write.
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return tx.Commit(ctx)
}

// Close closes the pool.
func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}

func (s *TestDatabaseSetup) insertCompany(t *testing.T, name string) string {
	t.Helper()
	var id string
	err := s.DB.QueryRow(context.Background(),
		`INSERT INTO companies (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	require.NoError(t, err)
	return id
}

func (s *TestDatabaseSetup) insertEmployee(t *testing.T, companyID, first, last, status string) string {
	t.Helper()
	var id string
	err := s.DB.QueryRow(context.Background(),
		`INSERT INTO employees (company_id, first_name, last_name, status) VALUES ($1, $2, $3, $4) RETURNING id`,
		companyID, first, last, status).Scan(&id)
	require.NoError(t, err)
	return id
}
