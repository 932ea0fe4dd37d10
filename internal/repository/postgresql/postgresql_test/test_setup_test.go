package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/repository/postgresql"
)

// TestDatabaseSetup holds a connection to the integration database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema. The
// test is skipped when the variable is not set.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	if err := postgresql.EnsureSchema(ctx, db); err != nil {
		db.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}

	setup := &TestDatabaseSetup{DB: db}
	if err := setup.TruncateAllTables(ctx); err != nil {
		db.Close()
		t.Fatalf("failed to truncate: %v", err)
	}
	t.Cleanup(setup.Close)
	return setup
}

// TruncateAllTables removes every row from the back-office tables.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"staff_unavailability_recurring_overrides",
		"staff_unavailability_recurring",
		"staff_unavailability",
		"staff_pay_rates",
		"time_clock",
		"shifts",
		"profiles",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// InsertProfile seeds a profile row.
func (t *TestDatabaseSetup) InsertProfile(ctx context.Context, id, storeID, name, role string, active bool) error {
	_, err := t.DB.Exec(ctx,
		`INSERT INTO profiles (id, store_id, full_name, role, is_active) VALUES ($1, $2, $3, $4, $5)`,
		id, storeID, name, role, active)
	return err
}

func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
