package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonsz1/vehicle-catalog/migrations"
	"github.com/wonsz1/vehicle-catalog/testutil"
)

// TestMigrations is an integration test that verifies the full migration
// round-trip against a real Postgres database:
//
//  1. Apply all migrations (goose up).
//  2. Assert the vehicles table and its unique index exist.
//  3. Roll back all migrations (goose reset).
//  4. Assert the table has been removed.
//
// The test is skipped automatically when TEST_DATABASE_URL is not set.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)

	provider, err := goose.NewProvider(
		goose.DialectPostgres,
		db,
		migrations.FS,
	)
	require.NoError(t, err, "create goose provider")

	ctx := context.Background()

	// Another package's TestMain may have already applied migrations against
	// this shared test DB. Reset to version 0 first so this test is
	// self-contained and order-independent.
	if _, err := provider.DownTo(ctx, 0); err != nil {
		t.Fatalf("TestMigrations: initial reset: %v", err)
	}

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.NotEmpty(t, results, "expected at least one migration to be applied")

	assertTablePresence(t, db, "vehicles", true)
	assertUniqueRegistrationConstraint(t, db)

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")

	assertTablePresence(t, db, "vehicles", false)
}

func assertTablePresence(t *testing.T, db *sql.DB, table string, shouldExist bool) {
	t.Helper()

	// Use the information_schema to check table existence in a portable way.
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public'
			AND   table_name   = $1
		)`
	var exists bool
	err := db.QueryRowContext(context.Background(), q, table).Scan(&exists)
	require.NoError(t, err, "check table existence for %q", table)

	if shouldExist {
		assert.True(t, exists, "expected table %q to exist", table)
	} else {
		assert.False(t, exists, "expected table %q to not exist", table)
	}
}

// assertUniqueRegistrationConstraint fails the test unless the unique
// constraint on registration_number made it into the live schema — the
// repository relies on it to break check-then-write races.
func assertUniqueRegistrationConstraint(t *testing.T, db *sql.DB) {
	t.Helper()

	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.table_constraints
			WHERE table_schema    = 'public'
			AND   table_name      = 'vehicles'
			AND   constraint_type = 'UNIQUE'
			AND   constraint_name = 'vehicles_registration_number_key'
		)`
	var exists bool
	err := db.QueryRowContext(context.Background(), q).Scan(&exists)
	require.NoError(t, err, "check unique constraint")
	assert.True(t, exists, "expected unique constraint on registration_number")
}
