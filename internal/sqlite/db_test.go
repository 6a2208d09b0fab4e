package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that the schema is created and is idempotent
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='leads'").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count, "leads table not found")

	// Running migrations again against an existing schema must be a no-op.
	require.NoError(t, db.RunMigrations())
}

// TestLeadsTableDefaults verifies column defaults applied by the schema
func TestLeadsTableDefaults(t *testing.T) {
	db := NewTestDB(t)

	_, err := db.Exec(`INSERT INTO leads (phone) VALUES (?)`, "+380501234567")
	require.NoError(t, err)

	var status string
	var note *string
	err = db.QueryRow(`SELECT status, internal_note FROM leads WHERE phone = ?`, "+380501234567").
		Scan(&status, &note)
	require.NoError(t, err)
	require.Equal(t, "new", status)
	require.Nil(t, note)
}
