package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"goals", "sub_goals", "events", "balance_snapshots", "chat_messages"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_sub_goals_goal", "idx_events_start", "idx_events_goal", "idx_chat_messages_created"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_RejectsUnknownCategory(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO events (id, title, category, start_time, end_time, created_at)
		VALUES ('e1', 'Nap', 'sleep', '2026-03-02T13:00:00Z', '2026-03-02T14:00:00Z', '2026-03-02T10:00:00Z')`)
	assert.Error(t, err)
}

func TestMigrate_RejectsInvertedEvent(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO events (id, title, category, start_time, end_time, created_at)
		VALUES ('e1', 'Run', 'health', '2026-03-02T14:00:00Z', '2026-03-02T13:00:00Z', '2026-03-02T10:00:00Z')`)
	assert.Error(t, err)
}

func TestOpenDB_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var on int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&on))
	assert.Equal(t, 1, on)
}
