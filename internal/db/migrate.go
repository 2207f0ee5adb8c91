package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies the schema. Every statement is idempotent, so it runs on
// each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

const categoryCheck = `CHECK(category IN ('work','health','leisure','social','learning'))`

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS goals (
		id                TEXT PRIMARY KEY,
		title             TEXT NOT NULL,
		description       TEXT NOT NULL DEFAULT '',
		timeframe         TEXT NOT NULL DEFAULT '',
		timeframe_days    INTEGER NOT NULL DEFAULT 30,
		feasibility_score INTEGER NOT NULL DEFAULT 0,
		success_rate      INTEGER NOT NULL DEFAULT 0,
		source            TEXT NOT NULL DEFAULT 'fallback'
		                  CHECK(source IN ('ai','fallback')),
		status            TEXT NOT NULL DEFAULT 'active'
		                  CHECK(status IN ('active','completed','abandoned')),
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sub_goals (
		id          TEXT PRIMARY KEY,
		goal_id     TEXT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		week_index  INTEGER NOT NULL DEFAULT 1,
		due_date    TEXT NOT NULL,
		priority    TEXT NOT NULL DEFAULT 'medium'
		            CHECK(priority IN ('high','medium','low')),
		completed   INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sub_goals_goal ON sub_goals(goal_id)`,

	`CREATE TABLE IF NOT EXISTS events (
		id          TEXT PRIMARY KEY,
		goal_id     TEXT REFERENCES goals(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category    TEXT NOT NULL ` + categoryCheck + `,
		start_time  TEXT NOT NULL,
		end_time    TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		CHECK(end_time >= start_time)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_events_goal ON events(goal_id)`,

	`CREATE TABLE IF NOT EXISTS balance_snapshots (
		id          TEXT PRIMARY KEY,
		date        TEXT NOT NULL UNIQUE,
		score       INTEGER NOT NULL CHECK(score BETWEEN 0 AND 100),
		breakdown   TEXT NOT NULL,
		suggestions TEXT NOT NULL,
		event_count INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS chat_messages (
		id         TEXT PRIMARY KEY,
		role       TEXT NOT NULL CHECK(role IN ('user','assistant')),
		text       TEXT NOT NULL,
		source     TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_chat_messages_created ON chat_messages(created_at)`,
}
