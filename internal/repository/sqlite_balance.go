package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/lifeplan/internal/db"
	"github.com/alexanderramin/lifeplan/internal/domain"
)

// SQLiteBalanceSnapshotRepo implements BalanceSnapshotRepo. Breakdown and
// suggestions are stored as JSON text.
type SQLiteBalanceSnapshotRepo struct {
	db db.DBTX
}

func NewSQLiteBalanceSnapshotRepo(conn db.DBTX) *SQLiteBalanceSnapshotRepo {
	return &SQLiteBalanceSnapshotRepo{db: conn}
}

const snapshotColumns = `id, date, score, breakdown, suggestions, event_count, created_at`

func (r *SQLiteBalanceSnapshotRepo) Upsert(ctx context.Context, s *domain.BalanceSnapshot) error {
	breakdown, err := encodeJSON(s.Breakdown)
	if err != nil {
		return fmt.Errorf("encoding breakdown: %w", err)
	}
	suggestions := s.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	suggestionsJSON, err := encodeJSON(suggestions)
	if err != nil {
		return fmt.Errorf("encoding suggestions: %w", err)
	}

	query := `INSERT INTO balance_snapshots (` + snapshotColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			score = excluded.score,
			breakdown = excluded.breakdown,
			suggestions = excluded.suggestions,
			event_count = excluded.event_count,
			created_at = excluded.created_at`
	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		formatDate(s.Date),
		s.Score,
		breakdown,
		suggestionsJSON,
		s.EventCount,
		formatTimestamp(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting balance snapshot: %w", err)
	}
	return nil
}

func (r *SQLiteBalanceSnapshotRepo) GetByDate(ctx context.Context, date time.Time) (*domain.BalanceSnapshot, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+snapshotColumns+` FROM balance_snapshots WHERE date = ?`, formatDate(date))
	s, err := scanSnapshot(row)
	if err != nil {
		return nil, notFoundIfNoRows(err, "balance snapshot")
	}
	return s, nil
}

func (r *SQLiteBalanceSnapshotRepo) ListSince(ctx context.Context, since time.Time) ([]*domain.BalanceSnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM balance_snapshots WHERE date >= ? ORDER BY date DESC`
	rows, err := r.db.QueryContext(ctx, query, formatDate(since))
	if err != nil {
		return nil, fmt.Errorf("listing balance snapshots: %w", err)
	}
	defer rows.Close()

	var out []*domain.BalanceSnapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning balance snapshot: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteBalanceSnapshotRepo) DeleteByDate(ctx context.Context, date time.Time) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM balance_snapshots WHERE date = ?`, formatDate(date)); err != nil {
		return fmt.Errorf("deleting balance snapshot: %w", err)
	}
	return nil
}

func scanSnapshot(sc rowScanner) (*domain.BalanceSnapshot, error) {
	var (
		s                                   domain.BalanceSnapshot
		dateStr, breakdown, suggestions, ts string
	)
	if err := sc.Scan(&s.ID, &dateStr, &s.Score, &breakdown, &suggestions, &s.EventCount, &ts); err != nil {
		return nil, err
	}
	var err error
	if s.Date, err = parseDate(dateStr); err != nil {
		return nil, err
	}
	if s.CreatedAt, err = parseTimestamp(ts); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(breakdown), &s.Breakdown); err != nil {
		return nil, fmt.Errorf("decoding breakdown: %w", err)
	}
	if err := json.Unmarshal([]byte(suggestions), &s.Suggestions); err != nil {
		return nil, fmt.Errorf("decoding suggestions: %w", err)
	}
	return &s, nil
}
