package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/lifeplan/internal/db"
	"github.com/alexanderramin/lifeplan/internal/domain"
)

// SQLiteEventRepo implements EventRepo.
type SQLiteEventRepo struct {
	db db.DBTX
}

func NewSQLiteEventRepo(conn db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: conn}
}

const eventColumns = `id, goal_id, title, description, category, start_time, end_time, created_at`

func (r *SQLiteEventRepo) Create(ctx context.Context, e *domain.Event) error {
	query := `INSERT INTO events (` + eventColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		nullableString(e.GoalID),
		e.Title,
		e.Description,
		string(e.Category),
		formatTimestamp(e.StartTime),
		formatTimestamp(e.EndTime),
		formatTimestamp(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if err != nil {
		return nil, notFoundIfNoRows(err, "event")
	}
	return e, nil
}

func (r *SQLiteEventRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE start_time >= ? AND start_time < ?
		ORDER BY start_time, created_at`
	rows, err := r.db.QueryContext(ctx, query, formatTimestamp(from), formatTimestamp(to))
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *SQLiteEventRepo) ListByGoal(ctx context.Context, goalID string) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE goal_id = ? ORDER BY start_time`
	rows, err := r.db.QueryContext(ctx, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("listing events by goal: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *SQLiteEventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return requireAffected(res, "event")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(s rowScanner) (*domain.Event, error) {
	var (
		e                         domain.Event
		goalID                    sql.NullString
		category                  string
		startStr, endStr, created string
	)
	if err := s.Scan(&e.ID, &goalID, &e.Title, &e.Description, &category, &startStr, &endStr, &created); err != nil {
		return nil, err
	}
	e.GoalID = goalID.String
	e.Category = domain.Category(category)

	var err error
	if e.StartTime, err = parseTimestamp(startStr); err != nil {
		return nil, err
	}
	if e.EndTime, err = parseTimestamp(endStr); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseTimestamp(created); err != nil {
		return nil, err
	}
	return &e, nil
}

func scanEvents(rows *sql.Rows) ([]*domain.Event, error) {
	var events []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
