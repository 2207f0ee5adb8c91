package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/lifeplan/internal/db"
	"github.com/alexanderramin/lifeplan/internal/domain"
)

// SQLiteGoalRepo implements GoalRepo.
type SQLiteGoalRepo struct {
	db db.DBTX
}

func NewSQLiteGoalRepo(conn db.DBTX) *SQLiteGoalRepo {
	return &SQLiteGoalRepo{db: conn}
}

const goalColumns = `id, title, description, timeframe, timeframe_days, feasibility_score,
	success_rate, source, status, created_at, updated_at`

func (r *SQLiteGoalRepo) Create(ctx context.Context, g *domain.Goal) error {
	query := `INSERT INTO goals (` + goalColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		g.ID,
		g.Title,
		g.Description,
		g.Timeframe,
		g.TimeframeDays,
		g.FeasibilityScore,
		g.EstimatedSuccessRate,
		string(g.Source),
		string(g.Status),
		formatTimestamp(g.CreatedAt),
		formatTimestamp(g.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}
	return nil
}

func (r *SQLiteGoalRepo) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = ?`, id)
	g, err := scanGoal(row)
	if err != nil {
		return nil, notFoundIfNoRows(err, "goal")
	}
	return g, nil
}

func (r *SQLiteGoalRepo) List(ctx context.Context, status domain.GoalStatus) ([]*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE (? = '' OR status = ?) ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, string(status), string(status))
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *SQLiteGoalRepo) UpdateStatus(ctx context.Context, id string, status domain.GoalStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE goals SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), formatTimestamp(nowUTC()), id)
	if err != nil {
		return fmt.Errorf("updating goal status: %w", err)
	}
	return requireAffected(res, "goal")
}

// Delete removes the goal; its sub-goals and events cascade.
func (r *SQLiteGoalRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	return requireAffected(res, "goal")
}

func scanGoal(s rowScanner) (*domain.Goal, error) {
	var (
		g                     domain.Goal
		source, status        string
		createdStr, updateStr string
	)
	err := s.Scan(&g.ID, &g.Title, &g.Description, &g.Timeframe, &g.TimeframeDays, &g.FeasibilityScore,
		&g.EstimatedSuccessRate, &source, &status, &createdStr, &updateStr)
	if err != nil {
		return nil, err
	}
	g.Source = domain.GenerationSource(source)
	g.Status = domain.GoalStatus(status)
	if g.CreatedAt, err = parseTimestamp(createdStr); err != nil {
		return nil, err
	}
	if g.UpdatedAt, err = parseTimestamp(updateStr); err != nil {
		return nil, err
	}
	return &g, nil
}
