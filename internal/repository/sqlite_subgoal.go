package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/lifeplan/internal/db"
	"github.com/alexanderramin/lifeplan/internal/domain"
)

// SQLiteSubGoalRepo implements SubGoalRepo.
type SQLiteSubGoalRepo struct {
	db db.DBTX
}

func NewSQLiteSubGoalRepo(conn db.DBTX) *SQLiteSubGoalRepo {
	return &SQLiteSubGoalRepo{db: conn}
}

func (r *SQLiteSubGoalRepo) Create(ctx context.Context, s *domain.SubGoal) error {
	query := `INSERT INTO sub_goals (id, goal_id, title, description, week_index, due_date, priority, completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.GoalID,
		s.Title,
		s.Description,
		s.WeekIndex,
		formatDate(s.DueDate),
		string(s.Priority),
		boolToInt(s.Completed),
		formatTimestamp(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting sub-goal: %w", err)
	}
	return nil
}

func (r *SQLiteSubGoalRepo) ListByGoal(ctx context.Context, goalID string) ([]*domain.SubGoal, error) {
	query := `SELECT id, goal_id, title, description, week_index, due_date, priority, completed, created_at
		FROM sub_goals WHERE goal_id = ? ORDER BY week_index, due_date`
	rows, err := r.db.QueryContext(ctx, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("listing sub-goals: %w", err)
	}
	defer rows.Close()

	var out []*domain.SubGoal
	for rows.Next() {
		var (
			s                 domain.SubGoal
			dueStr, createdAt string
			priority          string
			completed         int
		)
		if err := rows.Scan(&s.ID, &s.GoalID, &s.Title, &s.Description, &s.WeekIndex,
			&dueStr, &priority, &completed, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning sub-goal: %w", err)
		}
		s.Priority = domain.Priority(priority)
		s.Completed = intToBool(completed)
		if s.DueDate, err = parseDate(dueStr); err != nil {
			return nil, err
		}
		if s.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *SQLiteSubGoalRepo) SetCompleted(ctx context.Context, id string, completed bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE sub_goals SET completed = ? WHERE id = ?`, boolToInt(completed), id)
	if err != nil {
		return fmt.Errorf("updating sub-goal: %w", err)
	}
	return requireAffected(res, "sub-goal")
}
