package domain

import "time"

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalAbandoned GoalStatus = "abandoned"
)

func (s GoalStatus) IsValid() bool {
	switch s {
	case GoalActive, GoalCompleted, GoalAbandoned:
		return true
	}
	return false
}

// Goal is a stored objective, usually created from a GoalPlan.
type Goal struct {
	ID                   string
	Title                string
	Description          string
	Timeframe            string
	TimeframeDays        int
	FeasibilityScore     int
	EstimatedSuccessRate int
	Source               GenerationSource
	Status               GoalStatus
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// SubGoal is a stored milestone of a goal.
type SubGoal struct {
	ID          string
	GoalID      string
	Title       string
	Description string
	WeekIndex   int
	DueDate     time.Time
	Priority    Priority
	Completed   bool
	CreatedAt   time.Time
}
