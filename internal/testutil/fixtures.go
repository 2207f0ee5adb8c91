package testutil

import (
	"time"

	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/google/uuid"
)

// Day is the reference date fixtures are placed on unless overridden.
var Day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)

// At returns Day at hh:mm local time.
func At(hh, mm int) time.Time {
	return Day.Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute)
}

// Event options
type EventOption func(*domain.Event)

func WithGoalID(id string) EventOption {
	return func(e *domain.Event) {
		e.GoalID = id
	}
}

func WithSpan(start, end time.Time) EventOption {
	return func(e *domain.Event) {
		e.StartTime = start
		e.EndTime = end
	}
}

func WithDescription(d string) EventOption {
	return func(e *domain.Event) {
		e.Description = d
	}
}

// NewTestEvent returns a one-hour event at 09:00 on Day.
func NewTestEvent(title string, cat domain.Category, opts ...EventOption) *domain.Event {
	e := &domain.Event{
		ID:        uuid.New().String(),
		Title:     title,
		Category:  cat,
		StartTime: At(9, 0),
		EndTime:   At(10, 0),
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Goal options
type GoalOption func(*domain.Goal)

func WithGoalStatus(s domain.GoalStatus) GoalOption {
	return func(g *domain.Goal) {
		g.Status = s
	}
}

func WithCreatedAt(t time.Time) GoalOption {
	return func(g *domain.Goal) {
		g.CreatedAt = t
		g.UpdatedAt = t
	}
}

func NewTestGoal(title string, opts ...GoalOption) *domain.Goal {
	now := time.Now().UTC()
	g := &domain.Goal{
		ID:                   uuid.New().String(),
		Title:                title,
		Description:          "test goal",
		Timeframe:            "1 month",
		TimeframeDays:        30,
		FeasibilityScore:     75,
		EstimatedSuccessRate: 70,
		Source:               domain.SourceFallback,
		Status:               domain.GoalActive,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func NewTestSubGoal(goalID, title string, week int) *domain.SubGoal {
	return &domain.SubGoal{
		ID:        uuid.New().String(),
		GoalID:    goalID,
		Title:     title,
		WeekIndex: week,
		DueDate:   Day.AddDate(0, 0, week*7),
		Priority:  domain.PriorityMedium,
		CreatedAt: time.Now().UTC(),
	}
}
