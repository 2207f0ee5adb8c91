package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/alexanderramin/lifeplan/internal/intelligence"
)

// ErrInvalidEvent is returned when an event fails validation before storage.
var ErrInvalidEvent = errors.New("invalid event")

type EventService interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	ListDay(ctx context.Context, day time.Time) ([]*domain.Event, error)
	Delete(ctx context.Context, id string) error
}

type BalanceService interface {
	AnalyzeDay(ctx context.Context, day time.Time) (*DayBalance, error)
	Suggest(ctx context.Context, day time.Time) (*DaySuggestions, error)
	History(ctx context.Context, days int) ([]*domain.BalanceSnapshot, error)
}

type GoalService interface {
	CreatePlan(ctx context.Context, req intelligence.GoalPlanRequest) (*GoalPlanResult, error)
	List(ctx context.Context, status domain.GoalStatus) ([]*domain.Goal, error)
	Get(ctx context.Context, id string) (*GoalDetail, error)
	SetStatus(ctx context.Context, id string, status domain.GoalStatus) error
	CompleteMilestone(ctx context.Context, subGoalID string) error
	Delete(ctx context.Context, id string) error
}

type ScheduleService interface {
	Generate(ctx context.Context, req intelligence.ScheduleRequest) (domain.SchedulePlan, error)
	SaveForDate(ctx context.Context, plan domain.SchedulePlan, day time.Time) ([]*domain.Event, error)
}

type ChatService interface {
	Reply(ctx context.Context, message string) (domain.ChatReply, error)
	History(ctx context.Context, limit int) ([]*domain.ChatMessage, error)
	Clear(ctx context.Context) error
	ParseEvent(ctx context.Context, message string, save bool) (*ParsedEvent, error)
}

// DayBalance is the balance analysis of one calendar day.
type DayBalance struct {
	Day    time.Time
	Events []*domain.Event
	Result domain.BalanceResult
	// Stored is false for days with no tracked time; those are not persisted.
	Stored bool
}

// DaySuggestions pairs a day's analysis with generated advice.
type DaySuggestions struct {
	Balance     *DayBalance
	Suggestions intelligence.SuggestionSet
}

// GoalPlanResult holds a generated plan and the rows stored for it.
type GoalPlanResult struct {
	Goal     *domain.Goal
	Plan     domain.GoalPlan
	SubGoals []*domain.SubGoal
	Events   []*domain.Event
}

// GoalDetail is a stored goal with its milestones and scheduled events.
type GoalDetail struct {
	Goal     *domain.Goal
	SubGoals []*domain.SubGoal
	Events   []*domain.Event
}

// ParsedEvent is an event draft and, when saved, the stored event.
type ParsedEvent struct {
	Draft domain.EventDraft
	Event *domain.Event
}
