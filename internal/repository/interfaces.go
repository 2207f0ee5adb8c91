package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/lifeplan/internal/domain"
)

type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	// ListBetween returns events starting in [from, to), ordered by start.
	ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Event, error)
	ListByGoal(ctx context.Context, goalID string) ([]*domain.Event, error)
	Delete(ctx context.Context, id string) error
}

type GoalRepo interface {
	Create(ctx context.Context, g *domain.Goal) error
	GetByID(ctx context.Context, id string) (*domain.Goal, error)
	// List returns goals newest first; an empty status lists all of them.
	List(ctx context.Context, status domain.GoalStatus) ([]*domain.Goal, error)
	UpdateStatus(ctx context.Context, id string, status domain.GoalStatus) error
	Delete(ctx context.Context, id string) error
}

type SubGoalRepo interface {
	Create(ctx context.Context, s *domain.SubGoal) error
	ListByGoal(ctx context.Context, goalID string) ([]*domain.SubGoal, error)
	SetCompleted(ctx context.Context, id string, completed bool) error
}

type BalanceSnapshotRepo interface {
	// Upsert stores s, replacing any snapshot for the same date.
	Upsert(ctx context.Context, s *domain.BalanceSnapshot) error
	GetByDate(ctx context.Context, date time.Time) (*domain.BalanceSnapshot, error)
	// ListSince returns snapshots dated on or after since, newest first.
	ListSince(ctx context.Context, since time.Time) ([]*domain.BalanceSnapshot, error)
	// DeleteByDate removes the snapshot for date. A missing snapshot is not
	// an error.
	DeleteByDate(ctx context.Context, date time.Time) error
}

type ChatMessageRepo interface {
	Create(ctx context.Context, m *domain.ChatMessage) error
	// ListRecent returns the last limit messages, oldest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.ChatMessage, error)
	Clear(ctx context.Context) error
}
