package service

import (
	"context"
	"time"

	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/alexanderramin/lifeplan/internal/intelligence"
	"github.com/alexanderramin/lifeplan/internal/repository"
	"github.com/google/uuid"
)

type balanceService struct {
	events    repository.EventRepo
	snapshots repository.BalanceSnapshotRepo
	goals     repository.GoalRepo
	planner   *intelligence.Planner
	observer  UseCaseObserver
	now       func() time.Time
}

func NewBalanceService(
	events repository.EventRepo,
	snapshots repository.BalanceSnapshotRepo,
	goals repository.GoalRepo,
	planner *intelligence.Planner,
	observers ...UseCaseObserver,
) BalanceService {
	return &balanceService{
		events:    events,
		snapshots: snapshots,
		goals:     goals,
		planner:   planner,
		observer:  useCaseObserverOrNoop(observers),
		now:       time.Now,
	}
}

// AnalyzeDay scores the events of day and stores the result as that day's
// snapshot, replacing any earlier one. Days without tracked time are scored
// but not stored, and a snapshot left from before the day emptied is removed.
func (s *balanceService) AnalyzeDay(ctx context.Context, day time.Time) (result *DayBalance, err error) {
	fields := map[string]any{"date": day.Format(dateLayout)}
	done := trackUseCase(ctx, s.observer, "analyze-day", fields)
	defer func() { done(err) }()

	from, to := dayBounds(day)
	events, err := s.events.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	analysis := s.planner.AnalyzeBalance(events)
	result = &DayBalance{Day: from, Events: events, Result: analysis}
	fields["events"] = len(events)
	fields["score"] = analysis.Score
	if analysis.Empty {
		if err := s.snapshots.DeleteByDate(ctx, from); err != nil {
			return nil, err
		}
		return result, nil
	}

	err = s.snapshots.Upsert(ctx, &domain.BalanceSnapshot{
		ID:          uuid.New().String(),
		Date:        from,
		Score:       analysis.Score,
		Breakdown:   analysis.Breakdown,
		Suggestions: analysis.Suggestions,
		EventCount:  len(events),
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	result.Stored = true
	return result, nil
}

// Suggest analyzes day and asks for advice that takes the active goals into
// account.
func (s *balanceService) Suggest(ctx context.Context, day time.Time) (out *DaySuggestions, err error) {
	fields := map[string]any{"date": day.Format(dateLayout)}
	done := trackUseCase(ctx, s.observer, "suggest", fields)
	defer func() { done(err) }()

	analysis, err := s.AnalyzeDay(ctx, day)
	if err != nil {
		return nil, err
	}
	goals, err := activeGoalTitles(ctx, s.goals)
	if err != nil {
		return nil, err
	}

	set := s.planner.GenerateSuggestions(ctx, analysis.Result, goals)
	fields["source"] = string(set.Source)
	return &DaySuggestions{Balance: analysis, Suggestions: set}, nil
}

// History returns stored snapshots for the last days days including today,
// newest first.
func (s *balanceService) History(ctx context.Context, days int) ([]*domain.BalanceSnapshot, error) {
	if days <= 0 {
		days = defaultHistoryDays
	}
	today, _ := dayBounds(s.now())
	return s.snapshots.ListSince(ctx, today.AddDate(0, 0, -(days-1)))
}
