package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/lifeplan/internal/db"
	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/alexanderramin/lifeplan/internal/intelligence"
	"github.com/alexanderramin/lifeplan/internal/repository"
	"github.com/google/uuid"
)

type goalService struct {
	goals    repository.GoalRepo
	subGoals repository.SubGoalRepo
	events   repository.EventRepo
	uow      db.UnitOfWork
	planner  *intelligence.Planner
	observer UseCaseObserver
	now      func() time.Time
}

func NewGoalService(
	goals repository.GoalRepo,
	subGoals repository.SubGoalRepo,
	events repository.EventRepo,
	uow db.UnitOfWork,
	planner *intelligence.Planner,
	observers ...UseCaseObserver,
) GoalService {
	return &goalService{
		goals:    goals,
		subGoals: subGoals,
		events:   events,
		uow:      uow,
		planner:  planner,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

// CreatePlan generates a plan for req and stores the goal, one sub-goal per
// milestone and one event per schedule item in a single transaction.
func (s *goalService) CreatePlan(ctx context.Context, req intelligence.GoalPlanRequest) (result *GoalPlanResult, err error) {
	fields := map[string]any{"timeframe": req.Timeframe}
	done := trackUseCase(ctx, s.observer, "create-goal-plan", fields)
	defer func() { done(err) }()

	existing, err := activeGoalTitles(ctx, s.goals)
	if err != nil {
		return nil, err
	}
	req.ExistingGoals = mergeTitles(req.ExistingGoals, existing)

	plan, err := s.planner.CreateGoalPlan(ctx, req)
	if err != nil {
		return nil, err
	}
	fields["source"] = string(plan.Source)

	now := s.now()
	goal := &domain.Goal{
		ID:                   uuid.New().String(),
		Title:                plan.GoalTitle,
		Description:          plan.Description,
		Timeframe:            req.Timeframe,
		TimeframeDays:        plan.TimeframeDays,
		FeasibilityScore:     plan.Analysis.FeasibilityScore,
		EstimatedSuccessRate: plan.Analysis.EstimatedSuccessRate,
		Source:               plan.Source,
		Status:               domain.GoalActive,
		CreatedAt:            now.UTC(),
		UpdatedAt:            now.UTC(),
	}

	subGoals := make([]*domain.SubGoal, 0, len(plan.Milestones))
	for _, m := range plan.Milestones {
		due, perr := time.ParseInLocation(dateLayout, m.DueDate, time.Local)
		if perr != nil {
			due = now.AddDate(0, 0, 7*m.WeekIndex)
		}
		subGoals = append(subGoals, &domain.SubGoal{
			ID:          uuid.New().String(),
			GoalID:      goal.ID,
			Title:       m.Title,
			Description: m.Description,
			WeekIndex:   m.WeekIndex,
			DueDate:     due,
			Priority:    m.Priority,
			CreatedAt:   now.UTC(),
		})
	}

	events := make([]*domain.Event, 0, len(plan.Schedule))
	for _, item := range plan.Schedule {
		e, cerr := eventFromItem(item, goal.ID, now, now)
		if cerr != nil {
			return nil, cerr
		}
		events = append(events, e)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txGoals := repository.NewSQLiteGoalRepo(tx)
		txSubGoals := repository.NewSQLiteSubGoalRepo(tx)
		txEvents := repository.NewSQLiteEventRepo(tx)

		if err := txGoals.Create(ctx, goal); err != nil {
			return err
		}
		for _, sg := range subGoals {
			if err := txSubGoals.Create(ctx, sg); err != nil {
				return fmt.Errorf("storing milestone %q: %w", sg.Title, err)
			}
		}
		for _, e := range events {
			if err := txEvents.Create(ctx, e); err != nil {
				return fmt.Errorf("storing session %q: %w", e.Title, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["milestones"] = len(subGoals)
	fields["events"] = len(events)
	return &GoalPlanResult{Goal: goal, Plan: plan, SubGoals: subGoals, Events: events}, nil
}

func (s *goalService) List(ctx context.Context, status domain.GoalStatus) ([]*domain.Goal, error) {
	return s.goals.List(ctx, status)
}

func (s *goalService) Get(ctx context.Context, id string) (*GoalDetail, error) {
	goal, err := s.goals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	subGoals, err := s.subGoals.ListByGoal(ctx, id)
	if err != nil {
		return nil, err
	}
	events, err := s.events.ListByGoal(ctx, id)
	if err != nil {
		return nil, err
	}
	return &GoalDetail{Goal: goal, SubGoals: subGoals, Events: events}, nil
}

func (s *goalService) SetStatus(ctx context.Context, id string, status domain.GoalStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("unknown goal status %q", status)
	}
	return s.goals.UpdateStatus(ctx, id, status)
}

func (s *goalService) CompleteMilestone(ctx context.Context, subGoalID string) error {
	return s.subGoals.SetCompleted(ctx, subGoalID, true)
}

// Delete removes a goal. Its sub-goals and scheduled events go with it.
func (s *goalService) Delete(ctx context.Context, id string) error {
	return s.goals.Delete(ctx, id)
}
