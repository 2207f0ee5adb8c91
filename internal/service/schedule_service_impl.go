package service

import (
	"context"
	"time"

	"github.com/alexanderramin/lifeplan/internal/db"
	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/alexanderramin/lifeplan/internal/intelligence"
	"github.com/alexanderramin/lifeplan/internal/repository"
)

type scheduleService struct {
	events   repository.EventRepo
	goals    repository.GoalRepo
	uow      db.UnitOfWork
	planner  *intelligence.Planner
	observer UseCaseObserver
	now      func() time.Time
}

func NewScheduleService(
	events repository.EventRepo,
	goals repository.GoalRepo,
	uow db.UnitOfWork,
	planner *intelligence.Planner,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		events:   events,
		goals:    goals,
		uow:      uow,
		planner:  planner,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

// Generate builds a schedule for req. Active goal titles join the request's
// goals, and today's stored events are passed along as context.
func (s *scheduleService) Generate(ctx context.Context, req intelligence.ScheduleRequest) (plan domain.SchedulePlan, err error) {
	fields := map[string]any{}
	done := trackUseCase(ctx, s.observer, "generate-schedule", fields)
	defer func() { done(err) }()

	active, err := activeGoalTitles(ctx, s.goals)
	if err != nil {
		return domain.SchedulePlan{}, err
	}
	req.Goals = mergeTitles(req.Goals, active)
	req.ExistingGoals = mergeTitles(req.ExistingGoals, active)

	from, to := dayBounds(s.now())
	today, err := s.events.ListBetween(ctx, from, to)
	if err != nil {
		return domain.SchedulePlan{}, err
	}
	req.ExistingEvents = append(req.ExistingEvents, scheduleItems(today)...)

	plan = s.planner.GenerateSchedule(ctx, req)
	fields["goals"] = len(req.Goals)
	fields["items"] = len(plan.Schedule)
	fields["source"] = string(plan.Source)
	return plan, nil
}

// SaveForDate stores every item of plan as an event on day. Either all
// items are stored or none are.
func (s *scheduleService) SaveForDate(ctx context.Context, plan domain.SchedulePlan, day time.Time) (events []*domain.Event, err error) {
	fields := map[string]any{"date": day.Format(dateLayout)}
	done := trackUseCase(ctx, s.observer, "save-schedule", fields)
	defer func() { done(err) }()

	now := s.now()
	events = make([]*domain.Event, 0, len(plan.Schedule))
	for _, item := range plan.Schedule {
		item.Date = ""
		e, cerr := eventFromItem(item, "", day, now)
		if cerr != nil {
			return nil, cerr
		}
		events = append(events, e)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEvents := repository.NewSQLiteEventRepo(tx)
		for _, e := range events {
			if err := txEvents.Create(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["events"] = len(events)
	return events, nil
}
