package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/alexanderramin/lifeplan/internal/repository"
	"github.com/google/uuid"
)

type eventService struct {
	events   repository.EventRepo
	observer UseCaseObserver
}

func NewEventService(events repository.EventRepo, observers ...UseCaseObserver) EventService {
	return &eventService{events: events, observer: useCaseObserverOrNoop(observers)}
}

func (s *eventService) Create(ctx context.Context, e *domain.Event) (err error) {
	fields := map[string]any{"category": string(e.Category)}
	done := trackUseCase(ctx, s.observer, "create-event", fields)
	defer func() { done(err) }()

	if err = e.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	fields["minutes"] = e.DurationMinutes()
	return s.events.Create(ctx, e)
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.GetByID(ctx, id)
}

// ListDay returns the events starting on the calendar day of day, in start
// order.
func (s *eventService) ListDay(ctx context.Context, day time.Time) ([]*domain.Event, error) {
	from, to := dayBounds(day)
	return s.events.ListBetween(ctx, from, to)
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	return s.events.Delete(ctx, id)
}
