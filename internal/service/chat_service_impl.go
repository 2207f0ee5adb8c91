package service

import (
	"context"
	"time"

	"github.com/alexanderramin/lifeplan/internal/db"
	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/alexanderramin/lifeplan/internal/intelligence"
	"github.com/alexanderramin/lifeplan/internal/repository"
	"github.com/google/uuid"
)

type chatService struct {
	messages repository.ChatMessageRepo
	goals    repository.GoalRepo
	events   repository.EventRepo
	uow      db.UnitOfWork
	planner  *intelligence.Planner
	observer UseCaseObserver
	now      func() time.Time
}

func NewChatService(
	messages repository.ChatMessageRepo,
	goals repository.GoalRepo,
	events repository.EventRepo,
	uow db.UnitOfWork,
	planner *intelligence.Planner,
	observers ...UseCaseObserver,
) ChatService {
	return &chatService{
		messages: messages,
		goals:    goals,
		events:   events,
		uow:      uow,
		planner:  planner,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

// Reply answers message using the stored recent turns and active goals as
// context, then stores the user turn and the reply.
func (s *chatService) Reply(ctx context.Context, message string) (reply domain.ChatReply, err error) {
	fields := map[string]any{}
	done := trackUseCase(ctx, s.observer, "chat-reply", fields)
	defer func() { done(err) }()

	recent, err := s.messages.ListRecent(ctx, intelligence.MaxRecentTurns)
	if err != nil {
		return domain.ChatReply{}, err
	}
	goals, err := activeGoalTitles(ctx, s.goals)
	if err != nil {
		return domain.ChatReply{}, err
	}

	turns := make([]domain.ConversationTurn, 0, len(recent))
	for _, m := range recent {
		turns = append(turns, domain.ConversationTurn{Role: m.Role, Text: m.Text})
	}

	reply, err = s.planner.ChatReply(ctx, intelligence.ChatRequest{
		Message:     message,
		RecentTurns: turns,
		Goals:       goals,
	})
	if err != nil {
		return domain.ChatReply{}, err
	}
	fields["source"] = string(reply.Source)
	fields["context_turns"] = len(turns)

	now := s.now().UTC()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMessages := repository.NewSQLiteChatMessageRepo(tx)
		if err := txMessages.Create(ctx, &domain.ChatMessage{
			ID:        uuid.New().String(),
			Role:      domain.RoleUser,
			Text:      message,
			CreatedAt: now,
		}); err != nil {
			return err
		}
		return txMessages.Create(ctx, &domain.ChatMessage{
			ID:        uuid.New().String(),
			Role:      domain.RoleAssistant,
			Text:      reply.Message,
			Source:    reply.Source,
			CreatedAt: now,
		})
	})
	if err != nil {
		return domain.ChatReply{}, err
	}
	return reply, nil
}

func (s *chatService) History(ctx context.Context, limit int) ([]*domain.ChatMessage, error) {
	return s.messages.ListRecent(ctx, limit)
}

func (s *chatService) Clear(ctx context.Context) error {
	return s.messages.Clear(ctx)
}

// ParseEvent extracts an event from message. With save set the draft is
// stored as an event.
func (s *chatService) ParseEvent(ctx context.Context, message string, save bool) (parsed *ParsedEvent, err error) {
	fields := map[string]any{"save": save}
	done := trackUseCase(ctx, s.observer, "parse-event", fields)
	defer func() { done(err) }()

	draft, err := s.planner.ParseChatToEvent(ctx, message)
	if err != nil {
		return nil, err
	}
	fields["source"] = string(draft.Source)
	parsed = &ParsedEvent{Draft: draft}
	if !save {
		return parsed, nil
	}

	now := s.now()
	e, err := eventFromItem(draft.Item, "", now, now)
	if err != nil {
		return nil, err
	}
	if err = s.events.Create(ctx, e); err != nil {
		return nil, err
	}
	parsed.Event = e
	return parsed, nil
}
