package intelligence

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/lifeplan/internal/balance"
	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/alexanderramin/lifeplan/internal/llm"
)

// Planner sequences prompt building, the model call, parsing and the
// rule-based fallback for every generation task. Generation never fails:
// any model or parse error degrades to fallback output, reported through
// the result's Source and the logger. Only invalid input is returned as an
// error.
type Planner struct {
	client llm.LLMClient
	logger *slog.Logger
	now    func() time.Time
}

// PlannerOption customizes a Planner.
type PlannerOption func(*Planner)

// WithLogger sets the logger that records fallbacks.
func WithLogger(l *slog.Logger) PlannerOption {
	return func(p *Planner) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithClock overrides the time source used for dates.
func WithClock(now func() time.Time) PlannerOption {
	return func(p *Planner) {
		if now != nil {
			p.now = now
		}
	}
}

// NewPlanner creates a Planner. A nil client runs every task on fallbacks.
func NewPlanner(client llm.LLMClient, opts ...PlannerOption) *Planner {
	p := &Planner{
		client: client,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GenerateSchedule returns a one-day schedule for the user's goals.
func (p *Planner) GenerateSchedule(ctx context.Context, req ScheduleRequest) domain.SchedulePlan {
	prompt := BuildPrompt(PromptSchedule, PromptInput{
		Now:            p.now(),
		Goals:          req.Goals,
		Preferences:    req.Preferences,
		RecentTurns:    req.RecentTurns,
		ExistingGoals:  req.ExistingGoals,
		ExistingEvents: req.ExistingEvents,
	})

	text, err := p.generate(ctx, prompt)
	if err == nil {
		var plan domain.SchedulePlan
		if plan, err = ParseSchedulePlan(text); err == nil {
			return plan
		}
	}
	p.fellBack(prompt.Task, err)
	return FallbackSchedule(req)
}

// ChatReply answers one chat message.
func (p *Planner) ChatReply(ctx context.Context, req ChatRequest) (domain.ChatReply, error) {
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return domain.ChatReply{}, ErrEmptyMessage
	}

	prompt := BuildPrompt(PromptChat, PromptInput{
		Now:           p.now(),
		Message:       msg,
		RecentTurns:   req.RecentTurns,
		ExistingGoals: req.Goals,
	})

	text, err := p.generate(ctx, prompt)
	if err == nil {
		var reply string
		if reply, err = ParseChatText(text); err == nil {
			return domain.ChatReply{Message: reply, Source: domain.SourceAI}, nil
		}
	}
	p.fellBack(prompt.Task, err)
	return domain.ChatReply{Message: FallbackChatReply(msg), Source: domain.SourceFallback}, nil
}

// AnalyzeBalance scores a day's events. It makes no model call.
func (p *Planner) AnalyzeBalance(events []*domain.Event) domain.BalanceResult {
	return balance.Analyze(balance.EntriesFromEvents(events))
}

// CreateGoalPlan decomposes a goal into milestones, daily tasks and a dated
// schedule.
func (p *Planner) CreateGoalPlan(ctx context.Context, req GoalPlanRequest) (domain.GoalPlan, error) {
	if strings.TrimSpace(req.Description) == "" {
		return domain.GoalPlan{}, ErrEmptyGoal
	}

	now := p.now()
	prompt := BuildPrompt(PromptGoalPlan, PromptInput{
		Now:             now,
		GoalDescription: req.Description,
		Timeframe:       req.Timeframe,
		Params:          req.Params(),
		Preferences:     req.Preferences,
		RecentTurns:     req.RecentTurns,
		ExistingGoals:   req.ExistingGoals,
		ExistingEvents:  req.ExistingEvents,
	})

	text, err := p.generate(ctx, prompt)
	if err == nil {
		var plan domain.GoalPlan
		if plan, err = ParseGoalPlan(text, req, now); err == nil {
			return plan, nil
		}
	}
	p.fellBack(prompt.Task, err)
	return FallbackGoalPlan(req, now), nil
}

// ParseChatToEvent turns a chat message into an event draft.
func (p *Planner) ParseChatToEvent(ctx context.Context, message string) (domain.EventDraft, error) {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return domain.EventDraft{}, ErrEmptyMessage
	}

	now := p.now()
	prompt := BuildPrompt(PromptEventExtract, PromptInput{Now: now, Message: msg})

	text, err := p.generate(ctx, prompt)
	if err == nil {
		var item domain.ScheduleItem
		if item, err = ParseEventDraft(text, now); err == nil {
			return domain.EventDraft{Item: item, Source: domain.SourceAI}, nil
		}
	}
	p.fellBack(prompt.Task, err)
	return domain.EventDraft{Item: FallbackEventDraft(msg, now), Source: domain.SourceFallback}, nil
}

// GenerateSuggestions asks the model for balance advice, falling back to
// the scorer's own suggestions.
func (p *Planner) GenerateSuggestions(ctx context.Context, result domain.BalanceResult, goals []string) SuggestionSet {
	prompt := BuildPrompt(PromptSuggestions, PromptInput{
		Now:     p.now(),
		Balance: &result,
		Goals:   goals,
	})

	text, err := p.generate(ctx, prompt)
	if err == nil {
		var suggestions []string
		if suggestions, err = ParseSuggestions(text); err == nil {
			return SuggestionSet{Suggestions: suggestions, Source: domain.SourceAI}
		}
	}
	p.fellBack(prompt.Task, err)
	return SuggestionSet{Suggestions: FallbackSuggestions(result), Source: domain.SourceFallback}
}

func (p *Planner) generate(ctx context.Context, prompt Prompt) (string, error) {
	if p.client == nil {
		return "", llm.ErrModelUnavailable
	}
	resp, err := p.client.Generate(ctx, llm.GenerateRequest{
		Task:         prompt.Task,
		SystemPrompt: prompt.System,
		UserPrompt:   prompt.Text,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (p *Planner) fellBack(task llm.TaskType, err error) {
	p.logger.Warn("using rule-based fallback", "task", string(task), "error", err)
}
