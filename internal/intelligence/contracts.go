package intelligence

import (
	"errors"
	"time"

	"github.com/alexanderramin/lifeplan/internal/domain"
)

var (
	// ErrEmptyGoal is returned when a plan is requested without a goal description.
	ErrEmptyGoal = errors.New("goal description is required")
	// ErrEmptyMessage is returned when a chat message has no text.
	ErrEmptyMessage = errors.New("message is required")
)

// ScheduleRequest is the input to schedule generation.
type ScheduleRequest struct {
	Goals          []string
	Preferences    domain.Preferences
	ExistingGoals  []string
	ExistingEvents []domain.ScheduleItem
	RecentTurns    []domain.ConversationTurn
}

// ChatRequest is one user message with its conversational context.
type ChatRequest struct {
	Message     string
	RecentTurns []domain.ConversationTurn
	Goals       []string
}

// GoalPlanRequest is the input to goal decomposition.
type GoalPlanRequest struct {
	Description    string
	Timeframe      string
	Preferences    domain.Preferences
	ExistingGoals  []string
	ExistingEvents []domain.ScheduleItem
	RecentTurns    []domain.ConversationTurn
}

// Params derives the numeric plan limits from the request's free text.
func (r GoalPlanRequest) Params() PlanParameters {
	return DerivePlanParameters(r.Timeframe, r.Preferences.StudyTime)
}

// SuggestionSet is a list of at most three suggestions and where they came from.
type SuggestionSet struct {
	Suggestions []string                `json:"suggestions"`
	Source      domain.GenerationSource `json:"source"`
}

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// startOfDay truncates t to local midnight.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
