package intelligence

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/alexanderramin/lifeplan/internal/llm"
)

// PromptKind selects one prompt template.
type PromptKind string

const (
	PromptSchedule     PromptKind = "schedule"
	PromptChat         PromptKind = "chat"
	PromptGoalPlan     PromptKind = "goal_plan"
	PromptEventExtract PromptKind = "event_extract"
	PromptSuggestions  PromptKind = "suggestions"
)

// MaxRecentTurns bounds the conversation window embedded in prompts.
const MaxRecentTurns = 5

// maxContextItems bounds the existing goals/events embedded in prompts.
const maxContextItems = 10

// PromptInput is the structured context a prompt is rendered from. Each
// kind reads only the fields it needs.
type PromptInput struct {
	Now             time.Time
	Goals           []string
	Preferences     domain.Preferences
	RecentTurns     []domain.ConversationTurn
	ExistingGoals   []string
	ExistingEvents  []domain.ScheduleItem
	Message         string
	GoalDescription string
	Timeframe       string
	Params          PlanParameters
	Balance         *domain.BalanceResult
}

// Prompt is a rendered prompt ready for the gateway.
type Prompt struct {
	Kind   PromptKind
	Task   llm.TaskType
	System string
	Text   string
}

type promptTemplate struct {
	task   llm.TaskType
	system string
	render func(PromptInput) string
}

var promptTemplates = map[PromptKind]promptTemplate{
	PromptSchedule:     {task: llm.TaskSchedule, system: scheduleSystemPrompt, render: renderSchedulePrompt},
	PromptChat:         {task: llm.TaskChat, system: chatSystemPrompt, render: renderChatPrompt},
	PromptGoalPlan:     {task: llm.TaskGoalPlan, system: goalPlanSystemPrompt, render: renderGoalPlanPrompt},
	PromptEventExtract: {task: llm.TaskEventExtract, system: eventExtractSystemPrompt, render: renderEventExtractPrompt},
	PromptSuggestions:  {task: llm.TaskSuggestions, system: suggestionsSystemPrompt, render: renderSuggestionsPrompt},
}

// BuildPrompt renders the template for kind. It performs no I/O and never
// fails; an unknown kind renders the chat template.
func BuildPrompt(kind PromptKind, in PromptInput) Prompt {
	tmpl, ok := promptTemplates[kind]
	if !ok {
		kind, tmpl = PromptChat, promptTemplates[PromptChat]
	}
	if in.Now.IsZero() {
		in.Now = time.Now()
	}
	return Prompt{
		Kind:   kind,
		Task:   tmpl.task,
		System: tmpl.system,
		Text:   tmpl.render(in),
	}
}

const scheduleSystemPrompt = `You are a scheduling assistant for a personal life-balance planner.
You turn a user's goals into a realistic one-day schedule that balances work, health, leisure, social and learning time.
You always answer with a single JSON object and nothing else.`

const chatSystemPrompt = `You are a warm, concise life-balance coach inside a personal planner app.
Answer in 2-4 sentences of plain text. Do not output JSON or markdown.`

const goalPlanSystemPrompt = `You are a goal-planning assistant for a personal planner.
You decompose a goal into weekly milestones, daily tasks and a dated schedule that fits the user's constraints.
You always answer with a single JSON object and nothing else.`

const eventExtractSystemPrompt = `You extract one calendar event from a short chat message.
You always answer with a single JSON object and nothing else.`

const suggestionsSystemPrompt = `You are a life-balance coach. You give short, specific, actionable suggestions.
You always answer with a single JSON object and nothing else.`

var categoryList = strings.Join(domain.CategoryNames(), ", ")

func renderSchedulePrompt(in PromptInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a balanced schedule for %s.\n\n", in.Now.Format("Monday, 2006-01-02"))
	writeList(&b, "User goals", in.Goals, "No specific goals; aim for a balanced day.")
	writePreferences(&b, in.Preferences)
	writeList(&b, "Existing goals to keep in mind", capList(in.ExistingGoals, maxContextItems), "")
	writeEvents(&b, in.ExistingEvents)
	writeTurns(&b, in.RecentTurns)

	b.WriteString(`Target distribution of tracked time: work 40%, health 25%, leisure 20%, social 10%, learning 5%.

Return ONLY a valid JSON object with this exact structure:
{
  "schedule": [
    {"title": "Morning workout", "category": "health", "startTime": "07:00", "endTime": "08:00", "description": "30 min run and stretching"},
    {"title": "Deep work block", "category": "work", "startTime": "09:00", "endTime": "12:00", "description": "Most important task first"}
  ],
  "balanceAnalysis": {"work": 40, "health": 25, "leisure": 20, "social": 10, "learning": 5},
  "suggestions": ["One short, specific suggestion"]
}

Rules:
`)
	fmt.Fprintf(&b, "1. category MUST be one of: %s\n", categoryList)
	b.WriteString(`2. startTime and endTime MUST use HH:MM 24-hour format, and endTime must be after startTime
3. balanceAnalysis values are integer percentages of scheduled time and should sum to 100
4. Include at most 3 suggestions
5. Respect work hours, workout preference and restrictions
6. Output ONLY the JSON object, no markdown, no explanation`)
	return b.String()
}

func renderChatPrompt(in PromptInput) string {
	var b strings.Builder

	writeList(&b, "The user's current goals", capList(in.ExistingGoals, maxContextItems), "")
	writeTurns(&b, in.RecentTurns)
	fmt.Fprintf(&b, "User: %s\nAssistant:", strings.TrimSpace(in.Message))
	return b.String()
}

func renderGoalPlanPrompt(in PromptInput) string {
	var b strings.Builder
	p := in.Params

	fmt.Fprintf(&b, "Goal: %s\n", strings.TrimSpace(in.GoalDescription))
	if tf := strings.TrimSpace(in.Timeframe); tf != "" {
		fmt.Fprintf(&b, "Requested timeframe: %s\n", tf)
	}
	fmt.Fprintf(&b, "Plan length: %d days (%d weekly milestones)\n", p.TimeframeDays, p.Weeks)
	fmt.Fprintf(&b, "Daily time budget for this goal: %.1f hours\n", p.DailyHours)
	fmt.Fprintf(&b, "Start date: %s\n\n", in.Now.Format("2006-01-02"))
	writePreferences(&b, in.Preferences)
	writeList(&b, "Existing goals (avoid conflicts and duplication)", capList(in.ExistingGoals, maxContextItems), "")
	writeEvents(&b, in.ExistingEvents)
	writeTurns(&b, in.RecentTurns)

	b.WriteString(`Return ONLY a valid JSON object with this exact structure:
{
  "goalTitle": "Short goal title",
  "description": "One paragraph overview of the plan",
  "milestones": [
    {"title": "Week 1: Foundations", "description": "What is achieved", "week": 1, "dueDate": "YYYY-MM-DD", "priority": "high"}
  ],
  "dailyTasks": [
    {"title": "Practice session", "description": "What to do", "category": "learning", "durationMinutes": 60, "timeOfDay": "evening"}
  ],
  "schedule": [
    {"title": "Practice session", "category": "learning", "date": "YYYY-MM-DD", "startTime": "19:00", "endTime": "20:00", "description": "Focus of the day"}
  ],
  "analysis": {
    "feasibilityScore": 80,
    "estimatedSuccessRate": 75,
    "keySuccessFactors": ["..."],
    "potentialChallenges": ["..."],
    "recommendedAdjustments": ["..."]
  },
  "trackingMetrics": [
    {"name": "Hours practised", "target": "10 per week", "frequency": "weekly"}
  ]
}

Rules:
`)
	fmt.Fprintf(&b, "1. Provide exactly %d milestones, one per week, with week numbers 1 to %d\n", p.Weeks, p.Weeks)
	fmt.Fprintf(&b, "2. category MUST be one of: %s\n", categoryList)
	fmt.Fprintf(&b, "3. Daily tasks must fit within %.1f hours per day\n", p.DailyHours)
	b.WriteString(`4. The schedule covers the first 14 days; startTime/endTime use HH:MM 24-hour format
5. Dates use YYYY-MM-DD
6. feasibilityScore and estimatedSuccessRate are integers from 0 to 100
7. Output ONLY the JSON object, no markdown, no explanation`)
	return b.String()
}

func renderEventExtractPrompt(in PromptInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Today is %s.\n", in.Now.Format("Monday, 2006-01-02"))
	fmt.Fprintf(&b, "Message: %q\n\n", strings.TrimSpace(in.Message))
	b.WriteString(`Return ONLY a valid JSON object with this exact structure:
{"title": "Gym session", "category": "health", "date": "YYYY-MM-DD", "startTime": "18:00", "endTime": "19:00", "description": ""}

Rules:
`)
	fmt.Fprintf(&b, "1. category MUST be one of: %s\n", categoryList)
	b.WriteString(`2. Resolve relative dates such as "tomorrow" against today's date
3. startTime and endTime use HH:MM 24-hour format; assume 60 minutes when no end is given
4. Output ONLY the JSON object`)
	return b.String()
}

func renderSuggestionsPrompt(in PromptInput) string {
	var b strings.Builder

	if in.Balance != nil {
		fmt.Fprintf(&b, "Today's balance score: %d/100\n", in.Balance.Score)
		b.WriteString("Time breakdown (actual% / target%):\n")
		for _, c := range domain.Categories {
			fmt.Fprintf(&b, "- %s: %d%% / %d%%\n", c, in.Balance.Breakdown[c], domain.OptimalDistribution[c])
		}
		b.WriteString("\n")
	}
	writeList(&b, "User goals", capList(in.Goals, maxContextItems), "")
	writeTurns(&b, in.RecentTurns)

	b.WriteString(`Return ONLY a valid JSON object with this exact structure:
{"suggestions": ["First suggestion", "Second suggestion", "Third suggestion"]}

Rules:
1. At most 3 suggestions, each one sentence
2. Focus on the categories furthest from their target
3. Output ONLY the JSON object`)
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string, empty string) {
	var kept []string
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		if empty != "" {
			fmt.Fprintf(b, "%s: %s\n\n", title, empty)
		}
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, it := range kept {
		fmt.Fprintf(b, "- %s\n", it)
	}
	b.WriteString("\n")
}

func writePreferences(b *strings.Builder, p domain.Preferences) {
	var lines []string
	if p.WorkHours != "" {
		lines = append(lines, "Work hours: "+p.WorkHours)
	}
	if p.WorkoutTime != "" {
		lines = append(lines, "Preferred workout time: "+p.WorkoutTime)
	}
	if p.StudyTime != "" {
		lines = append(lines, "Daily study time: "+p.StudyTime)
	}
	if len(p.AvailableTime) > 0 {
		lines = append(lines, "Available time windows: "+strings.Join(p.AvailableTime, ", "))
	}
	if len(p.Restrictions) > 0 {
		lines = append(lines, "Restrictions: "+strings.Join(p.Restrictions, "; "))
	}
	writeList(b, "Preferences", lines, "")
}

func writeEvents(b *strings.Builder, events []domain.ScheduleItem) {
	events = capList(events, maxContextItems)
	lines := make([]string, 0, len(events))
	for _, e := range events {
		when := e.StartTime + "-" + e.EndTime
		if e.Date != "" {
			when = e.Date + " " + when
		}
		lines = append(lines, fmt.Sprintf("%s %s (%s)", when, e.Title, e.Category))
	}
	writeList(b, "Already scheduled", lines, "")
}

func writeTurns(b *strings.Builder, turns []domain.ConversationTurn) {
	turns = RecentTurns(turns, MaxRecentTurns)
	if len(turns) == 0 {
		return
	}
	b.WriteString("Recent conversation:\n")
	for _, t := range turns {
		role := "User"
		if t.Role == domain.RoleAssistant {
			role = "Assistant"
		}
		fmt.Fprintf(b, "%s: %s\n", role, strings.TrimSpace(t.Text))
	}
	b.WriteString("\n")
}

// RecentTurns returns the last n turns, oldest first.
func RecentTurns(turns []domain.ConversationTurn, n int) []domain.ConversationTurn {
	if len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}

func capList[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
