package intelligence

import (
	"testing"

	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/alexanderramin/lifeplan/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validScheduleJSON = `{
  "schedule": [
    {"title": "Run", "category": "health", "startTime": "07:00", "endTime": "08:00"},
    {"title": "Deep work", "category": "work", "startTime": "09:00", "endTime": "12:00", "description": "Ship the report"}
  ],
  "balanceAnalysis": {"work": 75, "health": 25, "leisure": 0, "social": 0, "learning": 0},
  "suggestions": ["Add some leisure time"]
}`

func TestParseSchedulePlan_ProseAndFences(t *testing.T) {
	raw := "Here is your balanced day:\n```json\n" + validScheduleJSON + "\n```\nEnjoy!"
	plan, err := ParseSchedulePlan(raw)
	require.NoError(t, err)

	require.Len(t, plan.Schedule, 2)
	assert.Equal(t, domain.CategoryHealth, plan.Schedule[0].Category)
	assert.Equal(t, "Ship the report", plan.Schedule[1].Description)
	assert.Equal(t, 75, plan.BalanceAnalysis[domain.CategoryWork])
	assert.Equal(t, []string{"Add some leisure time"}, plan.Suggestions)
	assert.Equal(t, domain.SourceAI, plan.Source)
	assert.NoError(t, ValidateSchedulePlan(plan))
}

func TestParseSchedulePlan_NoJSON(t *testing.T) {
	_, err := ParseSchedulePlan("I think you should go for a run and then work a bit.")
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestParseSchedulePlan_DropsMalformedItems(t *testing.T) {
	raw := `{"schedule": [
		{"title": "Run", "category": "health", "startTime": "07:00", "endTime": "08:00"},
		{"title": "No end", "category": "work", "startTime": "09:00"},
		{"title": "Nap", "category": "sleep", "startTime": "13:00", "endTime": "14:00"},
		{"title": "Backwards", "category": "leisure", "startTime": "18:00", "endTime": "17:00"},
		{"category": "social", "startTime": "19:00", "endTime": "20:00"},
		{"title": 42, "category": "work", "startTime": "10:00", "endTime": "11:00"},
		"not an object"
	]}`
	plan, err := ParseSchedulePlan(raw)
	require.NoError(t, err)
	require.Len(t, plan.Schedule, 1)
	assert.Equal(t, "Run", plan.Schedule[0].Title)
}

func TestParseSchedulePlan_AllItemsInvalid(t *testing.T) {
	_, err := ParseSchedulePlan(`{"schedule": [{"title": "Nap", "category": "sleep", "startTime": "13:00", "endTime": "14:00"}]}`)
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)

	_, err = ParseSchedulePlan(`{"schedule": []}`)
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestParseSchedulePlan_NormalizesTimesAndCategories(t *testing.T) {
	raw := `{"schedule": [
		{"title": "Dinner", "category": " Social ", "startTime": "7:00 PM", "endTime": "8:30pm"},
		{"title": "Read", "category": "LEARNING", "startTime": "7:30", "endTime": "8:00"}
	]}`
	plan, err := ParseSchedulePlan(raw)
	require.NoError(t, err)
	require.Len(t, plan.Schedule, 2)
	assert.Equal(t, "19:00", plan.Schedule[0].StartTime)
	assert.Equal(t, "20:30", plan.Schedule[0].EndTime)
	assert.Equal(t, domain.CategorySocial, plan.Schedule[0].Category)
	assert.Equal(t, "07:30", plan.Schedule[1].StartTime)
	assert.Equal(t, domain.CategoryLearning, plan.Schedule[1].Category)
}

func TestParseSchedulePlan_RecomputesMissingBreakdown(t *testing.T) {
	raw := `{"schedule": [{"title": "Work", "category": "work", "startTime": "09:00", "endTime": "17:00"}]}`
	plan, err := ParseSchedulePlan(raw)
	require.NoError(t, err)
	assert.Equal(t, 100, plan.BalanceAnalysis[domain.CategoryWork])
	assert.Equal(t, 0, plan.BalanceAnalysis[domain.CategoryHealth])
	assert.NotEmpty(t, plan.Suggestions, "suggestions fall back to the scorer")
	assert.LessOrEqual(t, len(plan.Suggestions), 3)
}

func TestParseSchedulePlan_RecomputesInconsistentBreakdown(t *testing.T) {
	raw := `{"schedule": [{"title": "Work", "category": "work", "startTime": "09:00", "endTime": "10:00"}],
		"balanceAnalysis": {"work": 20, "health": 10, "leisure": 10, "social": 5, "learning": 5}}`
	plan, err := ParseSchedulePlan(raw)
	require.NoError(t, err)
	assert.Equal(t, 100, plan.BalanceAnalysis[domain.CategoryWork])
}

func TestParseSchedulePlan_LenientBreakdownNumbers(t *testing.T) {
	raw := `{"schedule": [{"title": "Work", "category": "work", "startTime": "09:00", "endTime": "10:00"}],
		"balanceAnalysis": {"work": "40%", "health": 25.0, "leisure": "20", "social": 10, "learning": 5}}`
	plan, err := ParseSchedulePlan(raw)
	require.NoError(t, err)
	assert.Equal(t, 40, plan.BalanceAnalysis[domain.CategoryWork])
	assert.Equal(t, 20, plan.BalanceAnalysis[domain.CategoryLeisure])
}

func TestParseSchedulePlan_CapsSuggestions(t *testing.T) {
	raw := `{"schedule": [{"title": "Work", "category": "work", "startTime": "09:00", "endTime": "10:00"}],
		"suggestions": ["a", "", "b", 7, "c", "d"]}`
	plan, err := ParseSchedulePlan(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, plan.Suggestions)
}

const placeholderPlanJSON = `{
  "goalTitle": "Conversational Spanish",
  "description": "Reach basic conversation in two months",
  "milestones": [
    {"title": "Basics", "description": "Greetings and numbers", "week": 1, "dueDate": "YYYY-MM-DD", "priority": "high"},
    {"title": "Everyday phrases", "week": "2", "dueDate": "2026-03-20", "priority": "urgent"},
    {"description": "missing title", "week": 3}
  ],
  "schedule": [
    {"title": "Vocabulary", "category": "learning", "date": "YYYY-MM-DD", "startTime": "19:00", "endTime": "20:00"},
    {"title": "Listening", "category": "learning", "date": "YYYY-MM-DD", "startTime": "19:00", "endTime": "20:00"},
    {"title": "Broken", "category": "learning", "date": "YYYY-MM-DD", "startTime": "nope", "endTime": "20:00"}
  ],
  "analysis": {"feasibilityScore": 130, "estimatedSuccessRate": "65"}
}`

func TestParseGoalPlan_BackfillsDatesAndRepairs(t *testing.T) {
	req := GoalPlanRequest{Description: "Learn Spanish", Timeframe: "2 months"}
	plan, err := ParseGoalPlan(placeholderPlanJSON, req, testNow)
	require.NoError(t, err)

	assert.Equal(t, "Conversational Spanish", plan.GoalTitle)
	assert.Equal(t, 60, plan.TimeframeDays)
	assert.Equal(t, domain.SourceAI, plan.Source)

	require.Len(t, plan.Milestones, 2)
	assert.Equal(t, "2026-03-09", plan.Milestones[0].DueDate, "week 1 placeholder is base + 7 days")
	assert.Equal(t, domain.PriorityHigh, plan.Milestones[0].Priority)
	assert.Equal(t, 2, plan.Milestones[1].WeekIndex)
	assert.Equal(t, "2026-03-20", plan.Milestones[1].DueDate)
	assert.Equal(t, domain.PriorityMedium, plan.Milestones[1].Priority)

	require.Len(t, plan.Schedule, 2)
	assert.Equal(t, "2026-03-02", plan.Schedule[0].Date)
	assert.Equal(t, "2026-03-03", plan.Schedule[1].Date)

	assert.Equal(t, 100, plan.Analysis.FeasibilityScore)
	assert.Equal(t, 65, plan.Analysis.EstimatedSuccessRate)
	assert.NotEmpty(t, plan.Analysis.KeySuccessFactors)
	assert.NotEmpty(t, plan.DailyTasks, "missing daily tasks are filled in")
	assert.NotEmpty(t, plan.TrackingMetrics, "missing metrics are filled in")
	assert.NoError(t, ValidateGoalPlan(plan))
}

func TestParseGoalPlan_RequiresMilestonesAndSchedule(t *testing.T) {
	req := GoalPlanRequest{Description: "Learn Spanish"}

	_, err := ParseGoalPlan(`{"goalTitle": "x", "schedule": [{"title": "a", "category": "learning", "startTime": "19:00", "endTime": "20:00"}]}`, req, testNow)
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)

	_, err = ParseGoalPlan(`{"goalTitle": "x", "milestones": [{"title": "m", "week": 1}]}`, req, testNow)
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestParseGoalPlan_MissingTitleUsesDescription(t *testing.T) {
	raw := `{"milestones": [{"title": "m"}], "schedule": [{"title": "a", "category": "learning", "startTime": "19:00", "endTime": "20:00"}]}`
	plan, err := ParseGoalPlan(raw, GoalPlanRequest{Description: "learn guitar"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, "Learn guitar", plan.GoalTitle)
	assert.Equal(t, 1, plan.Milestones[0].WeekIndex)
	assert.Equal(t, "2026-03-09", plan.Milestones[0].DueDate)
}

func TestParseEventDraft(t *testing.T) {
	item, err := ParseEventDraft(`Sure: {"title": "Gym", "category": "health", "date": "YYYY-MM-DD", "startTime": "18:00"}`, testNow)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", item.Date)
	assert.Equal(t, "18:00", item.StartTime)
	assert.Equal(t, "19:00", item.EndTime)

	_, err = ParseEventDraft(`{"title": "Gym", "category": "cardio", "startTime": "18:00"}`, testNow)
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestParseSuggestions(t *testing.T) {
	got, err := ParseSuggestions(`{"suggestions": ["Walk at lunch", "Call a friend", "Read 10 pages", "Sleep early"]}`)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = ParseSuggestions(`{"suggestions": []}`)
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestParseChatText(t *testing.T) {
	got, err := ParseChatText("  Assistant: Take a short walk.  ")
	require.NoError(t, err)
	assert.Equal(t, "Take a short walk.", got)

	_, err = ParseChatText("   ")
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestValidateScheduleItem(t *testing.T) {
	valid := domain.ScheduleItem{Title: "Run", Category: domain.CategoryHealth, StartTime: "07:00", EndTime: "08:00"}
	assert.NoError(t, ValidateScheduleItem(valid, false))
	assert.Error(t, ValidateScheduleItem(valid, true), "dated plans need a date")

	tests := []struct {
		name string
		edit func(*domain.ScheduleItem)
	}{
		{"empty title", func(i *domain.ScheduleItem) { i.Title = " " }},
		{"bad category", func(i *domain.ScheduleItem) { i.Category = "sleep" }},
		{"bad start", func(i *domain.ScheduleItem) { i.StartTime = "7am" }},
		{"inverted", func(i *domain.ScheduleItem) { i.EndTime = "06:00" }},
		{"bad date", func(i *domain.ScheduleItem) { i.Date = "YYYY-MM-DD" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := valid
			tt.edit(&item)
			assert.Error(t, ValidateScheduleItem(item, false))
		})
	}
}
