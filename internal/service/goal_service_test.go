package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/alexanderramin/lifeplan/internal/intelligence"
	"github.com/alexanderramin/lifeplan/internal/repository"
	"github.com/alexanderramin/lifeplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGoalService(env *testEnv) *goalService {
	svc := NewGoalService(env.goals, env.subGoals, env.events, env.uow, env.planner).(*goalService)
	svc.now = fixedClock
	return svc
}

func TestGoalService_CreatePlan_Fallback(t *testing.T) {
	env := newTestEnv(t, nil)
	svc := newTestGoalService(env)
	ctx := context.Background()

	result, err := svc.CreatePlan(ctx, intelligence.GoalPlanRequest{
		Description: "learn to play guitar",
		Timeframe:   "2 weeks",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SourceFallback, result.Goal.Source)
	assert.Equal(t, 14, result.Goal.TimeframeDays)
	assert.Len(t, result.SubGoals, 2)
	assert.Len(t, result.Events, 14)

	detail, err := svc.Get(ctx, result.Goal.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Goal.Title, detail.Goal.Title)
	assert.Equal(t, domain.GoalActive, detail.Goal.Status)
	require.Len(t, detail.SubGoals, 2)
	assert.Equal(t, 1, detail.SubGoals[0].WeekIndex)
	assert.Equal(t, testutil.Day.AddDate(0, 0, 7).Format(dateLayout), detail.SubGoals[0].DueDate.Format(dateLayout))
	require.Len(t, detail.Events, 14)
	assert.True(t, testutil.At(19, 0).Equal(detail.Events[0].StartTime))
	assert.Equal(t, testutil.Day.AddDate(0, 0, 13).Format(dateLayout), detail.Events[13].StartTime.Format(dateLayout))
	for _, e := range detail.Events {
		assert.Equal(t, result.Goal.ID, e.GoalID)
	}
}

func TestGoalService_CreatePlan_FromModel(t *testing.T) {
	client := &mockLLMClient{response: `{
		"goalTitle": "Spanish conversation",
		"milestones": [
			{"title": "Basics", "week": 1, "dueDate": "2026-03-09", "priority": "high"},
			{"title": "Small talk", "week": 2, "dueDate": "2026-03-16"}
		],
		"schedule": [
			{"title": "Vocabulary drill", "category": "learning", "date": "2026-03-03", "startTime": "07:30", "endTime": "08:00"}
		]
	}`}
	env := newTestEnv(t, client)
	require.NoError(t, env.goals.Create(context.Background(), testutil.NewTestGoal("Run a 10k")))
	svc := newTestGoalService(env)

	result, err := svc.CreatePlan(context.Background(), intelligence.GoalPlanRequest{
		Description: "hold a conversation in Spanish",
		Timeframe:   "2 weeks",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SourceAI, result.Goal.Source)
	assert.Equal(t, "Spanish conversation", result.Goal.Title)
	require.Len(t, result.Events, 1)
	assert.Equal(t, 3, result.Events[0].StartTime.Day())
	assert.Equal(t, domain.PriorityMedium, result.SubGoals[1].Priority)
	assert.Contains(t, client.lastReq.UserPrompt, "Run a 10k", "active goals are passed as context")
}

func TestGoalService_CreatePlan_EmptyDescription(t *testing.T) {
	env := newTestEnv(t, nil)
	_, err := newTestGoalService(env).CreatePlan(context.Background(), intelligence.GoalPlanRequest{Description: "  "})
	assert.ErrorIs(t, err, intelligence.ErrEmptyGoal)

	goals, err := env.goals.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestGoalService_CreatePlan_RollbackOnEventFailure(t *testing.T) {
	env := newTestEnv(t, nil)
	// Exec #1 = goal, #2-#3 = milestones, #4 = first event.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     env.db,
		FailOn: 4,
		Err:    fmt.Errorf("injected event insert failure"),
	}
	svc := NewGoalService(env.goals, env.subGoals, env.events, failUoW, env.planner).(*goalService)
	svc.now = fixedClock
	ctx := context.Background()

	_, err := svc.CreatePlan(ctx, intelligence.GoalPlanRequest{Description: "learn to cook", Timeframe: "2 weeks"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected event insert failure")

	goals, err := env.goals.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, goals, "goal should not exist after rollback")

	events, err := env.events.ListBetween(ctx, testutil.Day, testutil.Day.AddDate(0, 0, 30))
	require.NoError(t, err)
	assert.Empty(t, events, "no events should exist after rollback")
}

func TestGoalService_StatusMilestoneAndDelete(t *testing.T) {
	env := newTestEnv(t, nil)
	svc := newTestGoalService(env)
	ctx := context.Background()

	result, err := svc.CreatePlan(ctx, intelligence.GoalPlanRequest{Description: "write a short story", Timeframe: "3 weeks"})
	require.NoError(t, err)
	id := result.Goal.ID

	require.NoError(t, svc.CompleteMilestone(ctx, result.SubGoals[0].ID))
	require.NoError(t, svc.SetStatus(ctx, id, domain.GoalCompleted))
	assert.Error(t, svc.SetStatus(ctx, id, domain.GoalStatus("paused")))

	detail, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.GoalCompleted, detail.Goal.Status)
	assert.True(t, detail.SubGoals[0].Completed)

	active, err := svc.List(ctx, domain.GoalActive)
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, svc.Delete(ctx, id))
	_, err = svc.Get(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	events, err := env.events.ListByGoal(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, events)
}
