package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/alexanderramin/lifeplan/internal/intelligence"
	"github.com/alexanderramin/lifeplan/internal/llm"
	"github.com/alexanderramin/lifeplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduleService(env *testEnv) *scheduleService {
	svc := NewScheduleService(env.events, env.goals, env.uow, env.planner).(*scheduleService)
	svc.now = fixedClock
	return svc
}

func TestScheduleService_Generate_MergesContext(t *testing.T) {
	client := &mockLLMClient{err: llm.ErrTimeout}
	env := newTestEnv(t, client)
	ctx := context.Background()
	require.NoError(t, env.goals.Create(ctx, testutil.NewTestGoal("Learn Spanish")))
	require.NoError(t, env.events.Create(ctx, testutil.NewTestEvent("Dentist", domain.CategoryHealth)))

	plan, err := newTestScheduleService(env).Generate(ctx, intelligence.ScheduleRequest{Goals: []string{"Finish the report"}})
	require.NoError(t, err)

	assert.Equal(t, domain.SourceFallback, plan.Source)
	assert.Len(t, plan.Schedule, 5)
	assert.Equal(t, 100, plan.BalanceAnalysis.Sum())
	assert.Equal(t, "Make progress on: Finish the report", plan.Schedule[1].Description)

	prompt := client.lastReq.UserPrompt
	assert.Contains(t, prompt, "Finish the report")
	assert.Contains(t, prompt, "Learn Spanish")
	assert.Contains(t, prompt, "Dentist")
}

func TestScheduleService_SaveForDate(t *testing.T) {
	env := newTestEnv(t, nil)
	svc := newTestScheduleService(env)
	ctx := context.Background()

	plan, err := svc.Generate(ctx, intelligence.ScheduleRequest{})
	require.NoError(t, err)

	tomorrow := testutil.Day.AddDate(0, 0, 1)
	saved, err := svc.SaveForDate(ctx, plan, tomorrow)
	require.NoError(t, err)
	assert.Len(t, saved, len(plan.Schedule))

	stored, err := env.events.ListBetween(ctx, tomorrow, tomorrow.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, stored, len(plan.Schedule))
	assert.Equal(t, "Morning workout", stored[0].Title)
	assert.Equal(t, 7, stored[0].StartTime.Hour())
}

func TestScheduleService_SaveForDate_AllOrNothing(t *testing.T) {
	env := newTestEnv(t, nil)
	failUoW := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: 3, Err: fmt.Errorf("disk full")}
	svc := NewScheduleService(env.events, env.goals, failUoW, env.planner).(*scheduleService)
	svc.now = fixedClock
	ctx := context.Background()

	plan, err := svc.Generate(ctx, intelligence.ScheduleRequest{})
	require.NoError(t, err)
	_, err = svc.SaveForDate(ctx, plan, testutil.Day)
	require.Error(t, err)

	stored, err := env.events.ListBetween(ctx, testutil.Day, testutil.Day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestScheduleService_SaveForDate_RejectsBadItem(t *testing.T) {
	env := newTestEnv(t, nil)
	svc := newTestScheduleService(env)

	plan := domain.SchedulePlan{Schedule: []domain.ScheduleItem{
		{Title: "Fine", Category: domain.CategoryWork, StartTime: "09:00", EndTime: "10:00"},
		{Title: "Broken", Category: domain.CategoryWork, StartTime: "25:00", EndTime: "26:00"},
	}}
	_, err := svc.SaveForDate(context.Background(), plan, testutil.Day)
	assert.ErrorIs(t, err, ErrInvalidEvent)
}
