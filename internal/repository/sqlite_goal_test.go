package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/alexanderramin/lifeplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLiteGoalRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	g := testutil.NewTestGoal("Learn Spanish")
	g.Source = domain.SourceAI
	require.NoError(t, repo.Create(ctx, g))

	got, err := repo.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Learn Spanish", got.Title)
	assert.Equal(t, 30, got.TimeframeDays)
	assert.Equal(t, 75, got.FeasibilityScore)
	assert.Equal(t, 70, got.EstimatedSuccessRate)
	assert.Equal(t, domain.SourceAI, got.Source)
	assert.Equal(t, domain.GoalActive, got.Status)
}

func TestGoalRepo_ListFiltersByStatus(t *testing.T) {
	repo := NewSQLiteGoalRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	older := testutil.NewTestGoal("Older", testutil.WithCreatedAt(base))
	newer := testutil.NewTestGoal("Newer", testutil.WithCreatedAt(base.Add(time.Hour)))
	done := testutil.NewTestGoal("Done", testutil.WithGoalStatus(domain.GoalCompleted))
	for _, g := range []*domain.Goal{older, newer, done} {
		require.NoError(t, repo.Create(ctx, g))
	}

	active, err := repo.List(ctx, domain.GoalActive)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Newer", active[0].Title)
	assert.Equal(t, "Older", active[1].Title)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGoalRepo_UpdateStatus(t *testing.T) {
	repo := NewSQLiteGoalRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	g := testutil.NewTestGoal("Run a 10k")
	require.NoError(t, repo.Create(ctx, g))
	require.NoError(t, repo.UpdateStatus(ctx, g.ID, domain.GoalCompleted))

	got, err := repo.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GoalCompleted, got.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", domain.GoalCompleted), ErrNotFound)
}

func TestGoalRepo_DeleteCascades(t *testing.T) {
	database := testutil.NewTestDB(t)
	goals := NewSQLiteGoalRepo(database)
	subs := NewSQLiteSubGoalRepo(database)
	events := NewSQLiteEventRepo(database)
	ctx := context.Background()

	g := testutil.NewTestGoal("Write a novel")
	require.NoError(t, goals.Create(ctx, g))
	require.NoError(t, subs.Create(ctx, testutil.NewTestSubGoal(g.ID, "Outline", 1)))
	ev := testutil.NewTestEvent("Writing session", domain.CategoryLearning, testutil.WithGoalID(g.ID))
	require.NoError(t, events.Create(ctx, ev))

	require.NoError(t, goals.Delete(ctx, g.ID))

	remaining, err := subs.ListByGoal(ctx, g.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
	_, err = events.GetByID(ctx, ev.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, goals.Delete(ctx, g.ID), ErrNotFound)
}

func TestSubGoalRepo_ListOrderedByWeek(t *testing.T) {
	database := testutil.NewTestDB(t)
	goals := NewSQLiteGoalRepo(database)
	subs := NewSQLiteSubGoalRepo(database)
	ctx := context.Background()

	g := testutil.NewTestGoal("Learn guitar")
	require.NoError(t, goals.Create(ctx, g))
	for _, s := range []*domain.SubGoal{
		testutil.NewTestSubGoal(g.ID, "Songs", 3),
		testutil.NewTestSubGoal(g.ID, "Chords", 1),
		testutil.NewTestSubGoal(g.ID, "Strumming", 2),
	} {
		require.NoError(t, subs.Create(ctx, s))
	}

	list, err := subs.ListByGoal(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Chords", list[0].Title)
	assert.Equal(t, "Songs", list[2].Title)
	assert.Equal(t, testutil.Day.AddDate(0, 0, 7).Format(dateLayout), list[0].DueDate.Format(dateLayout))

	require.NoError(t, subs.SetCompleted(ctx, list[0].ID, true))
	list, err = subs.ListByGoal(ctx, g.ID)
	require.NoError(t, err)
	assert.True(t, list[0].Completed)
	assert.False(t, list[1].Completed)
}
