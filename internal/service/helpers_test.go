package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/lifeplan/internal/db"
	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/alexanderramin/lifeplan/internal/intelligence"
	"github.com/alexanderramin/lifeplan/internal/llm"
	"github.com/alexanderramin/lifeplan/internal/repository"
	"github.com/alexanderramin/lifeplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testNow is mid-morning on testutil.Day.
var testNow = testutil.At(10, 0)

type mockLLMClient struct {
	response string
	err      error
	calls    int
	lastReq  llm.GenerateRequest
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "llama3.2", Attempts: 1}, nil
}

func (m *mockLLMClient) Available(_ context.Context) bool { return m.err == nil }

type testEnv struct {
	db        *sql.DB
	uow       db.UnitOfWork
	events    *repository.SQLiteEventRepo
	goals     *repository.SQLiteGoalRepo
	subGoals  *repository.SQLiteSubGoalRepo
	snapshots *repository.SQLiteBalanceSnapshotRepo
	messages  *repository.SQLiteChatMessageRepo
	planner   *intelligence.Planner
}

// newTestEnv wires repositories over an in-memory database. A nil client
// runs the planner on its rule-based fallbacks.
func newTestEnv(t *testing.T, client llm.LLMClient) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:        database,
		uow:       testutil.NewTestUoW(database),
		events:    repository.NewSQLiteEventRepo(database),
		goals:     repository.NewSQLiteGoalRepo(database),
		subGoals:  repository.NewSQLiteSubGoalRepo(database),
		snapshots: repository.NewSQLiteBalanceSnapshotRepo(database),
		messages:  repository.NewSQLiteChatMessageRepo(database),
		planner:   intelligence.NewPlanner(client, intelligence.WithClock(fixedClock)),
	}
}

func fixedClock() time.Time { return testNow }

func TestEventFromItem(t *testing.T) {
	item := domain.ScheduleItem{Title: "Run", Category: domain.CategoryHealth, StartTime: "07:00", EndTime: "07:45"}

	e, err := eventFromItem(item, "goal-1", testutil.Day, testNow)
	require.NoError(t, err)
	assert.True(t, testutil.At(7, 0).Equal(e.StartTime))
	assert.Equal(t, 45, e.DurationMinutes())
	assert.Equal(t, "goal-1", e.GoalID)
	assert.NotEmpty(t, e.ID)

	item.Date = "2026-03-05"
	e, err = eventFromItem(item, "", testutil.Day, testNow)
	require.NoError(t, err)
	assert.Equal(t, 5, e.StartTime.Day())
}

func TestEventFromItem_Invalid(t *testing.T) {
	tests := []struct {
		name string
		item domain.ScheduleItem
	}{
		{"bad clock", domain.ScheduleItem{Title: "x", Category: domain.CategoryWork, StartTime: "7am", EndTime: "08:00"}},
		{"ends before start", domain.ScheduleItem{Title: "x", Category: domain.CategoryWork, StartTime: "09:00", EndTime: "08:00"}},
		{"unknown category", domain.ScheduleItem{Title: "x", Category: "chores", StartTime: "09:00", EndTime: "10:00"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := eventFromItem(tc.item, "", testutil.Day, testNow)
			assert.ErrorIs(t, err, ErrInvalidEvent)
		})
	}
}

func TestMergeTitles(t *testing.T) {
	got := mergeTitles([]string{"Run a 10k", " "}, []string{"run a 10K", "Learn Spanish"})
	assert.Equal(t, []string{"Run a 10k", "Learn Spanish"}, got)
}

func TestDayBounds(t *testing.T) {
	from, to := dayBounds(testutil.At(23, 59))
	assert.True(t, testutil.Day.Equal(from))
	assert.True(t, testutil.Day.AddDate(0, 0, 1).Equal(to))
}
