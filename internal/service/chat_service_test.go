package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/alexanderramin/lifeplan/internal/intelligence"
	"github.com/alexanderramin/lifeplan/internal/llm"
	"github.com/alexanderramin/lifeplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChatService(env *testEnv) *chatService {
	svc := NewChatService(env.messages, env.goals, env.events, env.uow, env.planner).(*chatService)
	svc.now = fixedClock
	return svc
}

func TestChatService_ReplyStoresBothTurns(t *testing.T) {
	client := &mockLLMClient{response: "Try a short walk after lunch."}
	env := newTestEnv(t, client)
	svc := newTestChatService(env)
	ctx := context.Background()

	reply, err := svc.Reply(ctx, "How do I fit in exercise?")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceAI, reply.Source)
	assert.Equal(t, "Try a short walk after lunch.", reply.Message)
	assert.Equal(t, llm.TaskChat, client.lastReq.Task)

	history, err := svc.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.RoleUser, history[0].Role)
	assert.Equal(t, domain.RoleAssistant, history[1].Role)
	assert.Equal(t, domain.SourceAI, history[1].Source)

	_, err = svc.Reply(ctx, "And on weekends?")
	require.NoError(t, err)
	assert.Contains(t, client.lastReq.UserPrompt, "User: How do I fit in exercise?")
	assert.Contains(t, client.lastReq.UserPrompt, "Assistant: Try a short walk after lunch.")
}

func TestChatService_ReplyUsesOnlyRecentTurns(t *testing.T) {
	client := &mockLLMClient{response: "ok"}
	env := newTestEnv(t, client)
	svc := newTestChatService(env)
	ctx := context.Background()

	for _, msg := range []string{"one", "two", "three", "four"} {
		_, err := svc.Reply(ctx, "message "+msg)
		require.NoError(t, err)
	}
	prompt := client.lastReq.UserPrompt
	assert.NotContains(t, prompt, "message one")
	assert.Contains(t, prompt, "User: message two")
	assert.Contains(t, prompt, "message three")
	assert.Contains(t, prompt, "User: message four\nAssistant:")
}

func TestChatService_ReplyFallback(t *testing.T) {
	env := newTestEnv(t, nil)
	svc := newTestChatService(env)

	reply, err := svc.Reply(context.Background(), "I'm feeling overwhelmed")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceFallback, reply.Source)
	assert.Equal(t, intelligence.FallbackChatReply("I'm feeling overwhelmed"), reply.Message)
}

func TestChatService_ReplyEmptyMessage(t *testing.T) {
	env := newTestEnv(t, nil)
	svc := newTestChatService(env)
	ctx := context.Background()

	_, err := svc.Reply(ctx, "   ")
	assert.ErrorIs(t, err, intelligence.ErrEmptyMessage)

	history, err := svc.History(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestChatService_Clear(t *testing.T) {
	env := newTestEnv(t, nil)
	svc := newTestChatService(env)
	ctx := context.Background()

	_, err := svc.Reply(ctx, "hello")
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx))

	history, err := svc.History(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestChatService_ParseEvent(t *testing.T) {
	env := newTestEnv(t, nil)
	svc := newTestChatService(env)
	ctx := context.Background()

	preview, err := svc.ParseEvent(ctx, "gym tomorrow at 7am", false)
	require.NoError(t, err)
	assert.Nil(t, preview.Event)
	assert.Equal(t, domain.SourceFallback, preview.Draft.Source)
	assert.Equal(t, domain.CategoryHealth, preview.Draft.Item.Category)

	tomorrow := testutil.Day.AddDate(0, 0, 1)
	stored, err := env.events.ListBetween(ctx, tomorrow, tomorrow.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, stored, "preview does not store")

	saved, err := svc.ParseEvent(ctx, "gym tomorrow at 7am", true)
	require.NoError(t, err)
	require.NotNil(t, saved.Event)
	assert.True(t, tomorrow.Add(7*time.Hour).Equal(saved.Event.StartTime))
	assert.Equal(t, 60, saved.Event.DurationMinutes())

	stored, err = env.events.ListBetween(ctx, tomorrow, tomorrow.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestChatService_ParseEventEmpty(t *testing.T) {
	env := newTestEnv(t, nil)
	_, err := newTestChatService(env).ParseEvent(context.Background(), "", true)
	assert.ErrorIs(t, err, intelligence.ErrEmptyMessage)
}
