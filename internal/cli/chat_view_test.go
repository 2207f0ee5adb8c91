package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/alexanderramin/lifeplan/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendLine(t *testing.T, v *chatView, line string) tea.Cmd {
	t.Helper()
	v.input.SetValue(line)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func TestChatView_ReplyRoundTrip(t *testing.T) {
	app := testApp(t)
	v := newChatView(app)

	cmd := sendLine(t, v, "help me plan my week")
	require.NotNil(t, cmd)
	assert.True(t, v.waiting)
	assert.Contains(t, v.View(), "you> help me plan my week")
	assert.Contains(t, v.View(), "thinking...")

	msg := cmd()
	reply, ok := msg.(chatReplyMsg)
	require.True(t, ok)
	require.NoError(t, reply.err)

	v.Update(msg)
	assert.False(t, v.waiting)
	assert.Contains(t, v.View(), reply.reply.Message)

	history, err := app.Chat.History(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestChatView_IgnoresInputWhileWaiting(t *testing.T) {
	v := newChatView(testApp(t))

	require.NotNil(t, sendLine(t, v, "first"))
	assert.Nil(t, sendLine(t, v, "second"))
	assert.Len(t, v.messages, 2)
	assert.Equal(t, "second", v.input.Value())
}

func TestChatView_Commands(t *testing.T) {
	app := testApp(t)
	v := newChatView(app)

	cmd := sendLine(t, v, "hello")
	v.Update(cmd())

	cmd = sendLine(t, v, "/clear")
	require.NotNil(t, cmd)
	v.Update(cmd())
	assert.Contains(t, v.View(), "Conversation cleared.")
	assert.NotContains(t, v.View(), "you> hello")

	history, err := app.Chat.History(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, history)

	cmd = sendLine(t, v, "/quit")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestChatView_EscQuits(t *testing.T) {
	v := newChatView(testApp(t))

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, v.ShortHelp()[0].Help().Key, "enter")
}

func TestChatView_Conversation(t *testing.T) {
	app := testApp(t)
	d := teatest.New(t, newChatView(app), teatest.WithSize(100, 30))

	d.Submit("what should I focus on today?")
	d.Submit("and tomorrow?")

	view := d.View()
	assert.Contains(t, view, "you> what should I focus on today?")
	assert.Contains(t, view, "you> and tomorrow?")
	assert.Equal(t, 2, strings.Count(view, "lifeplan> "))
	assert.True(t, d.SeenType(chatReplyMsg{}))

	d.Submit("/quit")
	assert.True(t, d.Quitting)

	history, err := app.Chat.History(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, history, 4)
}
