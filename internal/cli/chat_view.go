package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/lifeplan/internal/cli/formatter"
	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type chatKeyMap struct {
	Send key.Binding
	Quit key.Binding
}

var chatKeys = chatKeyMap{
	Send: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	Quit: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
}

// chatReplyMsg carries the assistant's answer back to the view.
type chatReplyMsg struct {
	reply domain.ChatReply
	err   error
}

type chatClearedMsg struct{ err error }

// chatView is the interactive chat. Replies are fetched off the update loop
// so the input stays responsive while the model thinks.
type chatView struct {
	app      *App
	input    textinput.Model
	messages []string
	waiting  bool
}

func newChatView(app *App) *chatView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 500

	return &chatView{
		app:      app,
		input:    ti,
		messages: []string{formatter.FormatChatWelcome()},
	}
}

func (v *chatView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *chatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, chatKeys.Quit):
			return v, tea.Quit
		case key.Matches(msg, chatKeys.Send):
			input := strings.TrimSpace(v.input.Value())
			if input == "" || v.waiting {
				return v, nil
			}
			v.input.Reset()
			return v.handleInput(input)
		}

	case chatReplyMsg:
		v.waiting = false
		if msg.err != nil {
			v.messages = append(v.messages, formatter.StyleRed.Render("error: "+msg.err.Error()))
			return v, nil
		}
		v.messages = append(v.messages, formatter.FormatChatReply(msg.reply))
		return v, nil

	case chatClearedMsg:
		if msg.err != nil {
			v.messages = append(v.messages, formatter.StyleRed.Render("error: "+msg.err.Error()))
			return v, nil
		}
		v.messages = []string{formatter.FormatChatWelcome(), formatter.Dim("Conversation cleared.")}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *chatView) View() string {
	var b strings.Builder

	for _, msg := range v.messages {
		b.WriteString(msg)
		b.WriteString("\n")
	}

	if v.waiting {
		b.WriteString(formatter.Dim("thinking...") + "\n")
	}
	b.WriteString(formatter.Dim("you> "))
	b.WriteString(v.input.View())
	b.WriteString("\n" + formatter.Dim(helpLine(v.ShortHelp())))

	return b.String()
}

func (v *chatView) ShortHelp() []key.Binding {
	return []key.Binding{chatKeys.Send, chatKeys.Quit}
}

func (v *chatView) handleInput(input string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(input) {
	case "/quit", "/exit", "/q":
		return v, tea.Quit
	case "/clear":
		return v, func() tea.Msg {
			return chatClearedMsg{err: v.app.Chat.Clear(context.Background())}
		}
	}

	v.messages = append(v.messages, formatter.FormatChatTurn(domain.RoleUser, input))
	v.waiting = true
	chat := v.app.Chat
	return v, func() tea.Msg {
		reply, err := chat.Reply(context.Background(), input)
		return chatReplyMsg{reply: reply, err: err}
	}
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
