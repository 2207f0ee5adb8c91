package teatest

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type echoMsg string

// echoModel collects typed runes, echoes a line on Enter and quits on Esc.
type echoModel struct {
	buf   strings.Builder
	lines []string
	width int
}

func (m *echoModel) Init() tea.Cmd { return nil }

func (m *echoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyRunes:
			m.buf.WriteString(string(msg.Runes))
		case tea.KeyEnter:
			line := m.buf.String()
			m.buf.Reset()
			return m, func() tea.Msg { return echoMsg(line) }
		case tea.KeyEsc:
			return m, tea.Quit
		}
	case echoMsg:
		m.lines = append(m.lines, string(msg))
	}
	return m, nil
}

func (m *echoModel) View() string {
	return strings.Join(m.lines, "\n") + "\n> " + m.buf.String()
}

func TestDriver_SubmitDrainsCmds(t *testing.T) {
	m := &echoModel{}
	d := New(t, m, WithSize(80, 24))

	d.Submit("hello")
	d.Type("draft")

	assert.Equal(t, 80, m.width)
	assert.Equal(t, []string{"hello"}, m.lines)
	assert.True(t, d.SeenType(echoMsg("")))
	assert.Contains(t, d.View(), "> draft")
}

func TestDriver_QuitStopsInput(t *testing.T) {
	m := &echoModel{}
	d := New(t, m)

	d.Press(tea.KeyEsc)
	assert.True(t, d.Quitting)

	d.Submit("ignored")
	assert.Empty(t, m.lines)
}
