package formatter

import (
	"strings"

	"github.com/alexanderramin/lifeplan/internal/domain"
)

// FormatChatReply renders an assistant reply.
func FormatChatReply(reply domain.ChatReply) string {
	out := StylePurple.Render("lifeplan") + Dim("> ") + reply.Message
	if badge := SourceBadge(reply.Source); badge != "" {
		out += "  " + badge
	}
	return out
}

// FormatChatTurn renders one stored message.
func FormatChatTurn(role domain.ChatRole, text string) string {
	if role == domain.RoleUser {
		return Dim("you> ") + text
	}
	return StylePurple.Render("lifeplan") + Dim("> ") + text
}

// FormatChatHistory renders stored messages oldest first.
func FormatChatHistory(messages []*domain.ChatMessage) string {
	if len(messages) == 0 {
		return Dim("No conversation yet.") + "\n"
	}
	var b strings.Builder
	for _, m := range messages {
		b.WriteString(FormatChatTurn(m.Role, m.Text))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatChatWelcome is shown when the interactive chat opens.
func FormatChatWelcome() string {
	return Header("Chat") + "\n" +
		Dim("Ask about your goals, your schedule or your balance. /quit to leave, /clear to forget the conversation.")
}
