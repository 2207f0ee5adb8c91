package domain

import "time"

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ConversationTurn is one message of a chat exchange.
type ConversationTurn struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}

// ChatMessage is a persisted ConversationTurn.
type ChatMessage struct {
	ID        string
	Role      ChatRole
	Text      string
	Source    GenerationSource
	CreatedAt time.Time
}

// ChatReply is the assistant's answer to one user message.
type ChatReply struct {
	Message string           `json:"message"`
	Source  GenerationSource `json:"source"`
}

// EventDraft is an event extracted from free text, not yet stored.
type EventDraft struct {
	Item   ScheduleItem     `json:"item"`
	Source GenerationSource `json:"source"`
}
