package domain

import "time"

// Chat roles as stored in the assistant history.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one entry in a session's assistant conversation.
type ChatMessage struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}

// Equal reports whether two messages carry the same role and content,
// regardless of timestamps. Used to skip duplicate consecutive appends.
func (m ChatMessage) Equal(other ChatMessage) bool {
	return m.Role == other.Role && m.Content == other.Content
}
