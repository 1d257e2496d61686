package assistant

import (
	"context"
	"strings"

	"github.com/fastygo/frontend/domain"
)

// Responder produces a reply to the latest user message. The conversation so
// far, including that message, is passed for responders that use it.
type Responder interface {
	Reply(ctx context.Context, history []domain.ChatMessage, message string) (string, error)
}

// KeywordResponder answers from a fixed set of keyword rules. It is the
// default responder and never fails, which keeps the assistant usable
// without any external service.
type KeywordResponder struct{}

func (KeywordResponder) Reply(ctx context.Context, history []domain.ChatMessage, message string) (string, error) {
	text := strings.ToLower(message)
	switch {
	case strings.Contains(text, "hello") || strings.Contains(text, "hi"):
		return "Hi there! How can I help you today?", nil
	case strings.Contains(text, "task"):
		return "You can create a new task from the Tasks page.", nil
	case strings.Contains(text, "dashboard"):
		return "The dashboard shows metrics and recent tasks. Which metric?", nil
	case strings.Contains(text, "help") || strings.Contains(text, "how"):
		return "Ask me about creating, updating, or deleting tasks, or about user accounts.", nil
	default:
		return "Thanks, I got that. Can you tell me more?", nil
	}
}
