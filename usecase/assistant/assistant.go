// Package assistant orchestrates chat turns: persist the user message, ask
// a responder for a reply, persist that too.
package assistant

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/frontend/assistant"
	"github.com/fastygo/frontend/domain"
)

// History is the slice of the history store the use case needs.
type History interface {
	Load(sessionID string) ([]domain.ChatMessage, error)
	Append(sessionID string, msg domain.ChatMessage) error
	Clear(sessionID string) error
}

// UseCase drives a conversation. The fallback responder always works; the
// openai responder is optional and picked per message when the visitor
// checks the "use OpenAI" toggle.
type UseCase struct {
	history  History
	fallback assistant.Responder
	openai   assistant.Responder
	logger   *zap.Logger
}

func New(history History, fallback, openai assistant.Responder, logger *zap.Logger) *UseCase {
	if fallback == nil {
		fallback = assistant.KeywordResponder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		history:  history,
		fallback: fallback,
		openai:   openai,
		logger:   logger,
	}
}

// HasOpenAI reports whether an OpenAI responder is configured, so the page
// knows whether to offer the toggle at all.
func (uc *UseCase) HasOpenAI() bool {
	return uc.openai != nil
}

// Send records the user message and the assistant's reply. Responder
// failures do not fail the turn: the error is surfaced as the reply text,
// which is how the conversation view reports problems.
func (uc *UseCase) Send(ctx context.Context, sessionID, text string, useOpenAI bool) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ErrInvalidInput
	}

	if err := uc.history.Append(sessionID, domain.ChatMessage{
		Role:    domain.ChatRoleUser,
		Content: text,
	}); err != nil {
		return err
	}

	history, err := uc.history.Load(sessionID)
	if err != nil {
		return err
	}

	responder := uc.fallback
	if useOpenAI && uc.openai != nil {
		responder = uc.openai
	}

	reply, err := responder.Reply(ctx, history, text)
	if err != nil {
		uc.logger.Warn("responder failed", zap.Error(err))
		reply = "(assistant error) " + domain.UserMessage(err)
	}

	return uc.history.Append(sessionID, domain.ChatMessage{
		Role:    domain.ChatRoleAssistant,
		Content: reply,
	})
}

// History returns the conversation for a session, oldest first.
func (uc *UseCase) History(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	return uc.history.Load(sessionID)
}

// Clear wipes the conversation for a session.
func (uc *UseCase) Clear(ctx context.Context, sessionID string) error {
	return uc.history.Clear(sessionID)
}
