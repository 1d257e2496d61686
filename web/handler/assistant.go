package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/frontend/domain"
	"github.com/fastygo/frontend/internal/middleware"
	"github.com/fastygo/frontend/internal/session"
	"github.com/fastygo/frontend/pkg/httpcontext"
	assistantUC "github.com/fastygo/frontend/usecase/assistant"
	"github.com/fastygo/frontend/web/view"
)

// useOpenAIKey is the session value remembering the "use OpenAI" toggle
// between interactions.
const useOpenAIKey = "use_openai"

type AssistantHandler struct {
	baseHandler
	uc *assistantUC.UseCase
}

func NewAssistantHandler(uc *assistantUC.UseCase, cfg Config, adapter *httpcontext.Adapter, store session.Store, logger *zap.Logger) *AssistantHandler {
	return &AssistantHandler{
		baseHandler: newBaseHandler(cfg, adapter, store, logger),
		uc:          uc,
	}
}

type assistantPage struct {
	view.Page
	Messages    []domain.ChatMessage
	OpenAIReady bool
	UseOpenAI   bool
}

// Show renders the conversation.
func (h *AssistantHandler) Show(ctx *fasthttp.RequestCtx) {
	sess := middleware.SessionFrom(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	data := assistantPage{
		Page:        h.page(stdCtx, ctx, "Assistant"),
		OpenAIReady: h.uc.HasOpenAI(),
		UseOpenAI:   sess.Value(useOpenAIKey) == "1",
	}

	messages, err := h.uc.History(stdCtx, sess.ID)
	if err != nil {
		h.logger.Error("load chat history failed", zap.Error(err))
		data.Error = domain.UserMessage(err)
	}
	data.Messages = messages

	h.render(ctx, http.StatusOK, "assistant.html", data)
}

// Send records the message, gets a reply, and reloads the conversation.
// Empty input is ignored. The OpenAI toggle is remembered on the session so
// it stays checked across the redirect.
func (h *AssistantHandler) Send(ctx *fasthttp.RequestCtx) {
	sess := middleware.SessionFrom(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	useOpenAI := formValue(ctx, "use_openai") != ""
	if useOpenAI {
		sess.SetValue(useOpenAIKey, "1")
	} else {
		sess.DeleteValue(useOpenAIKey)
	}
	if err := h.store.Save(stdCtx, sess); err != nil {
		h.logger.Warn("failed to save session", zap.Error(err))
	}

	if err := h.uc.Send(stdCtx, sess.ID, formValue(ctx, "message"), useOpenAI); err != nil && !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		h.logger.Error("assistant send failed", zap.Error(err))
		h.flashError(stdCtx, sess, domain.UserMessage(err))
	}
	h.redirect(ctx, "/assistant")
}

// Clear wipes the conversation.
func (h *AssistantHandler) Clear(ctx *fasthttp.RequestCtx) {
	sess := middleware.SessionFrom(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Clear(stdCtx, sess.ID); err != nil {
		h.logger.Error("clear chat failed", zap.Error(err))
		h.flashError(stdCtx, sess, domain.UserMessage(err))
	}
	h.redirect(ctx, "/assistant")
}
