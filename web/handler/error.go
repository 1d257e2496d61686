package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/frontend/internal/session"
	"github.com/fastygo/frontend/pkg/httpcontext"
	"github.com/fastygo/frontend/web/view"
)

// ErrorHandler renders the router's fallback responses as full pages so a
// mistyped URL still lands somewhere navigable.
type ErrorHandler struct {
	baseHandler
}

func NewErrorHandler(cfg Config, adapter *httpcontext.Adapter, store session.Store, logger *zap.Logger) *ErrorHandler {
	return &ErrorHandler{baseHandler: newBaseHandler(cfg, adapter, store, logger)}
}

type errorPage struct {
	view.Page
	StatusText string
	Message    string
}

func (h *ErrorHandler) NotFound(ctx *fasthttp.RequestCtx) {
	h.renderError(ctx, http.StatusNotFound, "The page you are looking for does not exist.")
}

func (h *ErrorHandler) MethodNotAllowed(ctx *fasthttp.RequestCtx) {
	h.renderError(ctx, http.StatusMethodNotAllowed, "That action is not available on this page.")
}

func (h *ErrorHandler) renderError(ctx *fasthttp.RequestCtx, status int, message string) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	statusText := http.StatusText(status)
	page := h.page(stdCtx, ctx, statusText)
	h.render(ctx, status, "error.html", errorPage{
		Page:       page,
		StatusText: statusText,
		Message:    message,
	})
}
