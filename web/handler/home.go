package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/frontend/internal/session"
	"github.com/fastygo/frontend/pkg/httpcontext"
)

type HomeHandler struct {
	baseHandler
}

func NewHomeHandler(cfg Config, adapter *httpcontext.Adapter, store session.Store, logger *zap.Logger) *HomeHandler {
	return &HomeHandler{baseHandler: newBaseHandler(cfg, adapter, store, logger)}
}

// Index is the landing page. It greets logged-in visitors and points
// everyone else at login and registration.
func (h *HomeHandler) Index(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.render(ctx, http.StatusOK, "home.html", h.page(stdCtx, ctx, "Home"))
}
