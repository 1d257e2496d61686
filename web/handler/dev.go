package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/frontend/backend/mock"
	"github.com/fastygo/frontend/internal/middleware"
	"github.com/fastygo/frontend/internal/session"
	"github.com/fastygo/frontend/pkg/httpcontext"
	authUC "github.com/fastygo/frontend/usecase/auth"
	"github.com/fastygo/frontend/web/view"
)

// DevHandler serves the development-only helpers. Its routes are only
// registered when DEV_TOOLS is on, so production builds never expose them.
type DevHandler struct {
	baseHandler
	auth *authUC.UseCase
}

func NewDevHandler(auth *authUC.UseCase, cfg Config, adapter *httpcontext.Adapter, store session.Store, logger *zap.Logger) *DevHandler {
	return &DevHandler{
		baseHandler: newBaseHandler(cfg, adapter, store, logger),
		auth:        auth,
	}
}

type debugSessionPage struct {
	view.Page
	SessionJSON string
}

// SessionDump renders the current session verbatim, token included. It is
// the equivalent of dumping the session state while debugging.
func (h *DevHandler) SessionDump(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	data := debugSessionPage{Page: h.page(stdCtx, ctx, "Session Debug")}

	if sess := middleware.SessionFrom(ctx); sess != nil {
		dump, err := json.MarshalIndent(sess, "", "  ")
		if err != nil {
			h.logger.Error("session dump failed", zap.Error(err))
		} else {
			data.SessionJSON = string(dump)
		}
	}

	h.render(ctx, http.StatusOK, "debug_session.html", data)
}

// MockLogin signs the visitor in as the demo user without touching the
// backend, mirroring the one-click login used during UI work.
func (h *DevHandler) MockLogin(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if middleware.SessionFrom(ctx) != nil {
		h.redirect(ctx, "/dashboard")
		return
	}

	sess, err := h.auth.CreateSession(stdCtx, mock.DemoUser(), mock.DemoToken)
	if err != nil {
		h.logger.Error("mock login failed", zap.Error(err))
		h.redirect(ctx, "/login")
		return
	}

	h.flash(stdCtx, sess, "Logged in as "+mock.DemoUsername+"!")
	h.setSessionCookie(ctx, sess)
	h.redirect(ctx, "/dashboard")
}
