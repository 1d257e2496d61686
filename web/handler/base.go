// Package handler contains the fasthttp page handlers. Pages render HTML
// from the view templates; form posts follow the redirect-after-post
// pattern with one-shot flash messages carried in the session.
package handler

import (
	"context"
	"encoding/json"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/frontend/domain"
	"github.com/fastygo/frontend/internal/middleware"
	"github.com/fastygo/frontend/internal/session"
	"github.com/fastygo/frontend/pkg/httpcontext"
	"github.com/fastygo/frontend/web/transport"
	"github.com/fastygo/frontend/web/view"
)

// Session value keys for one-shot flash messages.
const (
	flashKey      = "flash"
	flashErrorKey = "flash_error"
)

// Config carries the page-level switches every handler shares.
type Config struct {
	AppName    string
	CookieName string
	MockMode   bool
	DevTools   bool
	Assistant  bool
}

type baseHandler struct {
	cfg     Config
	adapter *httpcontext.Adapter
	store   session.Store
	logger  *zap.Logger
}

func newBaseHandler(cfg Config, adapter *httpcontext.Adapter, store session.Store, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{cfg: cfg, adapter: adapter, store: store, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

// page assembles the shared template fields and consumes any pending flash
// messages from the session.
func (h baseHandler) page(stdCtx context.Context, ctx *fasthttp.RequestCtx, title string) view.Page {
	p := view.Page{
		Title:     title,
		AppName:   h.cfg.AppName,
		MockMode:  h.cfg.MockMode,
		DevTools:  h.cfg.DevTools,
		Assistant: h.cfg.Assistant,
	}

	sess := middleware.SessionFrom(ctx)
	if sess == nil {
		return p
	}
	p.Authenticated = true
	p.Username = sess.User.Username

	p.Flash = sess.PopValue(flashKey)
	p.Error = sess.PopValue(flashErrorKey)
	if p.Flash != "" || p.Error != "" {
		if err := h.store.Save(stdCtx, sess); err != nil {
			h.logger.Warn("failed to consume flash", zap.Error(err))
		}
	}
	return p
}

func (h baseHandler) render(ctx *fasthttp.RequestCtx, status int, name string, data interface{}) {
	body, err := view.Render(name, data)
	if err != nil {
		h.logger.Error("template render failed", zap.String("template", name), zap.Error(err))
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.SetBodyString("internal error")
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("text/html; charset=utf-8")
	ctx.SetBody(body)
}

func (h baseHandler) redirect(ctx *fasthttp.RequestCtx, location string) {
	ctx.Redirect(location, fasthttp.StatusSeeOther)
}

// flash queues a success message for the next page the session renders.
func (h baseHandler) flash(stdCtx context.Context, sess *domain.Session, message string) {
	sess.SetValue(flashKey, message)
	if err := h.store.Save(stdCtx, sess); err != nil {
		h.logger.Warn("failed to save flash", zap.Error(err))
	}
}

func (h baseHandler) flashError(stdCtx context.Context, sess *domain.Session, message string) {
	sess.SetValue(flashErrorKey, message)
	if err := h.store.Save(stdCtx, sess); err != nil {
		h.logger.Warn("failed to save flash", zap.Error(err))
	}
}

func (h baseHandler) setSessionCookie(ctx *fasthttp.RequestCtx, sess *domain.Session) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)
	c.SetKey(h.cfg.CookieName)
	c.SetValue(sess.ID)
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	c.SetExpire(sess.ExpiresAt)
	ctx.Response.Header.SetCookie(c)
}

func (h baseHandler) clearSessionCookie(ctx *fasthttp.RequestCtx) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)
	c.SetKey(h.cfg.CookieName)
	c.SetValue("")
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	c.SetExpire(fasthttp.CookieExpireDelete)
	ctx.Response.Header.SetCookie(c)
}

// endSession drops the stored session and the cookie together.
func (h baseHandler) endSession(stdCtx context.Context, ctx *fasthttp.RequestCtx, sessionID string) {
	if sessionID != "" {
		if err := h.store.Delete(stdCtx, sessionID); err != nil {
			h.logger.Warn("failed to delete session", zap.Error(err))
		}
	}
	h.clearSessionCookie(ctx)
}

// authExpired handles the backend rejecting the session's token: the local
// session is stale, so end it and send the visitor back to login.
func (h baseHandler) authExpired(stdCtx context.Context, ctx *fasthttp.RequestCtx, sess *domain.Session, err error) bool {
	if !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
		return false
	}
	h.logger.Info("backend rejected session token", zap.String("user_id", sess.User.ID))
	h.endSession(stdCtx, ctx, sess.ID)
	h.redirect(ctx, "/login")
	return true
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func formValue(ctx *fasthttp.RequestCtx, key string) string {
	return string(ctx.PostArgs().Peek(key))
}
