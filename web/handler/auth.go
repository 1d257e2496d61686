package handler

import (
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/frontend/domain"
	"github.com/fastygo/frontend/internal/middleware"
	"github.com/fastygo/frontend/internal/session"
	"github.com/fastygo/frontend/pkg/httpcontext"
	authUC "github.com/fastygo/frontend/usecase/auth"
	"github.com/fastygo/frontend/web/view"
)

type AuthHandler struct {
	baseHandler
	uc *authUC.UseCase
}

func NewAuthHandler(uc *authUC.UseCase, cfg Config, adapter *httpcontext.Adapter, store session.Store, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(cfg, adapter, store, logger),
		uc:          uc,
	}
}

type loginPage struct {
	view.Page
	FormUsername string
}

type registerPage struct {
	view.Page
	FormUsername string
	FormEmail    string
}

// LoginForm renders the login page. Visitors who are already logged in see
// a shortcut to the dashboard instead of the form.
func (h *AuthHandler) LoginForm(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.render(ctx, http.StatusOK, "login.html", loginPage{Page: h.page(stdCtx, ctx, "Login")})
}

// Login handles the form submit. Failures re-render the form with the
// entered username so only the password has to be retyped.
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	username := strings.TrimSpace(formValue(ctx, "username"))
	password := formValue(ctx, "password")

	renderError := func(message string) {
		page := h.page(stdCtx, ctx, "Login")
		page.Error = message
		h.render(ctx, http.StatusOK, "login.html", loginPage{Page: page, FormUsername: username})
	}

	if username == "" || password == "" {
		renderError("Please enter both username and password")
		return
	}

	sess, err := h.uc.Login(stdCtx, username, password)
	if err != nil {
		renderError(domain.UserMessage(err))
		return
	}

	h.flash(stdCtx, sess, "Login successful!")
	h.setSessionCookie(ctx, sess)
	h.redirect(ctx, "/dashboard")
}

// RegisterForm renders the registration page.
func (h *AuthHandler) RegisterForm(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.render(ctx, http.StatusOK, "register.html", registerPage{Page: h.page(stdCtx, ctx, "Register")})
}

// Register validates the form and creates the account. Success renders the
// page again with a prompt to log in; no session is created here.
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	username := strings.TrimSpace(formValue(ctx, "username"))
	email := strings.TrimSpace(formValue(ctx, "email"))
	password := formValue(ctx, "password")
	confirm := formValue(ctx, "password_confirm")

	renderPage := func(message, flash string) {
		page := h.page(stdCtx, ctx, "Register")
		page.Error = message
		page.Flash = flash
		h.render(ctx, http.StatusOK, "register.html", registerPage{
			Page:         page,
			FormUsername: username,
			FormEmail:    email,
		})
	}

	switch {
	case username == "" || email == "" || password == "" || confirm == "":
		renderPage("Please fill in all fields", "")
		return
	case password != confirm:
		renderPage("Passwords do not match", "")
		return
	case len(password) < 6:
		renderPage("Password must be at least 6 characters long", "")
		return
	}

	if err := h.uc.Register(stdCtx, username, email, password); err != nil {
		renderPage(domain.UserMessage(err), "")
		return
	}
	renderPage("", "Registration successful! Please login.")
}

// Logout ends the session and returns to the landing page.
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if sess := middleware.SessionFrom(ctx); sess != nil {
		if err := h.uc.Logout(stdCtx, sess.ID); err != nil {
			h.logger.Warn("logout failed", zap.Error(err))
		}
	}
	h.clearSessionCookie(ctx)
	h.redirect(ctx, "/")
}
