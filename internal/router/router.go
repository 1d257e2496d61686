package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	webHandler "github.com/fastygo/frontend/web/handler"
	"github.com/fastygo/frontend/web/view"
)

type Handlers struct {
	Home      *webHandler.HomeHandler
	Auth      *webHandler.AuthHandler
	Dashboard *webHandler.DashboardHandler
	Task      *webHandler.TaskHandler
	Assistant *webHandler.AssistantHandler
	Dev       *webHandler.DevHandler
	Health    *webHandler.HealthHandler
	Error     *webHandler.ErrorHandler
}

// Middleware bundles the two session layers: load resolves a session when
// present, auth additionally redirects anonymous visitors to login.
type Middleware struct {
	Load func(fasthttp.RequestHandler) fasthttp.RequestHandler
	Auth func(fasthttp.RequestHandler) fasthttp.RequestHandler
}

func New(handlers Handlers, mw Middleware) *router.Router {
	r := router.New()

	r.GET("/healthz", handlers.Health.Check)
	r.GET("/static/styles.css", serveStyles)

	// Public pages
	r.GET("/", mw.Load(handlers.Home.Index))
	r.GET("/login", mw.Load(handlers.Auth.LoginForm))
	r.POST("/login", mw.Load(handlers.Auth.Login))
	r.GET("/register", mw.Load(handlers.Auth.RegisterForm))
	r.POST("/register", mw.Load(handlers.Auth.Register))
	r.POST("/logout", mw.Load(handlers.Auth.Logout))

	// Protected pages
	r.GET("/dashboard", mw.Auth(handlers.Dashboard.Show))
	r.GET("/tasks", mw.Auth(handlers.Task.List))
	r.POST("/tasks", mw.Auth(handlers.Task.Create))
	r.POST("/tasks/{id}/update", mw.Auth(handlers.Task.Update))
	r.POST("/tasks/{id}/delete", mw.Auth(handlers.Task.Delete))

	if handlers.Assistant != nil {
		r.GET("/assistant", mw.Auth(handlers.Assistant.Show))
		r.POST("/assistant/message", mw.Auth(handlers.Assistant.Send))
		r.POST("/assistant/clear", mw.Auth(handlers.Assistant.Clear))
	}

	if handlers.Dev != nil {
		r.GET("/debug/session", mw.Load(handlers.Dev.SessionDump))
		r.POST("/debug/mock-login", mw.Load(handlers.Dev.MockLogin))
	}

	if handlers.Error != nil {
		r.NotFound = mw.Load(handlers.Error.NotFound)
		r.MethodNotAllowed = mw.Load(handlers.Error.MethodNotAllowed)
	}

	return r
}

func serveStyles(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/css; charset=utf-8")
	ctx.Response.Header.Set("Cache-Control", "public, max-age=3600")
	ctx.SetBody(view.Styles())
}
