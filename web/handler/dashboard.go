package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/frontend/backend"
	"github.com/fastygo/frontend/domain"
	"github.com/fastygo/frontend/internal/middleware"
	"github.com/fastygo/frontend/internal/session"
	"github.com/fastygo/frontend/pkg/httpcontext"
	taskUC "github.com/fastygo/frontend/usecase/task"
	"github.com/fastygo/frontend/web/view"
)

const recentTaskCount = 5

type DashboardHandler struct {
	baseHandler
	tasks *taskUC.UseCase
}

func NewDashboardHandler(tasks *taskUC.UseCase, cfg Config, adapter *httpcontext.Adapter, store session.Store, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		baseHandler: newBaseHandler(cfg, adapter, store, logger),
		tasks:       tasks,
	}
}

type dashboardPage struct {
	view.Page
	Stats  domain.TaskStats
	Recent []domain.Task
}

// Show renders the metric tiles and the most recent tasks. A backend outage
// degrades to zeroed metrics with an error banner rather than failing the
// page.
func (h *DashboardHandler) Show(ctx *fasthttp.RequestCtx) {
	sess := middleware.SessionFrom(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	page := h.page(stdCtx, ctx, "Dashboard")
	data := dashboardPage{Page: page}

	stats, err := h.tasks.Stats(stdCtx, sess.Token)
	if err != nil {
		if h.authExpired(stdCtx, ctx, sess, err) {
			return
		}
		data.Error = domain.UserMessage(err)
		h.render(ctx, http.StatusOK, "dashboard.html", data)
		return
	}
	data.Stats = *stats

	recent, err := h.tasks.List(stdCtx, sess.Token, backend.TaskFilter{Limit: recentTaskCount})
	if err != nil {
		if h.authExpired(stdCtx, ctx, sess, err) {
			return
		}
		data.Error = domain.UserMessage(err)
	}
	data.Recent = recent

	h.render(ctx, http.StatusOK, "dashboard.html", data)
}
