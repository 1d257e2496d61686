package handler

import (
	"context"
	"net/http"
	"sort"
	"strings"

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

const defaultSort = "created_date"

type TaskHandler struct {
	baseHandler
	tasks *taskUC.UseCase
}

func NewTaskHandler(tasks *taskUC.UseCase, cfg Config, adapter *httpcontext.Adapter, store session.Store, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(cfg, adapter, store, logger),
		tasks:       tasks,
	}
}

type tasksPage struct {
	view.Page
	Tasks      []domain.Task
	Count      int
	Status     domain.TaskStatus
	Priority   domain.TaskPriority
	Sort       string
	Statuses   []domain.TaskStatus
	Priorities []domain.TaskPriority

	FormTitle       string
	FormDescription string
	FormStatus      domain.TaskStatus
	FormPriority    domain.TaskPriority
}

// List renders the task overview with the status and priority filters
// applied backend-side and the chosen sort applied here.
func (h *TaskHandler) List(ctx *fasthttp.RequestCtx) {
	sess := middleware.SessionFrom(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	status := domain.TaskStatus(ctx.QueryArgs().Peek("status"))
	priority := domain.TaskPriority(ctx.QueryArgs().Peek("priority"))
	sortKey := string(ctx.QueryArgs().Peek("sort"))

	data, ok := h.loadPage(stdCtx, ctx, sess, status, priority, sortKey)
	if !ok {
		return
	}
	h.render(ctx, http.StatusOK, "tasks.html", data)
}

// Create handles the new-task form. Validation failures re-render the page
// with the entered values; success redirects so a refresh cannot double
// submit.
func (h *TaskHandler) Create(ctx *fasthttp.RequestCtx) {
	sess := middleware.SessionFrom(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	title := formValue(ctx, "title")
	description := formValue(ctx, "description")
	status := domain.TaskStatus(formValue(ctx, "status"))
	priority := domain.TaskPriority(formValue(ctx, "priority"))

	_, err := h.tasks.Create(stdCtx, sess.Token, title, description, status, priority)
	if err != nil {
		if h.authExpired(stdCtx, ctx, sess, err) {
			return
		}
		data, ok := h.loadPage(stdCtx, ctx, sess, "", "", defaultSort)
		if !ok {
			return
		}
		data.Error = domain.UserMessage(err)
		data.FormTitle = title
		data.FormDescription = description
		data.FormStatus = status
		data.FormPriority = priority
		h.render(ctx, http.StatusOK, "tasks.html", data)
		return
	}

	h.flash(stdCtx, sess, h.withMockSuffix("Task created successfully!"))
	h.redirect(ctx, "/tasks")
}

// Update applies the per-task edit form.
func (h *TaskHandler) Update(ctx *fasthttp.RequestCtx) {
	sess := middleware.SessionFrom(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, _ := ctx.UserValue("id").(string)
	task := &domain.Task{
		ID:          id,
		Title:       formValue(ctx, "title"),
		Description: strings.TrimSpace(formValue(ctx, "description")),
		Status:      domain.TaskStatus(formValue(ctx, "status")),
		Priority:    domain.TaskPriority(formValue(ctx, "priority")),
	}

	if _, err := h.tasks.Update(stdCtx, sess.Token, task); err != nil {
		if h.authExpired(stdCtx, ctx, sess, err) {
			return
		}
		h.flashError(stdCtx, sess, domain.UserMessage(err))
	} else {
		h.flash(stdCtx, sess, h.withMockSuffix("Task updated successfully!"))
	}
	h.redirect(ctx, "/tasks")
}

// Delete removes a task.
func (h *TaskHandler) Delete(ctx *fasthttp.RequestCtx) {
	sess := middleware.SessionFrom(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, _ := ctx.UserValue("id").(string)
	if err := h.tasks.Delete(stdCtx, sess.Token, id); err != nil {
		if h.authExpired(stdCtx, ctx, sess, err) {
			return
		}
		h.flashError(stdCtx, sess, domain.UserMessage(err))
	} else {
		h.flash(stdCtx, sess, h.withMockSuffix("Task deleted successfully!"))
	}
	h.redirect(ctx, "/tasks")
}

// loadPage fetches the filtered task list and assembles the page data. It
// reports false when it already wrote a response (auth expiry redirect).
func (h *TaskHandler) loadPage(stdCtx context.Context, ctx *fasthttp.RequestCtx, sess *domain.Session, status domain.TaskStatus, priority domain.TaskPriority, sortKey string) (tasksPage, bool) {
	if sortKey == "" {
		sortKey = defaultSort
	}

	data := tasksPage{
		Page:         h.page(stdCtx, ctx, "Tasks"),
		Status:       status,
		Priority:     priority,
		Sort:         sortKey,
		Statuses:     domain.TaskStatuses(),
		Priorities:   domain.TaskPriorities(),
		FormStatus:   domain.StatusPending,
		FormPriority: domain.PriorityMedium,
	}

	tasks, err := h.tasks.List(stdCtx, sess.Token, backend.TaskFilter{Status: status, Priority: priority})
	if err != nil {
		if h.authExpired(stdCtx, ctx, sess, err) {
			return data, false
		}
		data.Error = domain.UserMessage(err)
		return data, true
	}

	sortTasks(tasks, sortKey)
	data.Tasks = tasks
	data.Count = len(tasks)
	return data, true
}

func (h *TaskHandler) withMockSuffix(message string) string {
	if h.cfg.MockMode {
		return message + " (Mock Mode)"
	}
	return message
}

func sortTasks(tasks []domain.Task, key string) {
	switch key {
	case "priority":
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Priority.Rank() < tasks[j].Priority.Rank()
		})
	case "status":
		sort.SliceStable(tasks, func(i, j int) bool {
			return statusOrder(tasks[i].Status) < statusOrder(tasks[j].Status)
		})
	default:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	}
}

func statusOrder(s domain.TaskStatus) int {
	for i, v := range domain.TaskStatuses() {
		if v == s {
			return i
		}
	}
	return len(domain.TaskStatuses())
}
