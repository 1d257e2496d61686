// Package task wraps the backend task operations with the small amount of
// policy the pages share: input defaults, validation, and the stats
// fallback.
package task

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/frontend/backend"
	"github.com/fastygo/frontend/domain"
)

type UseCase struct {
	provider backend.TaskService
	logger   *zap.Logger
}

func New(provider backend.TaskService, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		provider: provider,
		logger:   logger,
	}
}

func (uc *UseCase) List(ctx context.Context, token string, filter backend.TaskFilter) ([]domain.Task, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "unknown status filter")
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "unknown priority filter")
	}
	return uc.provider.List(ctx, token, filter)
}

// Create builds a task from form input. Status defaults to pending and
// priority to medium when left blank.
func (uc *UseCase) Create(ctx context.Context, token, title, description string, status domain.TaskStatus, priority domain.TaskPriority) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "task title is required")
	}
	if status == "" {
		status = domain.StatusPending
	}
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !status.Valid() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "unknown status")
	}
	if !priority.Valid() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "unknown priority")
	}

	return uc.provider.Create(ctx, token, &domain.Task{
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      status,
		Priority:    priority,
	})
}

func (uc *UseCase) Update(ctx context.Context, token string, task *domain.Task) (*domain.Task, error) {
	if task == nil || task.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "task title is required")
	}
	if task.Status != "" && !task.Status.Valid() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "unknown status")
	}
	if task.Priority != "" && !task.Priority.Valid() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "unknown priority")
	}
	return uc.provider.Update(ctx, token, task)
}

func (uc *UseCase) Delete(ctx context.Context, token, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.provider.Delete(ctx, token, id)
}

// Stats fetches the aggregate counters. When the stats endpoint fails the
// counters are recomputed from the task list so the dashboard still renders.
func (uc *UseCase) Stats(ctx context.Context, token string) (*domain.TaskStats, error) {
	stats, err := uc.provider.Stats(ctx, token)
	if err == nil {
		return stats, nil
	}

	uc.logger.Warn("stats endpoint failed, recomputing from task list", zap.Error(err))
	tasks, listErr := uc.provider.List(ctx, token, backend.TaskFilter{})
	if listErr != nil {
		return nil, err
	}
	computed := domain.ComputeTaskStats(tasks)
	return &computed, nil
}
