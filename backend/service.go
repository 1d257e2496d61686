// Package backend defines the contract pages use to talk to the
// task-management backend. Two implementations exist: rest, which issues
// live HTTP calls against a configured base URL, and mock, which serves
// canned records so the UI can be exercised without the backend running.
package backend

import (
	"context"

	"github.com/fastygo/frontend/domain"
)

// TaskFilter narrows List results. Zero values mean "no constraint".
type TaskFilter struct {
	Status   domain.TaskStatus
	Priority domain.TaskPriority
	Limit    int
}

// LoginResult carries the authenticated user and the bearer token the
// backend issued for subsequent calls.
type LoginResult struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// AuthService covers the authentication operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Register(ctx context.Context, username, email, password string) error
}

// TaskService covers the task CRUD operations. Every call carries the
// bearer token held by the caller's session.
type TaskService interface {
	List(ctx context.Context, token string, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, token string, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, token string, task *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, token, id string) error
	Stats(ctx context.Context, token string) (*domain.TaskStats, error)
}

// Pinger reports whether the backend is reachable at all.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Service bundles everything one backend implementation provides.
type Service interface {
	AuthService
	TaskService
	Pinger
}
