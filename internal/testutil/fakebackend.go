// Package testutil provides shared fakes for tests.
package testutil

import (
	"context"
	"strconv"
	"sync"

	"github.com/fastygo/frontend/backend"
	"github.com/fastygo/frontend/domain"
)

// FakeBackend is an in-memory backend.Service for tests. It records every
// call and supports per-operation error injection, in the spirit of a
// hand-rolled test double rather than a mocking framework.
type FakeBackend struct {
	mu sync.Mutex

	// Canned results.
	User        domain.User
	Token       string
	Tasks       []domain.Task
	StatsResult *domain.TaskStats

	// Error injection.
	LoginErr    error
	RegisterErr error
	ListErr     error
	CreateErr   error
	UpdateErr   error
	DeleteErr   error
	StatsErr    error
	PingErr     error

	// Call counters.
	LoginCalls    int
	RegisterCalls int
	ListCalls     int
	CreateCalls   int
	UpdateCalls   int
	DeleteCalls   int
	StatsCalls    int
	PingCalls     int

	// Recorded inputs.
	Created    []domain.Task
	Updated    []domain.Task
	Deleted    []string
	Registered []string
	LastToken  string
	LastFilter backend.TaskFilter

	nextID int
}

// NewFakeBackend returns a fake with a canned user and token.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		User:  domain.User{ID: "u-1", Username: "tester", Email: "tester@example.com"},
		Token: "token-1",
	}
}

// DataCalls counts every operation that would hit the backend, so tests can
// assert a page performed no data calls at all.
func (f *FakeBackend) DataCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.LoginCalls + f.RegisterCalls + f.ListCalls +
		f.CreateCalls + f.UpdateCalls + f.DeleteCalls + f.StatsCalls
}

func (f *FakeBackend) Login(ctx context.Context, username, password string) (*backend.LoginResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return &backend.LoginResult{User: f.User, Token: f.Token}, nil
}

func (f *FakeBackend) Register(ctx context.Context, username, email, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RegisterCalls++
	if f.RegisterErr != nil {
		return f.RegisterErr
	}
	f.Registered = append(f.Registered, username)
	return nil
}

func (f *FakeBackend) List(ctx context.Context, token string, filter backend.TaskFilter) ([]domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	f.LastToken = token
	f.LastFilter = filter
	if f.ListErr != nil {
		return nil, f.ListErr
	}

	tasks := make([]domain.Task, 0, len(f.Tasks))
	for _, task := range f.Tasks {
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && task.Priority != filter.Priority {
			continue
		}
		tasks = append(tasks, task)
	}
	if filter.Limit > 0 && len(tasks) > filter.Limit {
		tasks = tasks[:filter.Limit]
	}
	return tasks, nil
}

func (f *FakeBackend) Create(ctx context.Context, token string, task *domain.Task) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	f.LastToken = token
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}

	created := *task
	f.nextID++
	created.ID = "task-" + strconv.Itoa(f.nextID)
	f.Created = append(f.Created, created)
	f.Tasks = append(f.Tasks, created)
	result := created
	return &result, nil
}

func (f *FakeBackend) Update(ctx context.Context, token string, task *domain.Task) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++
	f.LastToken = token
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}

	f.Updated = append(f.Updated, *task)
	for i := range f.Tasks {
		if f.Tasks[i].ID == task.ID {
			f.Tasks[i] = *task
			result := *task
			return &result, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (f *FakeBackend) Delete(ctx context.Context, token, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	f.LastToken = token
	if f.DeleteErr != nil {
		return f.DeleteErr
	}

	f.Deleted = append(f.Deleted, id)
	for i := range f.Tasks {
		if f.Tasks[i].ID == id {
			f.Tasks = append(f.Tasks[:i], f.Tasks[i+1:]...)
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (f *FakeBackend) Stats(ctx context.Context, token string) (*domain.TaskStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.StatsCalls++
	f.LastToken = token
	if f.StatsErr != nil {
		return nil, f.StatsErr
	}

	if f.StatsResult != nil {
		stats := *f.StatsResult
		return &stats, nil
	}
	stats := domain.ComputeTaskStats(f.Tasks)
	return &stats, nil
}

func (f *FakeBackend) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PingCalls++
	return f.PingErr
}

var _ backend.Service = (*FakeBackend)(nil)
