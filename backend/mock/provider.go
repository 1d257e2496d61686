// Package mock implements the backend service with canned in-memory records
// so the UI can be developed and demoed without the backend running. It is
// selected by the MOCK_MODE switch and mimics the live service closely
// enough that pages cannot tell the two apart: logins issue real
// HS256-signed tokens and task mutations persist for the process lifetime.
package mock

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fastygo/frontend/backend"
	"github.com/fastygo/frontend/domain"
)

// Canned demo identity, also used by the dev quick-login helper.
const (
	DemoUsername = "demo_user"
	DemoPassword = "demo1234"
	DemoUserID   = "12345"
	DemoEmail    = "demo@example.com"

	// DemoToken is the placeholder token the dev quick-login injects. The
	// provider accepts it alongside its own signed tokens.
	DemoToken = "mock_token_123456"
)

type account struct {
	user         domain.User
	passwordHash []byte
}

// Provider is a stateful in-memory stand-in for the live backend.
type Provider struct {
	mu       sync.RWMutex
	tasks    []domain.Task
	accounts map[string]account
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

// New seeds a provider with the demo user and the sample task set.
func New(secret string) *Provider {
	p := &Provider{
		accounts: make(map[string]account),
		secret:   []byte(secret),
		tokenTTL: 24 * time.Hour,
		now:      time.Now,
	}
	p.seed()
	return p
}

// DemoUser returns the canned identity dev tooling injects into a session.
func DemoUser() domain.User {
	return domain.User{
		ID:       DemoUserID,
		Username: DemoUsername,
		Email:    DemoEmail,
	}
}

func (p *Provider) seed() {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on oversized input; the constant is fine.
		panic(err)
	}
	p.accounts[DemoUsername] = account{user: DemoUser(), passwordHash: hash}

	now := p.now()
	p.tasks = []domain.Task{
		{
			ID:          "1",
			Title:       "Complete project documentation",
			Description: "Write comprehensive documentation for the task management system",
			Status:      domain.StatusInProgress,
			Priority:    domain.PriorityHigh,
			CreatedAt:   now.Add(-50 * time.Hour),
		},
		{
			ID:          "2",
			Title:       "Review code changes",
			Description: "Review pull requests from team members",
			Status:      domain.StatusPending,
			Priority:    domain.PriorityMedium,
			CreatedAt:   now.Add(-26 * time.Hour),
		},
		{
			ID:          "3",
			Title:       "Update dependencies",
			Description: "Update packages to latest stable versions",
			Status:      domain.StatusCompleted,
			Priority:    domain.PriorityLow,
			CreatedAt:   now.Add(-74 * time.Hour),
		},
		{
			ID:          "4",
			Title:       "Design new features",
			Description: "Create mockups for upcoming features",
			Status:      domain.StatusPending,
			Priority:    domain.PriorityHigh,
			CreatedAt:   now.Add(-8 * time.Hour),
		},
	}
}

func (p *Provider) Login(ctx context.Context, username, password string) (*backend.LoginResult, error) {
	username = strings.TrimSpace(username)

	p.mu.RLock()
	acct, ok := p.accounts[username]
	p.mu.RUnlock()

	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := p.issueToken(acct.user.ID)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "issue token", err)
	}
	return &backend.LoginResult{User: acct.user, Token: token}, nil
}

func (p *Provider) Register(ctx context.Context, username, email, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || email == "" || password == "" {
		return domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "hash password", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.accounts[username]; exists {
		return domain.ErrUserExists
	}
	p.accounts[username] = account{
		user: domain.User{
			ID:        uuid.NewString(),
			Username:  username,
			Email:     email,
			CreatedAt: p.now(),
		},
		passwordHash: hash,
	}
	return nil
}

func (p *Provider) List(ctx context.Context, token string, filter backend.TaskFilter) ([]domain.Task, error) {
	if _, err := p.verify(token); err != nil {
		return nil, err
	}

	p.mu.RLock()
	tasks := make([]domain.Task, 0, len(p.tasks))
	for _, task := range p.tasks {
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && task.Priority != filter.Priority {
			continue
		}
		tasks = append(tasks, task)
	}
	p.mu.RUnlock()

	// Newest first, matching the live backend's ordering.
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})

	if filter.Limit > 0 && len(tasks) > filter.Limit {
		tasks = tasks[:filter.Limit]
	}
	return tasks, nil
}

func (p *Provider) Create(ctx context.Context, token string, task *domain.Task) (*domain.Task, error) {
	if _, err := p.verify(token); err != nil {
		return nil, err
	}
	if task == nil || strings.TrimSpace(task.Title) == "" {
		return nil, domain.ErrInvalidInput
	}

	created := *task
	created.ID = uuid.NewString()
	if created.Status == "" {
		created.Status = domain.StatusPending
	}
	if created.Priority == "" {
		created.Priority = domain.PriorityMedium
	}
	created.CreatedAt = p.now()
	created.UpdatedAt = created.CreatedAt

	p.mu.Lock()
	p.tasks = append(p.tasks, created)
	p.mu.Unlock()

	result := created
	return &result, nil
}

func (p *Provider) Update(ctx context.Context, token string, task *domain.Task) (*domain.Task, error) {
	if _, err := p.verify(token); err != nil {
		return nil, err
	}
	if task == nil || task.ID == "" {
		return nil, domain.ErrInvalidInput
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.tasks {
		if p.tasks[i].ID != task.ID {
			continue
		}
		p.tasks[i].Title = task.Title
		p.tasks[i].Description = task.Description
		if task.Status != "" {
			p.tasks[i].Status = task.Status
		}
		if task.Priority != "" {
			p.tasks[i].Priority = task.Priority
		}
		p.tasks[i].UpdatedAt = p.now()
		updated := p.tasks[i]
		return &updated, nil
	}
	return nil, domain.ErrTaskNotFound
}

func (p *Provider) Delete(ctx context.Context, token, id string) error {
	if _, err := p.verify(token); err != nil {
		return err
	}
	if id == "" {
		return domain.ErrInvalidInput
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.tasks {
		if p.tasks[i].ID == id {
			p.tasks = append(p.tasks[:i], p.tasks[i+1:]...)
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (p *Provider) Stats(ctx context.Context, token string) (*domain.TaskStats, error) {
	if _, err := p.verify(token); err != nil {
		return nil, err
	}

	p.mu.RLock()
	stats := domain.ComputeTaskStats(p.tasks)
	p.mu.RUnlock()
	return &stats, nil
}

// Ping always succeeds: mock mode has no upstream to lose.
func (p *Provider) Ping(ctx context.Context) error {
	return nil
}

var _ backend.Service = (*Provider)(nil)
