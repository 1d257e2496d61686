package session

import (
	"context"
	"sync"
	"time"

	"github.com/fastygo/frontend/domain"
)

// MemoryStore is a thread-safe in-memory session store. Expired entries are
// dropped lazily on read and collected by the janitor sweep.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore creates an empty store with the given default TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemoryStore{
		sessions: make(map[string]*domain.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if sess.IsExpired(s.now()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}
	return cloneSession(sess), nil
}

func (s *MemoryStore) Save(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidInput
	}

	if session.CreatedAt.IsZero() {
		session.CreatedAt = s.now()
	}
	if session.ExpiresAt.Before(session.CreatedAt) {
		session.ExpiresAt = session.CreatedAt.Add(s.ttl)
	}

	s.mu.Lock()
	s.sessions[session.ID] = cloneSession(session)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Extend(ctx context.Context, id string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.ttl
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	// An expired entry the janitor has not collected yet is already dead;
	// extending it would resurrect the session.
	if sess.IsExpired(s.now()) {
		delete(s.sessions, id)
		return domain.ErrSessionNotFound
	}
	sess.ExpiresAt = s.now().Add(ttl)
	return nil
}

// Sweep removes every expired session and reports how many were collected.
func (s *MemoryStore) Sweep(ctx context.Context) (int, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.IsExpired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of live entries, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// cloneSession keeps callers from sharing the stored Values map across
// concurrent requests.
func cloneSession(sess *domain.Session) *domain.Session {
	copied := *sess
	if sess.Values != nil {
		copied.Values = make(map[string]string, len(sess.Values))
		for k, v := range sess.Values {
			copied.Values[k] = v
		}
	}
	return &copied
}

var (
	_ Store   = (*MemoryStore)(nil)
	_ Sweeper = (*MemoryStore)(nil)
)
