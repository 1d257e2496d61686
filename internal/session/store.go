// Package session keeps server-side login state keyed by the ID carried in
// the browser cookie. Two stores implement the same interface: an in-memory
// map for single-process deployments and a Redis store for anything that
// needs to survive restarts or run behind more than one replica.
package session

import (
	"context"
	"time"

	"github.com/fastygo/frontend/domain"
)

// Store persists sessions between requests. Extend pushes a live session's
// expiry to now+ttl (the store's default when ttl is non-positive) and
// reports ErrSessionNotFound for sessions that are missing or expired.
type Store interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
	Extend(ctx context.Context, id string, ttl time.Duration) error
}

// Sweeper is implemented by stores that hold sessions in process memory and
// need periodic expiry collection. Redis handles its own TTLs.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}
