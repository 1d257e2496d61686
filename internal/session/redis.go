package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/frontend/domain"
)

// RedisStore persists sessions in Redis as JSON values with a server-side
// TTL, so expiry needs no sweeping of our own.
type RedisStore struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redislib.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{
		client: client,
		prefix: "webui:session:",
		ttl:    ttl,
	}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	result, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(result), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisStore) Save(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidInput
	}

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	if session.ExpiresAt.Before(session.CreatedAt) {
		session.ExpiresAt = session.CreatedAt.Add(s.ttl)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		ttl = s.ttl
	}

	return s.client.Set(ctx, s.key(session.ID), payload, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

func (s *RedisStore) Extend(ctx context.Context, id string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.ttl
	}
	ok, err := s.client.Expire(ctx, s.key(id), ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (s *RedisStore) key(id string) string {
	return fmt.Sprintf("%s%s", s.prefix, id)
}

var _ Store = (*RedisStore)(nil)
