// Package monitor polls the app's upstreams in the background and keeps a
// snapshot the health endpoint and pages read without blocking on network
// calls.
package monitor

import (
	"context"
	"sync"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fastygo/frontend/assistant"
	"github.com/fastygo/frontend/backend"
)

type Monitor struct {
	backend backend.Pinger
	redis   *redislib.Client
	history *assistant.HistoryStore

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	logger   *zap.Logger
}

// New builds a monitor for the configured dependencies. Redis and the
// history store may be nil when the deployment does not use them.
func New(bk backend.Pinger, redis *redislib.Client, history *assistant.HistoryStore, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		backend:  bk,
		redis:    redis,
		history:  history,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

// Online reports whether the backend answered the last health probe.
func (m *Monitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Backend
}

// Healthy reports whether every configured dependency answered.
func (m *Monitor) Healthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Backend && m.status.Redis && m.status.History
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	historyOK, conversations := m.checkHistory()
	status := Status{
		Backend:       m.checkBackend(),
		Redis:         m.checkRedis(),
		History:       historyOK,
		Conversations: conversations,
		LastCheck:     time.Now(),
	}

	m.mu.Lock()
	changed := status.Backend != m.status.Backend
	m.status = status
	m.mu.Unlock()

	if changed {
		if status.Backend {
			m.logger.Info("backend reachable")
		} else {
			m.logger.Warn("backend unreachable")
		}
	}
}

func (m *Monitor) checkBackend() bool {
	if m.backend == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return m.backend.Ping(ctx) == nil
}

func (m *Monitor) checkRedis() bool {
	if m.redis == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return m.redis.Ping(ctx).Err() == nil
}

func (m *Monitor) checkHistory() (bool, int) {
	if m.history == nil {
		return true, 0
	}
	count, err := m.history.Sessions()
	if err != nil {
		m.logger.Warn("history check failed", zap.Error(err))
		return false, count
	}
	return true, count
}
