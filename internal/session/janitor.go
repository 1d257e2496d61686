package session

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Janitor periodically sweeps expired sessions out of a Sweeper store.
type Janitor struct {
	store    Sweeper
	logger   *zap.Logger
	cron     *cron.Cron
	interval time.Duration
}

// NewJanitor schedules a sweep every interval. A non-positive interval
// defaults to one minute.
func NewJanitor(store Sweeper, interval time.Duration, logger *zap.Logger) *Janitor {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	j := &Janitor{
		store:    store,
		logger:   logger,
		cron:     cron.New(cron.WithSeconds()),
		interval: interval,
	}

	schedule := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	_, _ = j.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()

		removed, err := j.store.Sweep(ctx)
		if err != nil {
			j.logger.Error("session sweep failed", zap.Error(err))
			return
		}
		if removed > 0 {
			j.logger.Debug("swept expired sessions", zap.Int("removed", removed))
		}
	})

	return j
}

// Start launches the sweep scheduler.
func (j *Janitor) Start() {
	if j == nil || j.cron == nil {
		return
	}
	j.cron.Start()
	j.logger.Info("session janitor started", zap.Duration("interval", j.interval))
}

// Stop waits for an in-flight sweep to finish or the context to expire.
func (j *Janitor) Stop(ctx context.Context) {
	if j == nil || j.cron == nil {
		return
	}
	stopCtx := j.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	j.logger.Info("session janitor stopped")
}
