package handler

import (
	"strings"
	"testing"
	"time"

	"github.com/fastygo/frontend/domain"
	"github.com/fastygo/frontend/internal/session"
	"github.com/fastygo/frontend/internal/testutil"
	taskUC "github.com/fastygo/frontend/usecase/task"
)

func newDashboardFixture(t *testing.T) (*DashboardHandler, *testutil.FakeBackend, *session.MemoryStore) {
	t.Helper()
	fake := testutil.NewFakeBackend()
	store := session.NewMemoryStore(time.Hour)
	return NewDashboardHandler(taskUC.New(fake, nil), testConfig(), nil, store, nil), fake, store
}

func TestDashboardShowsStatsAndRecent(t *testing.T) {
	h, fake, store := newDashboardFixture(t)
	sess := authedSession(t, store)

	fake.StatsResult = &domain.TaskStats{Total: 7, Pending: 3, InProgress: 2, Completed: 2}
	fake.Tasks = []domain.Task{
		{ID: "1", Title: "Ship the release", Status: domain.StatusInProgress, Priority: domain.PriorityHigh},
		{ID: "2", Title: "Write changelog", Status: domain.StatusPending, Priority: domain.PriorityLow},
	}

	ctx := newGetCtx("/dashboard")
	attachSession(ctx, sess)
	h.Show(ctx)

	body := pageBody(ctx)
	for _, want := range []string{
		"Welcome, <strong>tester</strong>!",
		`<span class="metric-value">7</span>`,
		"Ship the release",
		"Write changelog",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
	if fake.LastFilter.Limit != 5 {
		t.Errorf("recent tasks limit = %d, want 5", fake.LastFilter.Limit)
	}
}

func TestDashboardDegradesWhenBackendDown(t *testing.T) {
	h, fake, store := newDashboardFixture(t)
	sess := authedSession(t, store)

	fake.StatsErr = domain.ErrBackendUnavailable
	fake.ListErr = domain.ErrBackendUnavailable

	ctx := newGetCtx("/dashboard")
	attachSession(ctx, sess)
	h.Show(ctx)

	body := pageBody(ctx)
	if !strings.Contains(body, "cannot reach the backend service") {
		t.Error("outage banner not rendered")
	}
	// The page still renders with zeroed tiles rather than failing.
	if !strings.Contains(body, `<span class="metric-value">0</span>`) {
		t.Error("zeroed metrics not rendered")
	}
}

func TestDashboardExpiredTokenEndsSession(t *testing.T) {
	h, fake, store := newDashboardFixture(t)
	sess := authedSession(t, store)

	fake.StatsErr = domain.ErrUnauthorized
	fake.ListErr = domain.ErrUnauthorized

	ctx := newGetCtx("/dashboard")
	attachSession(ctx, sess)
	h.Show(ctx)

	if got := location(ctx); got != "/login" {
		t.Errorf("Location = %q, want /login", got)
	}
	if store.Len() != 0 {
		t.Errorf("stale session should be deleted, store has %d", store.Len())
	}
}

func TestDashboardEmptyState(t *testing.T) {
	h, _, store := newDashboardFixture(t)
	sess := authedSession(t, store)

	ctx := newGetCtx("/dashboard")
	attachSession(ctx, sess)
	h.Show(ctx)

	if !strings.Contains(pageBody(ctx), "No tasks yet. Create your first task!") {
		t.Error("empty-state message not rendered")
	}
}
