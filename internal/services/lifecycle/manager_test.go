package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestShutdownRunsHooksInReverseOrder(t *testing.T) {
	m := New(time.Second, nil)

	var order []string
	for _, name := range []string{"store", "monitor", "server"} {
		name := name
		m.Register(name, func(ctx context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	if err := m.Shutdown(nil); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	want := []string{"server", "monitor", "store"}
	if len(order) != len(want) {
		t.Fatalf("ran %d hooks, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("hook %d = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestShutdownRunsOnce(t *testing.T) {
	m := New(time.Second, nil)

	calls := 0
	m.Register("server", func(ctx context.Context) error {
		calls++
		return nil
	})

	if err := m.Shutdown(context.Background()); err != nil {
		t.Fatalf("first Shutdown: %v", err)
	}
	if err := m.Shutdown(context.Background()); err != nil {
		t.Fatalf("second Shutdown: %v", err)
	}
	if calls != 1 {
		t.Errorf("hook ran %d times, want 1", calls)
	}
}

func TestShutdownJoinsErrors(t *testing.T) {
	m := New(time.Second, nil)

	errStore := errors.New("store close failed")
	errServer := errors.New("server close failed")
	monitorRan := false

	m.Register("store", func(ctx context.Context) error { return errStore })
	m.Register("monitor", func(ctx context.Context) error {
		monitorRan = true
		return nil
	})
	m.Register("server", func(ctx context.Context) error { return errServer })

	err := m.Shutdown(context.Background())
	if err == nil {
		t.Fatal("Shutdown should report hook failures")
	}
	if !errors.Is(err, errServer) {
		t.Errorf("joined error should include %v", errServer)
	}
	if !errors.Is(err, errStore) {
		t.Errorf("joined error should include %v", errStore)
	}
	if !monitorRan {
		t.Error("a failing hook must not stop the remaining hooks")
	}
}

func TestShutdownAppliesTimeout(t *testing.T) {
	m := New(30*time.Second, nil)

	var sawDeadline bool
	m.Register("server", func(ctx context.Context) error {
		_, sawDeadline = ctx.Deadline()
		return nil
	})

	if err := m.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if !sawDeadline {
		t.Error("hooks should run under the configured deadline")
	}
}

func TestRegisterIgnoresNilHook(t *testing.T) {
	m := New(time.Second, nil)
	m.Register("noop", nil)

	if err := m.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}

func TestListenNilCancel(t *testing.T) {
	m := New(time.Second, nil)
	m.Listen(nil)
}
