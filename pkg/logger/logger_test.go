package logger

import (
	"context"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewHonorsLevel(t *testing.T) {
	log, err := New(Config{Level: "debug", Encoding: "json"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if log == nil {
		t.Fatal("New returned a nil logger")
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level should be enabled when configured")
	}
}

func TestNewFallsBackToInfo(t *testing.T) {
	log, err := New(Config{Level: "chatty", Encoding: "console"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("unparseable level should fall back to info")
	}
	if !log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info level should stay enabled after fallback")
	}
}

func TestComponent(t *testing.T) {
	if got := Component(nil, "router"); got == nil {
		t.Fatal("Component(nil) should return a usable no-op logger")
	}

	base, err := New(Config{Level: "info"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	child := Component(base, "router")
	if child == nil {
		t.Fatal("Component returned nil for a real base logger")
	}
	if child == base {
		t.Error("Component should return a tagged child, not the base logger")
	}
}

func TestRequestIDRoundtrip(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-42")
	if got := RequestIDFromContext(ctx); got != "req-42" {
		t.Errorf("RequestIDFromContext = %q, want %q", got, "req-42")
	}

	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("bare context should carry no request ID, got %q", got)
	}
	if got := RequestIDFromContext(nil); got != "" {
		t.Errorf("nil context should yield an empty ID, got %q", got)
	}
}

func TestWithRequestID(t *testing.T) {
	base, err := New(Config{Level: "info"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got := WithRequestID(nil, base); got != base {
		t.Error("nil context should return the base logger unchanged")
	}
	if got := WithRequestID(context.Background(), nil); got != nil {
		t.Error("nil base logger should pass through")
	}
	if got := WithRequestID(context.Background(), base); got != base {
		t.Error("context without a request ID should return the base logger")
	}

	ctx := ContextWithRequestID(context.Background(), "req-42")
	if got := WithRequestID(ctx, base); got == base {
		t.Error("context with a request ID should produce an enriched logger")
	}
}
