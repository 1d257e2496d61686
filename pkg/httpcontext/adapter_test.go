package httpcontext

import (
	"testing"
	"time"

	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/frontend/pkg/logger"
)

func newRequestCtx(requestID string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.SetRequestURI("http://localhost/")
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	return ctx
}

func TestAttachEchoesRequestID(t *testing.T) {
	adapter := NewAdapter(time.Second)
	ctx := newRequestCtx("req-abc")

	stdCtx, cancel := adapter.Attach(ctx)
	defer cancel()

	if got := appLogger.RequestIDFromContext(stdCtx); got != "req-abc" {
		t.Errorf("context request ID = %q, want the inbound header", got)
	}
	if got := string(ctx.Response.Header.Peek("X-Request-ID")); got != "req-abc" {
		t.Errorf("response header = %q, want echoed ID", got)
	}
}

func TestAttachGeneratesRequestID(t *testing.T) {
	adapter := NewAdapter(time.Second)
	ctx := newRequestCtx("")

	stdCtx, cancel := adapter.Attach(ctx)
	defer cancel()

	generated := appLogger.RequestIDFromContext(stdCtx)
	if generated == "" {
		t.Fatal("a request ID should be generated when none is sent")
	}
	if got := string(ctx.Response.Header.Peek("X-Request-ID")); got != generated {
		t.Errorf("response header = %q, want %q", got, generated)
	}
}

func TestAttachSetsDeadline(t *testing.T) {
	adapter := NewAdapter(30 * time.Second)
	ctx := newRequestCtx("")

	stdCtx, cancel := adapter.Attach(ctx)
	defer cancel()

	deadline, ok := stdCtx.Deadline()
	if !ok {
		t.Fatal("attached context should carry a deadline")
	}
	if remaining := time.Until(deadline); remaining <= 0 || remaining > 30*time.Second {
		t.Errorf("deadline %v out of range", remaining)
	}
}

func TestNewAdapterDefaultTimeout(t *testing.T) {
	adapter := NewAdapter(0)
	ctx := newRequestCtx("")

	stdCtx, cancel := adapter.Attach(ctx)
	defer cancel()

	if _, ok := stdCtx.Deadline(); !ok {
		t.Error("zero timeout should fall back to a default deadline")
	}
}
