package handler

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/frontend/domain"
	"github.com/fastygo/frontend/internal/middleware"
	"github.com/fastygo/frontend/internal/session"
)

const testCookieName = "fastygo_session"

func testConfig() Config {
	return Config{
		AppName:    "Task Management",
		CookieName: testCookieName,
		Assistant:  true,
	}
}

func newGetCtx(path string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.SetRequestURI("http://localhost" + path)
	req.Header.SetMethod(fasthttp.MethodGet)

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	return ctx
}

func newPostCtx(path string, form url.Values) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.SetRequestURI("http://localhost" + path)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")
	req.SetBodyString(form.Encode())

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	return ctx
}

// attachSession stands in for the session middleware when handlers are
// called directly.
func attachSession(ctx *fasthttp.RequestCtx, sess *domain.Session) {
	ctx.SetUserValue(middleware.SessionKey, sess)
}

// authedSession saves a logged-in session and returns it.
func authedSession(t *testing.T, store session.Store) *domain.Session {
	t.Helper()
	sess := &domain.Session{
		ID:        "sess-1",
		User:      domain.User{ID: "u-1", Username: "tester"},
		Token:     "token-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := store.Save(context.Background(), sess); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	return sess
}

func storedSession(t *testing.T, store session.Store, id string) *domain.Session {
	t.Helper()
	sess, err := store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("session %q not in store: %v", id, err)
	}
	return sess
}

func responseCookie(ctx *fasthttp.RequestCtx, name string) (string, bool) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)
	c.SetKey(name)
	if !ctx.Response.Header.Cookie(c) {
		return "", false
	}
	return string(c.Value()), true
}

func location(ctx *fasthttp.RequestCtx) string {
	return string(ctx.Response.Header.Peek("Location"))
}

func pageBody(ctx *fasthttp.RequestCtx) string {
	return string(ctx.Response.Body())
}
