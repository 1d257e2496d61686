package middleware

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/frontend/domain"
	"github.com/fastygo/frontend/internal/session"
)

// SessionKey is the request user value the resolved session is stashed
// under for handlers.
const SessionKey = "session"

const lookupTimeout = 3 * time.Second

// SessionAuth guards pages that need a login. Requests without a valid
// session are redirected to the login page before any handler runs, so
// protected handlers never fire data calls for anonymous visitors.
//
// ttl is the rolling expiry window: each authenticated request pushes the
// session's expiry to now+ttl, on the stored session and on the attached
// copy, so later saves carry the extension forward. A non-positive ttl
// disables the extension.
func SessionAuth(store session.Store, cookieName string, ttl time.Duration, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			id := string(ctx.Request.Header.Cookie(cookieName))
			if id == "" {
				redirectToLogin(ctx)
				return
			}

			lookupCtx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
			defer cancel()

			sess, err := store.Get(lookupCtx, id)
			if err != nil {
				if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
					logger.Warn("session lookup failed", zap.Error(err))
				}
				redirectToLogin(ctx)
				return
			}
			if !sess.Authenticated() {
				redirectToLogin(ctx)
				return
			}

			if ttl > 0 {
				if err := store.Extend(lookupCtx, id, ttl); err != nil {
					logger.Warn("session extend failed", zap.Error(err))
				} else {
					sess.ExpiresAt = time.Now().Add(ttl)
				}
			}

			ctx.SetUserValue(SessionKey, sess)
			next(ctx)
		}
	}
}

// SessionLoad resolves the session when a cookie is present but lets the
// request through either way. Public pages use it to greet logged-in
// visitors without forcing a login.
func SessionLoad(store session.Store, cookieName string, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			id := string(ctx.Request.Header.Cookie(cookieName))
			if id != "" {
				lookupCtx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
				sess, err := store.Get(lookupCtx, id)
				cancel()
				if err == nil && sess.Authenticated() {
					ctx.SetUserValue(SessionKey, sess)
				}
			}
			next(ctx)
		}
	}
}

// SessionFrom returns the session stashed by SessionAuth or SessionLoad, or
// nil when the request is anonymous.
func SessionFrom(ctx *fasthttp.RequestCtx) *domain.Session {
	sess, _ := ctx.UserValue(SessionKey).(*domain.Session)
	return sess
}

func redirectToLogin(ctx *fasthttp.RequestCtx) {
	ctx.Redirect("/login", fasthttp.StatusSeeOther)
}
