// Package auth drives login, registration, and session lifecycle against
// the backend service.
package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/frontend/backend"
	"github.com/fastygo/frontend/domain"
	"github.com/fastygo/frontend/internal/session"
)

type UseCase struct {
	provider backend.AuthService
	sessions session.Store
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func New(provider backend.AuthService, sessions session.Store, ttl time.Duration, logger *zap.Logger) *UseCase {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		provider: provider,
		sessions: sessions,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// Login authenticates against the backend and stores a fresh session.
func (uc *UseCase) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	result, err := uc.provider.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	sess, err := uc.CreateSession(ctx, result.User, result.Token)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("user logged in",
		zap.String("user_id", result.User.ID),
		zap.String("username", result.User.Username))
	return sess, nil
}

// Register creates an account. The caller logs in separately afterwards.
func (uc *UseCase) Register(ctx context.Context, username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.provider.Register(ctx, username, email, password); err != nil {
		return err
	}
	uc.logger.Info("user registered", zap.String("username", username))
	return nil
}

// CreateSession stores a session for an already-authenticated identity. The
// dev quick-login uses it directly to inject the demo user without a
// provider round trip.
func (uc *UseCase) CreateSession(ctx context.Context, user domain.User, token string) (*domain.Session, error) {
	now := uc.now()
	expiresAt := now.Add(uc.ttl)

	// The initial lifetime is capped to the token's expiry; a session that
	// gets extended past it dies on its first rejected backend call.
	if exp := tokenExpiry(token); !exp.IsZero() && exp.Before(expiresAt) {
		expiresAt = exp
	}

	sess := &domain.Session{
		ID:        uuid.NewString(),
		User:      user,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}
	if err := uc.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Logout discards the session. Deleting an unknown ID is not an error.
func (uc *UseCase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return uc.sessions.Delete(ctx, sessionID)
}

// tokenExpiry peeks at a JWT's exp claim without verifying the signature.
// Verification is the backend's job; the expiry only caps session length.
// The zero time means the token carries no usable expiry.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, ok := claims["exp"].(float64)
	if !ok || exp <= 0 {
		return time.Time{}
	}
	return time.Unix(int64(exp), 0)
}
