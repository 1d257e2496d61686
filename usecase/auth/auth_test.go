package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/fastygo/frontend/domain"
	"github.com/fastygo/frontend/internal/session"
	"github.com/fastygo/frontend/internal/testutil"
)

func newTestUseCase(fake *testutil.FakeBackend, ttl time.Duration) (*UseCase, *session.MemoryStore) {
	store := session.NewMemoryStore(ttl)
	return New(fake, store, ttl, nil), store
}

func mintToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u-1",
		"exp":     expiresAt.Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestLoginCreatesSession(t *testing.T) {
	fake := testutil.NewFakeBackend()
	uc, store := newTestUseCase(fake, time.Hour)

	sess, err := uc.Login(context.Background(), "tester", "pw123456")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("session should get an ID")
	}
	if sess.User.ID != "u-1" || sess.Token != "token-1" {
		t.Errorf("unexpected session %+v", sess)
	}
	if !sess.Authenticated() {
		t.Error("session should be authenticated")
	}

	stored, err := store.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if stored.User.Username != "tester" {
		t.Errorf("stored user = %q", stored.User.Username)
	}
	if fake.LoginCalls != 1 {
		t.Errorf("LoginCalls = %d, want 1", fake.LoginCalls)
	}
}

func TestLoginFailureStoresNothing(t *testing.T) {
	fake := testutil.NewFakeBackend()
	fake.LoginErr = domain.ErrInvalidCredentials
	uc, store := newTestUseCase(fake, time.Hour)

	_, err := uc.Login(context.Background(), "tester", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("failed login must not leave a session, store has %d", store.Len())
	}
}

func TestLoginValidatesInput(t *testing.T) {
	fake := testutil.NewFakeBackend()
	uc, _ := newTestUseCase(fake, time.Hour)
	ctx := context.Background()

	if _, err := uc.Login(ctx, "", "pw"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("empty username: got %v", err)
	}
	if _, err := uc.Login(ctx, "tester", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("empty password: got %v", err)
	}
	if fake.LoginCalls != 0 {
		t.Errorf("invalid input must not reach the provider, LoginCalls = %d", fake.LoginCalls)
	}
}

func TestSessionCappedToTokenExpiry(t *testing.T) {
	fake := testutil.NewFakeBackend()
	uc, _ := newTestUseCase(fake, 24*time.Hour)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	tokenExp := now.Add(time.Hour)
	sess, err := uc.CreateSession(context.Background(), domain.User{ID: "u-1"}, mintToken(t, tokenExp))
	if err != nil {
		t.Fatalf("CreateSession() error: %v", err)
	}
	if got, want := sess.ExpiresAt, time.Unix(tokenExp.Unix(), 0); !got.Equal(want) {
		t.Errorf("ExpiresAt = %v, want capped to token expiry %v", got, want)
	}
}

func TestOpaqueTokenGetsFullTTL(t *testing.T) {
	fake := testutil.NewFakeBackend()
	uc, _ := newTestUseCase(fake, 24*time.Hour)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	sess, err := uc.CreateSession(context.Background(), domain.User{ID: "u-1"}, "mock_token_123456")
	if err != nil {
		t.Fatalf("CreateSession() error: %v", err)
	}
	if got, want := sess.ExpiresAt, now.Add(24*time.Hour); !got.Equal(want) {
		t.Errorf("ExpiresAt = %v, want full TTL %v", got, want)
	}
}

func TestLogout(t *testing.T) {
	fake := testutil.NewFakeBackend()
	uc, store := newTestUseCase(fake, time.Hour)
	ctx := context.Background()

	sess, err := uc.Login(ctx, "tester", "pw123456")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if err := uc.Logout(ctx, sess.ID); err != nil {
		t.Fatalf("Logout() error: %v", err)
	}
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("session should be gone after logout, got %v", err)
	}

	// No session cookie means nothing to do.
	if err := uc.Logout(ctx, ""); err != nil {
		t.Errorf("Logout(\"\") = %v", err)
	}
}

func TestRegister(t *testing.T) {
	fake := testutil.NewFakeBackend()
	uc, _ := newTestUseCase(fake, time.Hour)
	ctx := context.Background()

	if err := uc.Register(ctx, "alice", "alice@example.com", "pw123456"); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if len(fake.Registered) != 1 || fake.Registered[0] != "alice" {
		t.Errorf("Registered = %v", fake.Registered)
	}

	if err := uc.Register(ctx, "", "a@b.c", "pw"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("empty username: got %v", err)
	}

	fake.RegisterErr = domain.ErrUserExists
	if err := uc.Register(ctx, "alice", "alice@example.com", "pw123456"); !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("provider error should pass through, got %v", err)
	}
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)

	if got := tokenExpiry(mintToken(t, exp)); !got.Equal(time.Unix(exp.Unix(), 0)) {
		t.Errorf("tokenExpiry = %v, want %v", got, exp)
	}
	if got := tokenExpiry("mock_token_123456"); !got.IsZero() {
		t.Errorf("opaque token should have zero expiry, got %v", got)
	}

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "u-1"}).
		SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	if got := tokenExpiry(noExp); !got.IsZero() {
		t.Errorf("token without exp should have zero expiry, got %v", got)
	}
}
