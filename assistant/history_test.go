package assistant

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/fastygo/frontend/domain"
)

func openTestHistory(t *testing.T) (*HistoryStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assistant.db")
	store, err := OpenHistory(path)
	if err != nil {
		t.Fatalf("OpenHistory() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestHistoryAppendAndLoad(t *testing.T) {
	store, _ := openTestHistory(t)

	msgs := []domain.ChatMessage{
		{Role: domain.ChatRoleUser, Content: "hello"},
		{Role: domain.ChatRoleAssistant, Content: "Hi there! How can I help you today?"},
	}
	for _, msg := range msgs {
		if err := store.Append("sess-1", msg); err != nil {
			t.Fatalf("Append() error: %v", err)
		}
	}

	history, err := store.Load("sess-1")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("len(history) = %d, want 2", len(history))
	}
	if history[0].Role != domain.ChatRoleUser || history[0].Content != "hello" {
		t.Errorf("unexpected first message %+v", history[0])
	}
	if history[1].Role != domain.ChatRoleAssistant {
		t.Errorf("unexpected second message %+v", history[1])
	}
	if history[0].SentAt.IsZero() {
		t.Error("Append should stamp SentAt")
	}
}

func TestHistoryLoadUnknownSession(t *testing.T) {
	store, _ := openTestHistory(t)

	history, err := store.Load("nobody")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty history, got %d messages", len(history))
	}
}

func TestHistoryDropsEmptyUserMessage(t *testing.T) {
	store, _ := openTestHistory(t)

	if err := store.Append("sess-1", domain.ChatMessage{Role: domain.ChatRoleUser, Content: "   "}); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	history, err := store.Load("sess-1")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("blank user message should be dropped, got %d messages", len(history))
	}
}

func TestHistoryDedupesConsecutiveRepeats(t *testing.T) {
	store, _ := openTestHistory(t)

	msg := domain.ChatMessage{Role: domain.ChatRoleUser, Content: "create a task"}
	if err := store.Append("sess-1", msg); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	if err := store.Append("sess-1", msg); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	history, err := store.Load("sess-1")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("double submit should be dropped, got %d messages", len(history))
	}

	// A different role with the same text is a real message.
	if err := store.Append("sess-1", domain.ChatMessage{Role: domain.ChatRoleAssistant, Content: "create a task"}); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	history, _ = store.Load("sess-1")
	if len(history) != 2 {
		t.Errorf("assistant echo should be kept, got %d messages", len(history))
	}
}

func TestHistoryClear(t *testing.T) {
	store, _ := openTestHistory(t)

	if err := store.Append("sess-1", domain.ChatMessage{Role: domain.ChatRoleUser, Content: "hello"}); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	if err := store.Clear("sess-1"); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	history, err := store.Load("sess-1")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("history should be empty after Clear, got %d messages", len(history))
	}
}

func TestHistorySurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assistant.db")

	store, err := OpenHistory(path)
	if err != nil {
		t.Fatalf("OpenHistory() error: %v", err)
	}
	if err := store.Append("sess-1", domain.ChatMessage{Role: domain.ChatRoleUser, Content: "persist me"}); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	reopened, err := OpenHistory(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer reopened.Close()

	history, err := reopened.Load("sess-1")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(history) != 1 || history[0].Content != "persist me" {
		t.Errorf("unexpected history after reopen: %+v", history)
	}
}

func TestHistoryTrimsOldestBeyondLimit(t *testing.T) {
	store, _ := openTestHistory(t)

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < maxMessages+10; i++ {
		msg := domain.ChatMessage{
			Role:    domain.ChatRoleUser,
			Content: fmt.Sprintf("message %d", i),
			SentAt:  base.Add(time.Duration(i) * time.Second),
		}
		if err := store.Append("sess-1", msg); err != nil {
			t.Fatalf("Append(%d) error: %v", i, err)
		}
	}

	history, err := store.Load("sess-1")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(history) != maxMessages {
		t.Fatalf("len(history) = %d, want %d", len(history), maxMessages)
	}
	if history[0].Content != "message 10" {
		t.Errorf("oldest kept message = %q, want %q", history[0].Content, "message 10")
	}
	if history[len(history)-1].Content != fmt.Sprintf("message %d", maxMessages+9) {
		t.Errorf("newest message = %q", history[len(history)-1].Content)
	}
}

func TestHistorySessions(t *testing.T) {
	store, _ := openTestHistory(t)

	if count, err := store.Sessions(); err != nil || count != 0 {
		t.Fatalf("Sessions() = %d, %v; want 0, nil", count, err)
	}

	for _, id := range []string{"a", "b", "c"} {
		if err := store.Append(id, domain.ChatMessage{Role: domain.ChatRoleUser, Content: "hi " + id}); err != nil {
			t.Fatalf("Append(%s) error: %v", id, err)
		}
	}

	count, err := store.Sessions()
	if err != nil {
		t.Fatalf("Sessions() error: %v", err)
	}
	if count != 3 {
		t.Errorf("Sessions() = %d, want 3", count)
	}
}

func TestHistoryNilStore(t *testing.T) {
	var store *HistoryStore

	if err := store.Append("s", domain.ChatMessage{Role: domain.ChatRoleUser, Content: "x"}); err == nil {
		t.Error("Append on nil store should fail")
	}
	if _, err := store.Load("s"); err == nil {
		t.Error("Load on nil store should fail")
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close on nil store = %v, want nil", err)
	}
}
