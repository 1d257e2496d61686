// Package assistant implements the chat helper: persisted per-session
// conversation history plus pluggable responders (canned keyword replies by
// default, OpenAI chat completions when a key is configured).
package assistant

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/fastygo/frontend/domain"
)

const historyBucket = "chat_history"

// maxMessages bounds each conversation so the bucket cannot grow without
// limit; the oldest messages are dropped first.
const maxMessages = 200

// HistoryStore persists conversations in BoltDB, one key per session.
type HistoryStore struct {
	db     *bolt.DB
	bucket []byte
}

// OpenHistory initializes the BoltDB file and ensures the bucket exists.
func OpenHistory(path string) (*HistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(historyBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &HistoryStore{
		db:     db,
		bucket: []byte(historyBucket),
	}, nil
}

// Load returns the conversation for a session, oldest first.
func (s *HistoryStore) Load(sessionID string) ([]domain.ChatMessage, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}

	var history []domain.ChatMessage
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(s.bucket).Get([]byte(sessionID))
		if len(raw) == 0 {
			return nil
		}
		return json.Unmarshal(raw, &history)
	})
	return history, err
}

// Append adds a message to a session's conversation. Empty user messages and
// exact repeats of the previous message are dropped so reloads and double
// submits stay idempotent.
func (s *HistoryStore) Append(sessionID string, msg domain.ChatMessage) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}

	msg.Content = strings.TrimSpace(msg.Content)
	if msg.Content == "" && msg.Role == domain.ChatRoleUser {
		return nil
	}
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now().UTC()
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		key := []byte(sessionID)

		var history []domain.ChatMessage
		if raw := bucket.Get(key); len(raw) > 0 {
			if err := json.Unmarshal(raw, &history); err != nil {
				history = nil
			}
		}

		if len(history) > 0 && history[len(history)-1].Equal(msg) {
			return nil
		}

		history = append(history, msg)
		if len(history) > maxMessages {
			history = history[len(history)-maxMessages:]
		}

		payload, err := json.Marshal(history)
		if err != nil {
			return err
		}
		return bucket.Put(key, payload)
	})
}

// Clear removes a session's conversation.
func (s *HistoryStore) Clear(sessionID string) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(sessionID))
	})
}

// Sessions returns the number of conversations on disk.
func (s *HistoryStore) Sessions() (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Close closes the Bolt database.
func (s *HistoryStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
