package core

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

type HistoryRepository interface {
	// Prepend stores entry as the newest item and evicts everything past limit.
	Prepend(ctx context.Context, entry HistoryEntry, limit int) (HistoryEntry, error)
	// List returns at most limit entries, newest first.
	List(ctx context.Context, limit int) ([]HistoryEntry, error)
	Clear(ctx context.Context) error
}

// StateRepository holds small persisted values such as counters and flags.
type StateRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	GetMany(ctx context.Context, keys ...string) (map[string]string, error)
	Set(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}

// Persisted state keys.
const (
	KeyAskCount       = "ask_count"
	KeyMaybeLater     = "maybe_later_until"
	KeySubscribed     = "subscribed"
	KeyTheme          = "theme"
	KeySessionID      = "session_id"
	KeySessionSeen    = "session_seen"
	KeyModalShownInID = "modal_shown_session"
)
