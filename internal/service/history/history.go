package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/graceguide/grace/internal/core"
)

// Store is the bounded, newest-first answer history.
type Store struct {
	repo  core.HistoryRepository
	limit int
	now   func() time.Time
}

func NewStore(repo core.HistoryRepository, cfg core.HistoryConfig) *Store {
	return &Store{
		repo:  repo,
		limit: cfg.GetHistoryLimit(),
		now:   time.Now,
	}
}

func (s *Store) Limit() int {
	return s.limit
}

// Record prepends a successful answer. The repository evicts anything past
// the limit in the same write.
func (s *Store) Record(ctx context.Context, question string, answer core.Answer, mode core.SourceMode) (core.HistoryEntry, error) {
	entry := core.HistoryEntry{
		Question:  question,
		Answer:    answer.Answer,
		Sources:   answer.Sources,
		Mode:      mode,
		CreatedAt: s.now(),
	}
	saved, err := s.repo.Prepend(ctx, entry, s.limit)
	if err != nil {
		return core.HistoryEntry{}, fmt.Errorf("failed to record history: %w", err)
	}
	return saved, nil
}

func (s *Store) List(ctx context.Context) ([]core.HistoryEntry, error) {
	return s.repo.List(ctx, s.limit)
}

// Get returns the n-th entry, 1 being the newest.
func (s *Store) Get(ctx context.Context, n int) (core.HistoryEntry, error) {
	if n < 1 || n > s.limit {
		return core.HistoryEntry{}, fmt.Errorf("history entry %d: %w", n, core.ErrNotFound)
	}
	entries, err := s.repo.List(ctx, n)
	if err != nil {
		return core.HistoryEntry{}, err
	}
	if len(entries) < n {
		return core.HistoryEntry{}, fmt.Errorf("history entry %d: %w", n, core.ErrNotFound)
	}
	return entries[n-1], nil
}

func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

// Prepend returns a new slice with e first and at most limit items.
// The input slice is not modified.
func Prepend(entries []core.HistoryEntry, e core.HistoryEntry, limit int) []core.HistoryEntry {
	if limit < 1 {
		return []core.HistoryEntry{}
	}
	n := min(len(entries)+1, limit)
	out := make([]core.HistoryEntry, 0, n)
	out = append(out, e)
	return append(out, entries[:n-1]...)
}

// Row is the display projection of a history entry.
type Row struct {
	Index    int
	Question string
	Answer   string
	Sources  string
	Mode     string
	When     string
}

const previewLen = 160

// Render projects entries to rows. It holds no state, so rendering the same
// entries twice yields identical rows.
func Render(entries []core.HistoryEntry) []Row {
	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = Row{
			Index:    i + 1,
			Question: oneLine(e.Question),
			Answer:   Truncate(oneLine(e.Answer), previewLen),
			Sources:  strings.Join(e.Sources, "; "),
			Mode:     e.Mode.Label(),
			When:     e.CreatedAt.Local().Format("Jan 2 15:04"),
		}
	}
	return rows
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate cuts s to at most n runes, ending with an ellipsis when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
