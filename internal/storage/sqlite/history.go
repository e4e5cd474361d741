package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/graceguide/grace/internal/core"
	"github.com/graceguide/grace/pkg/log"
)

type HistoryRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db, now: time.Now}
}

// Prepend inserts entry and trims the table to the newest limit rows in the
// same transaction, so readers never see more than limit entries.
func (r *HistoryRepo) Prepend(ctx context.Context, entry core.HistoryEntry, limit int) (core.HistoryEntry, error) {
	if limit < 1 {
		return core.HistoryEntry{}, fmt.Errorf("history limit must be positive, got %d", limit)
	}

	sources := entry.Sources
	if sources == nil {
		sources = []string{}
	}
	sourcesJSON, err := json.Marshal(sources)
	if err != nil {
		return core.HistoryEntry{}, fmt.Errorf("failed to marshal sources: %w", err)
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.now()
	}
	entry.CreatedAt = entry.CreatedAt.UTC()
	if entry.Mode == "" {
		entry.Mode = core.ModeBoth
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.HistoryEntry{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO history (question, answer, sources, mode, created_at) VALUES (?, ?, ?, ?, ?)`,
		entry.Question, entry.Answer, string(sourcesJSON), string(entry.Mode), entry.CreatedAt,
	)
	if err != nil {
		return core.HistoryEntry{}, fmt.Errorf("failed to insert history entry: %w", err)
	}

	entry.ID, err = res.LastInsertId()
	if err != nil {
		return core.HistoryEntry{}, err
	}

	evicted, err := tx.ExecContext(ctx,
		`DELETE FROM history WHERE id NOT IN (SELECT id FROM history ORDER BY id DESC LIMIT ?)`,
		limit,
	)
	if err != nil {
		return core.HistoryEntry{}, fmt.Errorf("failed to trim history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.HistoryEntry{}, err
	}

	if n, _ := evicted.RowsAffected(); n > 0 {
		log.FromCtx(ctx).Debug().Int64("evicted", n).Int("limit", limit).Msg("trimmed history")
	}
	return entry, nil
}

func (r *HistoryRepo) List(ctx context.Context, limit int) ([]core.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, question, answer, sources, mode, created_at FROM history ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []core.HistoryEntry
	for rows.Next() {
		var e core.HistoryEntry
		var sources, mode string
		if err := rows.Scan(&e.ID, &e.Question, &e.Answer, &sources, &mode, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		e.Mode = core.SourceMode(mode)
		if sources != "" {
			if err := json.Unmarshal([]byte(sources), &e.Sources); err != nil {
				return nil, fmt.Errorf("failed to unmarshal sources: %w", err)
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *HistoryRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
