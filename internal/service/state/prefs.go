package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/graceguide/grace/internal/core"
)

// Preferences holds user choices. Theme is persisted; the source mode lives
// only as long as the process and starts at both.
type Preferences struct {
	repo core.StateRepository

	mu   sync.RWMutex
	mode core.SourceMode
}

func NewPreferences(repo core.StateRepository) *Preferences {
	return &Preferences{
		repo: repo,
		mode: core.ModeBoth,
	}
}

func (p *Preferences) Mode() core.SourceMode {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mode
}

func (p *Preferences) SetMode(mode core.SourceMode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = mode
}

// CycleMode advances Blend -> Bible -> CCC and returns the new mode.
func (p *Preferences) CycleMode() core.SourceMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = p.mode.Next()
	return p.mode
}

// Theme defaults to light when nothing valid is stored.
func (p *Preferences) Theme(ctx context.Context) (core.Theme, error) {
	v, ok, err := p.repo.Get(ctx, core.KeyTheme)
	if err != nil {
		return "", fmt.Errorf("failed to read theme: %w", err)
	}
	if !ok {
		return core.ThemeLight, nil
	}
	theme, err := core.ParseTheme(v)
	if err != nil {
		return core.ThemeLight, nil
	}
	return theme, nil
}

func (p *Preferences) SetTheme(ctx context.Context, theme core.Theme) error {
	if err := p.repo.Set(ctx, map[string]string{core.KeyTheme: string(theme)}); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

func (p *Preferences) ToggleTheme(ctx context.Context) (core.Theme, error) {
	current, err := p.Theme(ctx)
	if err != nil {
		return "", err
	}
	next := core.ThemeDark
	if current == core.ThemeDark {
		next = core.ThemeLight
	}
	return next, p.SetTheme(ctx, next)
}
