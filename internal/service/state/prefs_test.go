package state

import (
	"context"
	"testing"

	"github.com/graceguide/grace/internal/core"
	"github.com/graceguide/grace/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrefs(t *testing.T) (*Preferences, *sqlite.StateRepo) {
	t.Helper()
	db, err := sqlite.NewDB(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := sqlite.NewStateRepo(db)
	return NewPreferences(repo), repo
}

func TestPreferences_Mode(t *testing.T) {
	p, _ := newPrefs(t)
	assert.Equal(t, core.ModeBoth, p.Mode())

	assert.Equal(t, core.ModeBible, p.CycleMode())
	assert.Equal(t, core.ModeCatechism, p.CycleMode())
	assert.Equal(t, core.ModeBoth, p.CycleMode())

	p.SetMode(core.ModeCatechism)
	assert.Equal(t, core.ModeCatechism, p.Mode())
}

func TestPreferences_Theme(t *testing.T) {
	p, repo := newPrefs(t)
	ctx := context.Background()

	theme, err := p.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.ThemeLight, theme)

	theme, err = p.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.ThemeDark, theme)

	stored, ok, err := repo.Get(ctx, core.KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", stored)

	require.NoError(t, repo.Set(ctx, map[string]string{core.KeyTheme: "sepia"}))
	theme, err = p.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.ThemeLight, theme, "unknown stored value falls back")
}
