package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/graceguide/grace/internal/core"
	"github.com/graceguide/grace/internal/service/state"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTheme struct {
	theme core.Theme
	err   error
}

func (s stubTheme) Theme(context.Context) (core.Theme, error) { return s.theme, s.err }

func TestCurrentTheme(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).Level(zerolog.DebugLevel).WithContext(context.Background())

	assert.Equal(t, core.ThemeDark, currentTheme(ctx, stubTheme{theme: core.ThemeDark}))
	assert.Empty(t, buf.String())

	got := currentTheme(ctx, stubTheme{err: errors.New("database is locked")})
	assert.Equal(t, core.ThemeLight, got)
	assert.Contains(t, buf.String(), "failed to read theme preference")
	assert.Contains(t, buf.String(), "database is locked")
}

func TestAskModeFlagDefault(t *testing.T) {
	flag := askCmd.Flags().Lookup("mode")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Usage, "default: both")

	// a fresh process starts at the same mode the flag help names
	assert.Equal(t, core.ModeBoth, state.NewPreferences(nil).Mode())
}
