package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/graceguide/grace/internal/core"
	"github.com/graceguide/grace/internal/service/engagement"
	"github.com/graceguide/grace/internal/service/share"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	entries    []core.HistoryEntry
	cleared    bool
	shared     []share.Target
	shareN     int
	shareRes   share.Result
	mode       core.SourceMode
	theme      core.Theme
	subscribed string
	deferred   bool
	date       time.Time
}

func (f *fakeSession) History(context.Context) ([]core.HistoryEntry, error) { return f.entries, nil }

func (f *fakeSession) ClearHistory(context.Context) error {
	f.cleared = true
	f.entries = nil
	return nil
}

func (f *fakeSession) Share(_ context.Context, n int, target share.Target, _ string) (share.Result, error) {
	if n > len(f.entries) {
		return share.Result{}, core.ErrNotFound
	}
	f.shareN = n
	f.shared = append(f.shared, target)
	res := f.shareRes
	res.Target = target
	return res, nil
}

func (f *fakeSession) Mode() core.SourceMode                     { return f.mode }
func (f *fakeSession) SetMode(m core.SourceMode)                 { f.mode = m }
func (f *fakeSession) Theme(context.Context) (core.Theme, error) { return f.theme, nil }

func (f *fakeSession) SetTheme(_ context.Context, t core.Theme) error {
	f.theme = t
	return nil
}

func (f *fakeSession) Subscribe(_ context.Context, email string) error {
	if email == "" {
		return engagement.ErrEmptyEmail
	}
	f.subscribed = email
	return nil
}

func (f *fakeSession) MaybeLater(context.Context) error {
	f.deferred = true
	return nil
}

func (f *fakeSession) Today(_ context.Context, date time.Time) (core.LiturgicalDay, error) {
	f.date = date
	return core.LiturgicalDay{
		Date:         "2026-10-18",
		Season:       "Ordinary Time",
		Celebrations: []core.Celebration{{Title: "Saint Luke, Evangelist"}, {Title: "Twenty-ninth Sunday"}},
	}, nil
}

func (f *fakeSession) Verse(context.Context) (core.Verse, error) {
	return core.Verse{
		Text:                "The harvest is plentiful but the laborers are few.",
		Reference:           "Luke 10:2",
		CatechismReferences: []string{"CCC 2611"},
	}, nil
}

func newRouter() (*Router, *fakeSession) {
	s := &fakeSession{
		mode:  core.ModeBoth,
		theme: core.ThemeLight,
		entries: []core.HistoryEntry{
			{Question: "Why do we pray?", Mode: core.ModeBoth, CreatedAt: time.Now()},
			{Question: "Who was Abraham?", Mode: core.ModeBible, CreatedAt: time.Now()},
		},
	}
	return New(NewCommands(s)), s
}

func TestRouter_PlainTextIsNotHandled(t *testing.T) {
	r, _ := newRouter()
	out, ok := r.Execute(context.Background(), "What is grace?")
	assert.False(t, ok)
	assert.Empty(t, out)
}

func TestRouter_Unknown(t *testing.T) {
	r, _ := newRouter()
	out, ok := r.Execute(context.Background(), "/pray")
	assert.True(t, ok)
	assert.Equal(t, "Unknown command: /pray", out)
}

func TestRouter_BotSuffix(t *testing.T) {
	r, _ := newRouter()
	out, ok := r.Execute(context.Background(), "/History@grace_bot")
	assert.True(t, ok)
	assert.Contains(t, out, "Why do we pray?")
}

func TestRouter_ListCommandsSorted(t *testing.T) {
	r, _ := newRouter()
	var names []string
	for _, c := range r.ListCommands() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"clear", "help", "history", "later", "mode", "share", "subscribe", "theme", "today", "verse"}, names)
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   []string
		verify func(t *testing.T, s *fakeSession)
	}{
		{
			name:  "history lists newest first",
			input: "/history",
			want:  []string{"**1.** Why do we pray?", "**2.** Who was Abraham?", "Bible"},
		},
		{
			name:  "clear",
			input: "/clear",
			want:  []string{"History cleared"},
			verify: func(t *testing.T, s *fakeSession) {
				assert.True(t, s.cleared)
			},
		},
		{
			name:  "share defaults to newest download",
			input: "/share",
			want:  []string{"Share card ready"},
			verify: func(t *testing.T, s *fakeSession) {
				assert.Equal(t, 1, s.shareN)
				assert.Equal(t, []share.Target{share.TargetDownload}, s.shared)
			},
		},
		{
			name:  "share with target",
			input: "/share 2 x",
			verify: func(t *testing.T, s *fakeSession) {
				assert.Equal(t, 2, s.shareN)
				assert.Equal(t, []share.Target{share.TargetX}, s.shared)
			},
		},
		{
			name:  "share missing entry",
			input: "/share 9",
			want:  []string{"failed", "no history entry #9"},
		},
		{
			name:  "share bad index shows usage",
			input: "/share zero",
			want:  []string{"Usage"},
		},
		{
			name:  "share bad target",
			input: "/share 1 fax",
			want:  []string{"unknown share target"},
		},
		{
			name:  "mode shows current",
			input: "/mode",
			want:  []string{"Blend"},
		},
		{
			name:  "mode set",
			input: "/mode ccc",
			want:  []string{"Mode set to CCC"},
			verify: func(t *testing.T, s *fakeSession) {
				assert.Equal(t, core.ModeCatechism, s.mode)
			},
		},
		{
			name:  "mode invalid",
			input: "/mode quran",
			want:  []string{"unknown source mode"},
		},
		{
			name:  "theme set",
			input: "/theme dark",
			want:  []string{"Theme set to dark"},
			verify: func(t *testing.T, s *fakeSession) {
				assert.Equal(t, core.ThemeDark, s.theme)
			},
		},
		{
			name:  "subscribe",
			input: "/subscribe friend@example.com",
			want:  []string{"Thanks for subscribing"},
			verify: func(t *testing.T, s *fakeSession) {
				assert.Equal(t, "friend@example.com", s.subscribed)
			},
		},
		{
			name:  "subscribe without email",
			input: "/subscribe",
			want:  []string{"Usage"},
		},
		{
			name:  "later",
			input: "/later",
			verify: func(t *testing.T, s *fakeSession) {
				assert.True(t, s.deferred)
			},
		},
		{
			name:  "today",
			input: "/today",
			want:  []string{"Saint Luke, Evangelist", "Ordinary Time", "Also: Twenty-ninth Sunday"},
			verify: func(t *testing.T, s *fakeSession) {
				assert.True(t, s.date.IsZero())
			},
		},
		{
			name:  "today with date",
			input: "/today 2026-12-25",
			verify: func(t *testing.T, s *fakeSession) {
				assert.Equal(t, "2026-12-25", s.date.Format(dateLayout))
			},
		},
		{
			name:  "verse",
			input: "/verse",
			want:  []string{"> The harvest is plentiful", "**Luke 10:2**", "CCC 2611"},
		},
		{
			name:  "help",
			input: "/help",
			want:  []string{"`/share`", "`/verse`"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, s := newRouter()
			out, ok := r.Execute(context.Background(), tt.input)
			require.True(t, ok)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			if tt.verify != nil {
				tt.verify(t, s)
			}
		})
	}
}

func TestShareCommand_Results(t *testing.T) {
	tests := []struct {
		res  share.Result
		want string
	}{
		{share.Result{Path: "/tmp/card.png"}, "/tmp/card.png"},
		{share.Result{URL: "https://x.com/intent/tweet", Copied: true}, "Copied to clipboard"},
		{share.Result{Copied: true}, "Copied to clipboard"},
		{share.Result{URL: "mailto:"}, "Opened download share"},
	}
	for _, tt := range tests {
		s := &fakeSession{entries: []core.HistoryEntry{{Question: "q"}}, shareRes: tt.res}
		out, err := NewShareCommand(s).Execute(context.Background(), nil)
		require.NoError(t, err)
		assert.Contains(t, out, tt.want)
	}
}

func TestFormatter_Error(t *testing.T) {
	out := NewResponseFormatter().Error("share", errors.New("boom"))
	assert.Contains(t, out, "/share failed")
	assert.Contains(t, out, "boom")
}
