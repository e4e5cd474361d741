package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/graceguide/grace/internal/core"
	"github.com/graceguide/grace/internal/service/engagement"
	"github.com/graceguide/grace/internal/service/history"
	"github.com/graceguide/grace/internal/service/share"
	"github.com/graceguide/grace/internal/service/state"
	"github.com/graceguide/grace/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type testConfig struct {
	shareDir string
}

func (testConfig) GetHistoryLimit() int          { return 10 }
func (testConfig) GetNagThreshold() int          { return 5 }
func (testConfig) GetDeferSpan() int             { return 10 }
func (testConfig) GetSessionIdle() time.Duration { return time.Hour }
func (c testConfig) GetShareDir() string         { return c.shareDir }

type fakeAPI struct {
	mu      sync.Mutex
	asks    []string
	modes   []core.SourceMode
	events  []string
	fail    error
	entered chan struct{}
	release chan struct{}
}

func (f *fakeAPI) Ask(ctx context.Context, question string, mode core.SourceMode) (core.Answer, error) {
	f.mu.Lock()
	f.asks = append(f.asks, question)
	f.modes = append(f.modes, mode)
	fail := f.fail
	f.mu.Unlock()

	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	if fail != nil {
		return core.Answer{}, fail
	}
	return core.Answer{Answer: "Answer to " + question, Sources: []string{"CCC 27"}}, nil
}

func (f *fakeAPI) Subscribe(context.Context, string) error { return nil }

func (f *fakeAPI) LogEvent(_ context.Context, event string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeAPI) LiturgicalDay(context.Context, time.Time) (core.LiturgicalDay, error) {
	return core.LiturgicalDay{Celebrations: []core.Celebration{{Title: "Saint Luke, Evangelist"}}}, nil
}

func (f *fakeAPI) VerseOfTheDay(context.Context) (core.Verse, error) {
	return core.Verse{Reference: "Lk 10:2"}, nil
}

func (f *fakeAPI) askCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.asks)
}

func newController(t *testing.T, api *fakeAPI) *Controller {
	t.Helper()
	db, err := sqlite.NewDB(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := testConfig{shareDir: t.TempDir()}
	stateRepo := sqlite.NewStateRepo(db)
	renderer, err := share.NewRenderer()
	require.NoError(t, err)

	return NewController(
		api,
		history.NewStore(sqlite.NewHistoryRepo(db), cfg),
		engagement.NewGate(stateRepo, api, cfg),
		share.NewSharer(renderer, cfg),
		state.NewPreferences(stateRepo),
	)
}

func TestAsk_Success(t *testing.T) {
	api := &fakeAPI{}
	c := newController(t, api)
	ctx := context.Background()

	c.SetMode(core.ModeBible)
	res, err := c.Ask(ctx, AskRequest{Question: "  Who is the Good Shepherd?  "})
	require.NoError(t, err)

	assert.Equal(t, "Answer to Who is the Good Shepherd?", res.Entry.Answer)
	assert.Equal(t, []string{"CCC 27"}, res.Entry.Sources)
	assert.Equal(t, core.ModeBible, res.Entry.Mode)
	assert.False(t, res.ShowPrompt)
	assert.Equal(t, []core.SourceMode{core.ModeBible}, api.modes)

	entries, err := c.History(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Who is the Good Shepherd?", entries[0].Question)

	state, err := c.Engagement(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, state.AskCount)
}

func TestAsk_ModeOverride(t *testing.T) {
	api := &fakeAPI{}
	c := newController(t, api)

	_, err := c.Ask(context.Background(), AskRequest{Question: "q", Mode: core.ModeCatechism})
	require.NoError(t, err)
	assert.Equal(t, []core.SourceMode{core.ModeCatechism}, api.modes)
	assert.Equal(t, core.ModeBoth, c.Mode(), "override does not change the selector")
}

func TestAsk_EmptyQuestionSendsNothing(t *testing.T) {
	api := &fakeAPI{}
	c := newController(t, api)

	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := c.Ask(context.Background(), AskRequest{Question: q})
		assert.ErrorIs(t, err, ErrEmptyQuestion)
	}
	assert.Zero(t, api.askCount())
}

func TestAsk_FailureLeavesStateUnchanged(t *testing.T) {
	api := &fakeAPI{}
	c := newController(t, api)
	ctx := context.Background()

	_, err := c.Ask(ctx, AskRequest{Question: "first"})
	require.NoError(t, err)

	boom := errors.New("502 bad gateway")
	api.fail = boom
	_, err = c.Ask(ctx, AskRequest{Question: "second"})
	require.ErrorIs(t, err, boom)

	entries, err := c.History(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "first", entries[0].Question)

	state, err := c.Engagement(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, state.AskCount)
	assert.False(t, c.Busy(), "busy flag released after failure")
}

func TestAsk_SecondCallWhileInFlight(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))

	api := &fakeAPI{entered: make(chan struct{}), release: make(chan struct{})}
	c := newController(t, api)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := c.Ask(ctx, AskRequest{Question: "slow one"})
		done <- err
	}()

	<-api.entered
	assert.True(t, c.Busy())
	_, err := c.Ask(ctx, AskRequest{Question: "impatient"})
	assert.ErrorIs(t, err, ErrBusy)

	close(api.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, api.askCount())
	assert.False(t, c.Busy())
}

func TestAsk_PromptAtFifthAnswer(t *testing.T) {
	api := &fakeAPI{}
	c := newController(t, api)
	ctx := context.Background()
	require.NoError(t, c.StartSession(ctx))

	var shown []int
	for i := 1; i <= 8; i++ {
		res, err := c.Ask(ctx, AskRequest{Question: "q"})
		require.NoError(t, err)
		if res.ShowPrompt {
			shown = append(shown, i)
		}
	}
	assert.Equal(t, []int{5}, shown)
	assert.Contains(t, api.events, core.EventModalShown)
}

func TestShare(t *testing.T) {
	api := &fakeAPI{}
	c := newController(t, api)
	ctx := context.Background()

	_, err := c.Share(ctx, 1, share.TargetDownload, "")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = c.Ask(ctx, AskRequest{Question: "What is hope?"})
	require.NoError(t, err)

	res, err := c.Share(ctx, 1, share.TargetDownload, "")
	require.NoError(t, err)
	assert.FileExists(t, res.Path)
}

func TestDailyContent(t *testing.T) {
	c := newController(t, &fakeAPI{})
	ctx := context.Background()

	day, err := c.Today(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "Saint Luke, Evangelist", day.Title())

	verse, err := c.Verse(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Lk 10:2", verse.Reference)
}

func TestHistoryCapAndClear(t *testing.T) {
	c := newController(t, &fakeAPI{})
	ctx := context.Background()
	assert.Equal(t, 10, c.HistoryLimit())

	for i := 0; i < 12; i++ {
		_, err := c.Ask(ctx, AskRequest{Question: "Why do we pray?"})
		require.NoError(t, err)
	}

	entries, err := c.History(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, c.HistoryLimit())

	state, err := c.Engagement(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, state.AskCount, "the counter is not capped with history")

	require.NoError(t, c.ClearHistory(ctx))
	entries, err = c.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
