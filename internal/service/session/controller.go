// Package session wires the input panel's actions to the services behind
// them. Each method is one user action.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/graceguide/grace/internal/core"
	"github.com/graceguide/grace/internal/service/engagement"
	"github.com/graceguide/grace/internal/service/history"
	"github.com/graceguide/grace/internal/service/share"
	"github.com/graceguide/grace/internal/service/state"
	"github.com/graceguide/grace/pkg/log"
)

var (
	ErrEmptyQuestion = errors.New("question is empty")
	ErrBusy          = errors.New("a question is already in flight")
)

type AskRequest struct {
	Question string
	// Mode overrides the selected mode when set.
	Mode core.SourceMode
}

type AskResult struct {
	Entry      core.HistoryEntry
	ShowPrompt bool
}

type Controller struct {
	api     core.AnswerService
	history *history.Store
	gate    *engagement.Gate
	sharer  *share.Sharer
	prefs   *state.Preferences

	busy atomic.Bool
}

func NewController(
	api core.AnswerService,
	hist *history.Store,
	gate *engagement.Gate,
	sharer *share.Sharer,
	prefs *state.Preferences,
) *Controller {
	return &Controller{
		api:     api,
		history: hist,
		gate:    gate,
		sharer:  sharer,
		prefs:   prefs,
	}
}

// Ask sends one question. Only a successful answer touches history and the
// ask counter.
func (c *Controller) Ask(ctx context.Context, req AskRequest) (AskResult, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return AskResult{}, ErrEmptyQuestion
	}

	if !c.busy.CompareAndSwap(false, true) {
		return AskResult{}, ErrBusy
	}
	defer c.busy.Store(false)

	mode := req.Mode
	if mode == "" {
		mode = c.prefs.Mode()
	}

	logger := log.FromCtx(ctx).With().Str("mode", string(mode)).Logger()
	logger.Debug().Int("len", len(question)).Msg("asking")

	start := time.Now()
	ans, err := c.api.Ask(ctx, question, mode)
	if err != nil {
		return AskResult{}, fmt.Errorf("ask failed: %w", err)
	}
	logger.Debug().Dur("took", time.Since(start)).Int("sources", len(ans.Sources)).Msg("answer received")

	res := AskResult{
		Entry: core.HistoryEntry{
			Question:  question,
			Answer:    ans.Answer,
			Sources:   ans.Sources,
			Mode:      mode,
			CreatedAt: start,
		},
	}

	saved, err := c.history.Record(ctx, question, ans, mode)
	if err != nil {
		logger.Warn().Err(err).Msg("answer not saved to history")
	} else {
		res.Entry = saved
	}

	show, err := c.gate.OnAnswer(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("engagement update failed")
	}
	res.ShowPrompt = show

	return res, nil
}

func (c *Controller) Busy() bool {
	return c.busy.Load()
}

// StartSession begins a new engagement session for an interactive front end.
func (c *Controller) StartSession(ctx context.Context) error {
	_, err := c.gate.StartSession(ctx)
	return err
}

func (c *Controller) Subscribe(ctx context.Context, email string) error {
	return c.gate.Subscribe(ctx, email)
}

func (c *Controller) MaybeLater(ctx context.Context) error {
	return c.gate.MaybeLater(ctx)
}

func (c *Controller) ClosePrompt(ctx context.Context) {
	c.gate.Close(ctx)
}

func (c *Controller) Engagement(ctx context.Context) (core.EngagementState, error) {
	return c.gate.State(ctx)
}

func (c *Controller) History(ctx context.Context) ([]core.HistoryEntry, error) {
	return c.history.List(ctx)
}

func (c *Controller) HistoryLimit() int {
	return c.history.Limit()
}

func (c *Controller) HistoryEntry(ctx context.Context, n int) (core.HistoryEntry, error) {
	return c.history.Get(ctx, n)
}

func (c *Controller) ClearHistory(ctx context.Context) error {
	return c.history.Clear(ctx)
}

// Share renders the n-th history entry (1 = newest) for target.
func (c *Controller) Share(ctx context.Context, n int, target share.Target, out string) (share.Result, error) {
	entry, err := c.history.Get(ctx, n)
	if err != nil {
		return share.Result{}, err
	}
	return c.ShareEntry(ctx, entry, target, out)
}

func (c *Controller) ShareEntry(ctx context.Context, entry core.HistoryEntry, target share.Target, out string) (share.Result, error) {
	return c.sharer.Share(ctx, entry, target, out)
}

func (c *Controller) Mode() core.SourceMode {
	return c.prefs.Mode()
}

func (c *Controller) SetMode(mode core.SourceMode) {
	c.prefs.SetMode(mode)
}

func (c *Controller) CycleMode() core.SourceMode {
	return c.prefs.CycleMode()
}

func (c *Controller) Theme(ctx context.Context) (core.Theme, error) {
	return c.prefs.Theme(ctx)
}

func (c *Controller) SetTheme(ctx context.Context, theme core.Theme) error {
	return c.prefs.SetTheme(ctx, theme)
}

func (c *Controller) ToggleTheme(ctx context.Context) (core.Theme, error) {
	return c.prefs.ToggleTheme(ctx)
}

// Today returns the liturgical day for date; the zero time means today.
func (c *Controller) Today(ctx context.Context, date time.Time) (core.LiturgicalDay, error) {
	return c.api.LiturgicalDay(ctx, date)
}

func (c *Controller) Verse(ctx context.Context) (core.Verse, error) {
	return c.api.VerseOfTheDay(ctx)
}
