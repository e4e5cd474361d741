// Package api talks to the GraceGuide answer service.
package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/graceguide/grace/internal/core"
	"github.com/graceguide/grace/pkg/log"
)

const dateLayout = "2006-01-02"

type Client struct {
	baseClient
}

func NewClient(cfg core.APIConfig) *Client {
	return &Client{
		baseClient: newBaseClient(cfg.GetBaseURL(), cfg.GetRequestTimeout()),
	}
}

// Ask posts the question once. Failures are terminal; the caller decides
// what the user sees.
func (c *Client) Ask(ctx context.Context, question string, mode core.SourceMode) (core.Answer, error) {
	payload := struct {
		Question string          `json:"question"`
		Mode     core.SourceMode `json:"mode"`
	}{question, mode}

	var ans core.Answer
	if err := c.call(ctx, http.MethodPost, "/qa", nil, payload, &ans); err != nil {
		return core.Answer{}, err
	}

	ans.Answer = strings.TrimSpace(ans.Answer)
	if ans.Sources == nil {
		ans.Sources = []string{}
	}
	return ans, nil
}

func (c *Client) Subscribe(ctx context.Context, email string) error {
	payload := struct {
		Email string `json:"email"`
	}{email}
	return c.call(ctx, http.MethodPost, "/subscribe", nil, payload, nil)
}

// LogEvent is fire-and-forget telemetry; errors only reach the debug log.
func (c *Client) LogEvent(ctx context.Context, event string) {
	payload := struct {
		Event string `json:"event"`
	}{event}
	if err := c.call(ctx, http.MethodPost, "/log_event", nil, payload, nil); err != nil {
		log.FromCtx(ctx).Debug().Err(err).Str("event", event).Msg("log_event dropped")
	}
}

// LiturgicalDay fetches the calendar entry for date; the zero time asks the
// server for its own today.
func (c *Client) LiturgicalDay(ctx context.Context, date time.Time) (core.LiturgicalDay, error) {
	var query url.Values
	if !date.IsZero() {
		query = url.Values{"date": {date.Format(dateLayout)}}
	}

	var day core.LiturgicalDay
	if err := c.get(ctx, "/liturgical-day", query, &day); err != nil {
		return core.LiturgicalDay{}, err
	}
	return day, nil
}

func (c *Client) VerseOfTheDay(ctx context.Context) (core.Verse, error) {
	var v core.Verse
	if err := c.get(ctx, "/verse-of-the-day", nil, &v); err != nil {
		return core.Verse{}, err
	}
	return v, nil
}
