package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/graceguide/grace/internal/core"
	"github.com/graceguide/grace/internal/service/history"
	"github.com/graceguide/grace/internal/service/share"
)

type HistoryCommand struct {
	session   Session
	formatter *ResponseFormatter
}

func NewHistoryCommand(s Session) *HistoryCommand {
	return &HistoryCommand{session: s, formatter: NewResponseFormatter()}
}

func (c *HistoryCommand) Name() string {
	return "history"
}

func (c *HistoryCommand) Description() string {
	return "Show recent questions"
}

func (c *HistoryCommand) Execute(ctx context.Context, args []string) (string, error) {
	entries, err := c.session.History(ctx)
	if err != nil {
		return "", err
	}

	if len(entries) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("History"),
			"No questions yet.",
		), nil
	}

	items := make([]string, 0, len(entries))
	for _, row := range history.Render(entries) {
		items = append(items, fmt.Sprintf("**%d.** %s  _(%s, %s)_", row.Index, row.Question, row.Mode, row.When))
	}

	return c.formatter.Combine(
		c.formatter.Info("History"),
		c.formatter.List(items),
		c.formatter.Tip("Use /share N to share an answer"),
	), nil
}

type ClearCommand struct {
	session   Session
	formatter *ResponseFormatter
}

func NewClearCommand(s Session) *ClearCommand {
	return &ClearCommand{session: s, formatter: NewResponseFormatter()}
}

func (c *ClearCommand) Name() string {
	return "clear"
}

func (c *ClearCommand) Description() string {
	return "Clear question history"
}

func (c *ClearCommand) Execute(ctx context.Context, args []string) (string, error) {
	if err := c.session.ClearHistory(ctx); err != nil {
		return "", err
	}
	return c.formatter.Success("History cleared"), nil
}

type ShareCommand struct {
	session   Session
	formatter *ResponseFormatter
}

func NewShareCommand(s Session) *ShareCommand {
	return &ShareCommand{session: s, formatter: NewResponseFormatter()}
}

func (c *ShareCommand) Name() string {
	return "share"
}

func (c *ShareCommand) Description() string {
	return "Share an answer as an image or link"
}

func (c *ShareCommand) Execute(ctx context.Context, args []string) (string, error) {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			return c.usage(), nil
		}
		n = v
	}

	target := share.TargetDownload
	if len(args) > 1 {
		t, err := share.ParseTarget(args[1])
		if err != nil {
			return "", err
		}
		target = t
	}

	res, err := c.session.Share(ctx, n, target, "")
	if errors.Is(err, core.ErrNotFound) {
		return "", fmt.Errorf("no history entry #%d", n)
	}
	if err != nil {
		return "", err
	}

	switch {
	case res.Path != "":
		return c.formatter.Combine(
			c.formatter.Success("Share card saved"),
			c.formatter.Label("File", res.Path),
		), nil
	case res.Copied && res.URL != "":
		return c.formatter.Combine(
			c.formatter.Success("Copied to clipboard"),
			c.formatter.Label("Link", res.URL),
		), nil
	case res.Copied:
		return c.formatter.Success("Copied to clipboard"), nil
	case res.URL != "":
		return c.formatter.Success("Opened " + string(res.Target) + " share"), nil
	}
	return c.formatter.Success("Share card ready"), nil
}

func (c *ShareCommand) usage() string {
	return c.formatter.Combine(
		c.formatter.Usage("/share [N] [download|x|email|clipboard]"),
		c.formatter.Examples([]string{"/share", "/share 2 x", "/share 1 clipboard"}),
	)
}
