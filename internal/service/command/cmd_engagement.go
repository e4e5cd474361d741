package command

import (
	"context"
	"strings"
)

type SubscribeCommand struct {
	session   Session
	formatter *ResponseFormatter
}

func NewSubscribeCommand(s Session) *SubscribeCommand {
	return &SubscribeCommand{session: s, formatter: NewResponseFormatter()}
}

func (c *SubscribeCommand) Name() string {
	return "subscribe"
}

func (c *SubscribeCommand) Description() string {
	return "Get daily reflections by email"
}

func (c *SubscribeCommand) Execute(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Usage("/subscribe you@example.com"), nil
	}
	if err := c.session.Subscribe(ctx, strings.Join(args, "")); err != nil {
		return "", err
	}
	return c.formatter.Success("Thanks for subscribing!"), nil
}

type LaterCommand struct {
	session   Session
	formatter *ResponseFormatter
}

func NewLaterCommand(s Session) *LaterCommand {
	return &LaterCommand{session: s, formatter: NewResponseFormatter()}
}

func (c *LaterCommand) Name() string {
	return "later"
}

func (c *LaterCommand) Description() string {
	return "Remind me about subscribing later"
}

func (c *LaterCommand) Execute(ctx context.Context, args []string) (string, error) {
	if err := c.session.MaybeLater(ctx); err != nil {
		return "", err
	}
	return c.formatter.Success("Okay, we'll ask again later"), nil
}
