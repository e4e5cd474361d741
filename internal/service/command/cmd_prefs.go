package command

import (
	"context"

	"github.com/graceguide/grace/internal/core"
)

type ModeCommand struct {
	session   Session
	formatter *ResponseFormatter
}

func NewModeCommand(s Session) *ModeCommand {
	return &ModeCommand{session: s, formatter: NewResponseFormatter()}
}

func (c *ModeCommand) Name() string {
	return "mode"
}

func (c *ModeCommand) Description() string {
	return "Show or change the source mode"
}

func (c *ModeCommand) Execute(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Combine(
			c.formatter.Label("Mode", c.session.Mode().Label()),
			c.formatter.Usage("/mode [blend|bible|ccc]"),
		), nil
	}

	mode, err := core.ParseSourceMode(args[0])
	if err != nil {
		return "", err
	}
	c.session.SetMode(mode)
	return c.formatter.Success("Mode set to " + mode.Label()), nil
}

type ThemeCommand struct {
	session   Session
	formatter *ResponseFormatter
}

func NewThemeCommand(s Session) *ThemeCommand {
	return &ThemeCommand{session: s, formatter: NewResponseFormatter()}
}

func (c *ThemeCommand) Name() string {
	return "theme"
}

func (c *ThemeCommand) Description() string {
	return "Show or change the color theme"
}

func (c *ThemeCommand) Execute(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		theme, err := c.session.Theme(ctx)
		if err != nil {
			return "", err
		}
		return c.formatter.Combine(
			c.formatter.Label("Theme", string(theme)),
			c.formatter.Usage("/theme [light|dark]"),
		), nil
	}

	theme, err := core.ParseTheme(args[0])
	if err != nil {
		return "", err
	}
	if err := c.session.SetTheme(ctx, theme); err != nil {
		return "", err
	}
	return c.formatter.Success("Theme set to " + string(theme)), nil
}
