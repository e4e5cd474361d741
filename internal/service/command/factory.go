package command

import (
	"context"
	"time"

	"github.com/graceguide/grace/internal/core"
	"github.com/graceguide/grace/internal/service/share"
)

// Session is the slice of the session controller the commands drive.
type Session interface {
	History(ctx context.Context) ([]core.HistoryEntry, error)
	ClearHistory(ctx context.Context) error
	Share(ctx context.Context, n int, target share.Target, out string) (share.Result, error)

	Mode() core.SourceMode
	SetMode(mode core.SourceMode)
	Theme(ctx context.Context) (core.Theme, error)
	SetTheme(ctx context.Context, theme core.Theme) error

	Subscribe(ctx context.Context, email string) error
	MaybeLater(ctx context.Context) error

	Today(ctx context.Context, date time.Time) (core.LiturgicalDay, error)
	Verse(ctx context.Context) (core.Verse, error)
}

func NewCommands(s Session) []core.Command {
	cmds := []core.Command{
		NewHistoryCommand(s),
		NewClearCommand(s),
		NewShareCommand(s),
		NewModeCommand(s),
		NewThemeCommand(s),
		NewSubscribeCommand(s),
		NewLaterCommand(s),
		NewTodayCommand(s),
		NewVerseCommand(s),
	}
	return append(cmds, NewHelpCommand(cmds))
}
