package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/graceguide/grace/internal/core"
)

const dateLayout = "2006-01-02"

type TodayCommand struct {
	session   Session
	formatter *ResponseFormatter
}

func NewTodayCommand(s Session) *TodayCommand {
	return &TodayCommand{session: s, formatter: NewResponseFormatter()}
}

func (c *TodayCommand) Name() string {
	return "today"
}

func (c *TodayCommand) Description() string {
	return "Show today's liturgical celebration"
}

func (c *TodayCommand) Execute(ctx context.Context, args []string) (string, error) {
	var date time.Time
	if len(args) > 0 {
		d, err := time.ParseInLocation(dateLayout, args[0], time.Local)
		if err != nil {
			return c.formatter.Usage("/today [YYYY-MM-DD]"), nil
		}
		date = d
	}

	day, err := c.session.Today(ctx, date)
	if err != nil {
		return "", err
	}
	return FormatLiturgicalDay(c.formatter, day), nil
}

// FormatLiturgicalDay renders a day as markdown.
func FormatLiturgicalDay(f *ResponseFormatter, day core.LiturgicalDay) string {
	title := day.Title()
	if title == "" {
		title = "No celebration found"
	}

	sections := []string{f.Info(title)}
	if day.Date != "" {
		sections = append(sections, f.Label("Date", day.Date))
	}
	if day.Season != "" {
		sections = append(sections, f.Label("Season", day.Season))
	}
	if len(day.Celebrations) > 1 {
		others := make([]string, 0, len(day.Celebrations)-1)
		for _, cel := range day.Celebrations[1:] {
			others = append(others, cel.Title)
		}
		sections = append(sections, "Also: "+strings.Join(others, "; ")+"\n")
	}
	return f.Combine(sections...)
}

type VerseCommand struct {
	session   Session
	formatter *ResponseFormatter
}

func NewVerseCommand(s Session) *VerseCommand {
	return &VerseCommand{session: s, formatter: NewResponseFormatter()}
}

func (c *VerseCommand) Name() string {
	return "verse"
}

func (c *VerseCommand) Description() string {
	return "Show the verse of the day"
}

func (c *VerseCommand) Execute(ctx context.Context, args []string) (string, error) {
	verse, err := c.session.Verse(ctx)
	if err != nil {
		return "", err
	}
	return FormatVerse(c.formatter, verse), nil
}

// FormatVerse renders a verse as markdown.
func FormatVerse(f *ResponseFormatter, v core.Verse) string {
	sections := []string{
		f.Info("Verse of the Day"),
		f.Quote(v.Text),
		fmt.Sprintf("**%s**\n", v.Reference),
	}
	if v.Explanation != "" {
		sections = append(sections, v.Explanation+"\n")
	}
	if len(v.CatechismReferences) > 0 {
		sections = append(sections, f.Label("Catechism", strings.Join(v.CatechismReferences, ", ")))
	}
	return f.Combine(sections...)
}
