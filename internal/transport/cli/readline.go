// Package cli is the line-mode question prompt for terminals where the full
// panel is unwanted.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/graceguide/grace/internal/core"
	"github.com/graceguide/grace/internal/service/session"
	"github.com/graceguide/grace/internal/service/ui"
	"github.com/graceguide/grace/pkg/log"
)

const (
	askPrompt   = "✝ "
	emailPrompt = "email> "
)

// Session is the part of the session controller the prompt drives.
type Session interface {
	Ask(ctx context.Context, req session.AskRequest) (session.AskResult, error)
	Subscribe(ctx context.Context, email string) error
	MaybeLater(ctx context.Context) error
	ClosePrompt(ctx context.Context)
	Theme(ctx context.Context) (core.Theme, error)
}

type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

type ReadLine struct {
	session Session
	router  core.CmdRouter
	in      lineReader
	out     io.Writer
	closer  io.Closer
	width   int
}

func NewReadLine(s Session, router core.CmdRouter, runtimePath string, width int) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(runtimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          askPrompt,
		HistoryFile:     filepath.Join(runtimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		session: s,
		router:  router,
		in:      rl,
		out:     rl.Stdout(),
		closer:  rl,
		width:   width,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	fmt.Fprintln(r.out, "Ask a question about the faith. /help lists commands, 'exit' quits.")

	for {
		// Check context before blocking read
		if err := ctx.Err(); err != nil {
			return err
		}

		line, done, err := r.read()
		if done || err != nil {
			return err
		}

		switch line = strings.TrimSpace(line); {
		case line == "":
			continue
		case line == "exit" || line == "quit":
			return nil
		case strings.HasPrefix(line, "/"):
			r.runCommand(ctx, line)
		default:
			if err := r.ask(ctx, line); err != nil {
				return err
			}
		}
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// read maps Ctrl+C on an empty line and Ctrl+D to a clean exit.
func (r *ReadLine) read() (string, bool, error) {
	line, err := r.in.Readline()
	switch {
	case err == nil:
		return line, false, nil
	case errors.Is(err, readline.ErrInterrupt):
		if len(line) == 0 {
			return "", true, nil
		}
		return "", false, nil
	case errors.Is(err, io.EOF):
		return "", true, nil
	default:
		return "", true, err
	}
}

func (r *ReadLine) styles(ctx context.Context) ui.Styles {
	theme, _ := r.session.Theme(ctx)
	return ui.NewStyles(theme)
}

func (r *ReadLine) runCommand(ctx context.Context, line string) {
	resp, _ := r.router.Execute(ctx, line)
	fmt.Fprintln(r.out, ui.Markdown(resp, r.width, r.styles(ctx).Theme))
}

func (r *ReadLine) ask(ctx context.Context, question string) error {
	fmt.Fprintln(r.out, "Searching Scripture and the Catechism...")

	res, err := r.session.Ask(ctx, session.AskRequest{Question: question})
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("ask failed")
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return nil
	}

	st := r.styles(ctx)
	fmt.Fprintln(r.out, ui.Answer(st, res.Entry, r.width))
	fmt.Fprintln(r.out)

	if res.ShowPrompt {
		return r.promptSubscribe(ctx, st)
	}
	return nil
}

// promptSubscribe is the line-mode subscribe modal: a failed subscribe asks
// again, an empty line closes, "later" snoozes.
func (r *ReadLine) promptSubscribe(ctx context.Context, st ui.Styles) error {
	fmt.Fprintln(r.out, ui.Prompt(st, "Enter your email, 'later' to snooze, or an empty line to close.", "", r.width))

	r.in.SetPrompt(emailPrompt)
	defer r.in.SetPrompt(askPrompt)

	for {
		line, done, err := r.read()
		if err != nil {
			return err
		}

		email := strings.TrimSpace(line)
		switch {
		case done || email == "":
			r.session.ClosePrompt(ctx)
			return nil
		case strings.EqualFold(email, "later"):
			if err := r.session.MaybeLater(ctx); err != nil {
				fmt.Fprintf(r.out, "Error: %v\n", err)
			}
			return nil
		}

		if err := r.session.Subscribe(ctx, email); err != nil {
			fmt.Fprintln(r.out, st.Error.Render("Subscription failed: "+err.Error()))
			continue
		}
		fmt.Fprintln(r.out, st.Success.Render("Subscribed. God bless!"))
		return nil
	}
}
