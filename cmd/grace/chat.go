package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/graceguide/grace/internal/config"
	"github.com/graceguide/grace/internal/transport/cli"
	"github.com/graceguide/grace/internal/transport/tui"
	"github.com/graceguide/grace/pkg/log"
	"github.com/spf13/cobra"
)

var plainChat bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the interactive question panel",
	RunE:  runChat,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, chatCmd} {
		c.Flags().BoolVar(&plainChat, "plain", false, "line-by-line prompt instead of the full-screen panel")
	}
	rootCmd.AddCommand(chatCmd)
}

// runChat keeps logs in a file while the panel owns the terminal.
func runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	runtimePath := config.GetRuntimePath()
	if err := os.MkdirAll(runtimePath, 0755); err != nil {
		return fmt.Errorf("failed to create runtime dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(runtimePath, "grace.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	ctx, flushLog := setupLogger(ctx, f)
	defer flushLog()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	// Opening the panel is a fresh visit.
	if err := a.session.StartSession(ctx); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to start session")
	}

	log.FromCtx(ctx).Info().Msg("panel opened")
	return runPanel(ctx, a)
}

func runPanel(ctx context.Context, a *app) error {
	if !plainChat {
		return tui.Run(ctx, a.session, a.router)
	}

	rl, err := cli.NewReadLine(a.session, a.router, a.cfg.GetRuntimePath(), terminalWidth())
	if err != nil {
		return err
	}
	defer rl.Shutdown(ctx)

	if err := rl.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
