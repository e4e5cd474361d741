package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show subscription, history and settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			state, err := a.session.Engagement(ctx)
			if err != nil {
				return err
			}
			entries, err := a.session.History(ctx)
			if err != nil {
				return err
			}
			theme, err := a.session.Theme(ctx)
			if err != nil {
				return err
			}

			subscribed := "no"
			if state.Subscribed {
				subscribed = "yes"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Service:     %s\n", a.cfg.GetBaseURL())
			fmt.Fprintf(out, "Subscribed:  %s\n", subscribed)
			fmt.Fprintf(out, "Questions:   %d asked\n", state.AskCount)
			fmt.Fprintf(out, "History:     %d of %d kept\n", len(entries), a.session.HistoryLimit())
			fmt.Fprintf(out, "Theme:       %s\n", theme)
			fmt.Fprintf(out, "Data:        %s\n", a.cfg.GetRuntimePath())
			fmt.Fprintf(out, "Log:         %s\n", a.cfg.GetLogPath())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
