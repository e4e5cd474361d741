package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/graceguide/grace/internal/core"
	"github.com/graceguide/grace/internal/service/session"
	"github.com/graceguide/grace/internal/service/ui"
	"github.com/spf13/cobra"
)

var askMode string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask one question and print the answer",
	Example: `  grace ask "What is the Holy Trinity?"
  grace ask --mode bible "What does Scripture say about forgiveness?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			req := session.AskRequest{Question: strings.Join(args, " ")}
			if askMode != "" {
				mode, err := core.ParseSourceMode(askMode)
				if err != nil {
					return err
				}
				req.Mode = mode
			}

			res, err := a.session.Ask(ctx, req)
			if err != nil {
				return err
			}

			st := ui.NewStyles(currentTheme(ctx, a.session))
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Answer(st, res.Entry, terminalWidth()))
			if res.ShowPrompt {
				fmt.Fprintln(out)
				fmt.Fprintln(out, ui.SubscribeHint(st))
			}
			return nil
		})
	},
}

func init() {
	askCmd.Flags().StringVarP(&askMode, "mode", "m", "", "sources to draw from: both, bible or catechism (default: both)")
	rootCmd.AddCommand(askCmd)
}
