package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/graceguide/grace/internal/service/history"
	"github.com/graceguide/grace/internal/service/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	historyClear  bool
	historyOutput string
)

var historyCmd = &cobra.Command{
	Use:   "history [n]",
	Short: "List recent questions, or show entry n in full",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			out := cmd.OutOrStdout()

			if historyClear {
				if err := a.session.ClearHistory(ctx); err != nil {
					return err
				}
				fmt.Fprintln(out, "History cleared.")
				return nil
			}

			theme := currentTheme(ctx, a.session)
			st := ui.NewStyles(theme)

			if len(args) == 1 {
				n, err := parseIndex(args[0])
				if err != nil {
					return err
				}
				entry, err := a.session.HistoryEntry(ctx, n)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Answer(st, entry, terminalWidth()))
				return nil
			}

			entries, err := a.session.History(ctx)
			if err != nil {
				return err
			}

			switch historyOutput {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(entries)
			case "", "text":
				fmt.Fprintln(out, ui.History(st, history.Render(entries), terminalWidth()))
				return nil
			default:
				return fmt.Errorf("unknown output format %q (want text, json or yaml)", historyOutput)
			}
		})
	},
}

func init() {
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete all saved questions")
	historyCmd.Flags().StringVarP(&historyOutput, "output", "o", "text", "output format: text, json or yaml")
	rootCmd.AddCommand(historyCmd)
}
