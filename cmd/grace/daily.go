package main

import (
	"context"
	"fmt"
	"time"

	"github.com/graceguide/grace/internal/service/command"
	"github.com/graceguide/grace/internal/service/ui"
	"github.com/spf13/cobra"
)

var todayDate string

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show the liturgical day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		date := time.Now()
		if todayDate != "" {
			var err error
			if date, err = time.ParseInLocation(time.DateOnly, todayDate, time.Local); err != nil {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", todayDate)
			}
		}

		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			day, err := a.session.Today(ctx, date)
			if err != nil {
				return err
			}
			theme := currentTheme(ctx, a.session)
			md := command.FormatLiturgicalDay(command.NewResponseFormatter(), day)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Markdown(md, terminalWidth(), theme))
			return nil
		})
	},
}

var verseCmd = &cobra.Command{
	Use:   "verse",
	Short: "Show the verse of the day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			v, err := a.session.Verse(ctx)
			if err != nil {
				return err
			}
			theme := currentTheme(ctx, a.session)
			md := command.FormatVerse(command.NewResponseFormatter(), v)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Markdown(md, terminalWidth(), theme))
			return nil
		})
	},
}

func init() {
	todayCmd.Flags().StringVar(&todayDate, "date", "", "day to show, YYYY-MM-DD (default today)")
	rootCmd.AddCommand(todayCmd, verseCmd)
}
