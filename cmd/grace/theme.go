package main

import (
	"context"
	"fmt"

	"github.com/graceguide/grace/internal/core"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark]",
	Short:     "Show or set the color theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(core.ThemeLight), string(core.ThemeDark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			if len(args) == 1 {
				theme, err := core.ParseTheme(args[0])
				if err != nil {
					return err
				}
				if err := a.session.SetTheme(ctx, theme); err != nil {
					return err
				}
			}

			theme, err := a.session.Theme(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", theme)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
