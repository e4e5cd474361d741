package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var subscribeCmd = &cobra.Command{
	Use:   "subscribe [email]",
	Short: "Subscribe to the daily verse email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			if err := a.session.Subscribe(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Subscribed. God bless!")
			return nil
		})
	},
}

var laterCmd = &cobra.Command{
	Use:   "later",
	Short: "Snooze the subscribe reminder",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			if err := a.session.MaybeLater(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "We'll ask again later.")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(subscribeCmd, laterCmd)
}
