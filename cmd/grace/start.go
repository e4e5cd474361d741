package main

import (
	"os"

	"github.com/graceguide/grace/pkg/log"
	"github.com/graceguide/grace/pkg/srv"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the Telegram bot in the foreground",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context(), os.Stdout)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting grace")

		a, err := newApp(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("failed to initialize")
			return err
		}

		services, err := a.services(ctx)
		if err != nil {
			a.Close()
			logger.Error().Err(err).Msg("failed to initialize services")
			return err
		}

		if err := srv.Run(ctx, services); err != nil {
			logger.Error().Err(err).Msg("service error")
			return err
		}

		logger.Info().Msg("grace stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
