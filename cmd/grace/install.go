package main

import (
	"fmt"

	"github.com/graceguide/grace/internal/config"
	"github.com/graceguide/grace/internal/service/installer"
	"github.com/spf13/cobra"
)

var forceSetup bool

var setupCmd = &cobra.Command{
	Use:     "setup",
	Aliases: []string{"install"},
	Short:   "Interactive setup wizard",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := installer.RunWizard(installer.Options{
			RuntimePath: config.GetRuntimePath(),
			Force:       forceSetup,
			InitStorage: initStorage(cmd.Context()),
		})
		if err != nil {
			return err
		}

		fmt.Printf("\n✝ Setup complete. Settings saved to %s/.env\n", state.RuntimePath)
		fmt.Println("Run 'grace' to open the panel or 'grace ask \"...\"' for a single question.")
		return nil
	},
}

func init() {
	setupCmd.Flags().BoolVarP(&forceSetup, "force", "f", false, "overwrite an existing configuration")
	rootCmd.AddCommand(setupCmd)
}
