package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/menuseed/cmd/menuseed/cmd/dataset"
	"github.com/agentstation/menuseed/cmd/menuseed/cmd/reset"
	"github.com/agentstation/menuseed/cmd/menuseed/cmd/seed"
	"github.com/agentstation/menuseed/cmd/menuseed/cmd/version"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(seed.NewCommand(a))
	rootCmd.AddCommand(reset.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(dataset.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(version.NewCommand(a))
}
