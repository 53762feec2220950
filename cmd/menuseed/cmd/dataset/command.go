// Package dataset provides commands that inspect the seed dataset without
// touching a backend.
package dataset

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/menuseed/internal/appcontext"
)

// NewCommand creates the dataset command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dataset",
		GroupID: "management",
		Short:   "Inspect the seed dataset",
		Long: `Inspect the dataset that seed writes.

Without --dataset the configured seed.dataset file is used, or the dataset
embedded in the binary when none is configured.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().String("dataset", "", "path to a YAML or JSON dataset file")

	cmd.AddCommand(NewShowCommand(app))
	cmd.AddCommand(NewValidateCommand(app))
	cmd.AddCommand(NewExportCommand(app))

	return cmd
}

// datasetPath returns the --dataset flag value.
func datasetPath(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("dataset")
	if err != nil {
		return ""
	}
	return path
}
