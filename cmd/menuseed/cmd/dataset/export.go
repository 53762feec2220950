package dataset

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/menuseed/internal/appcontext"
)

// NewExportCommand creates the dataset export subcommand. It writes the
// dataset as YAML so it can be edited and passed back with --dataset.
func NewExportCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "export",
		Short:   "Write the dataset as YAML",
		Args:    cobra.NoArgs,
		Example: `  menuseed dataset export > menu.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, _, err := app.Dataset(datasetPath(cmd))
			if err != nil {
				return err
			}
			data, err := ds.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
