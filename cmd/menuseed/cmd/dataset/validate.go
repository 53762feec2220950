package dataset

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/menuseed/internal/appcontext"
	"github.com/agentstation/menuseed/internal/cmd/alerts"
	"github.com/agentstation/menuseed/internal/cmd/output"
)

// NewValidateCommand creates the dataset validate subcommand.
func NewValidateCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check dataset names, prices, ratings and references",
		Long: `Validate reports every structural problem in the dataset: empty or
duplicate names, negative prices, ratings outside 0..5, and menu items that
reference unknown categories or customizations.

Seeding does not require a valid dataset; unresolved references are skipped
at seed time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, source, err := app.Dataset(datasetPath(cmd))
			if err != nil {
				return err
			}
			if err := ds.Validate(); err != nil {
				return fmt.Errorf("dataset %s is invalid:\n%w", source, err)
			}

			c := ds.Counts()
			alert := alerts.NewSuccess(fmt.Sprintf("dataset %s is valid: %d categories, %d customizations, %d menu items, %d links",
				source, c.Categories, c.Customizations, c.MenuItems, c.Links))
			return alerts.NewFormatWriter(cmd.OutOrStdout(), output.Format(app.OutputFormat())).WriteAlert(alert)
		},
	}
}
