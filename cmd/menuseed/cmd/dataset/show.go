package dataset

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/menuseed/internal/appcontext"
	"github.com/agentstation/menuseed/internal/cmd/output"
	"github.com/agentstation/menuseed/pkg/catalog"
	"github.com/agentstation/menuseed/pkg/errors"
)

// Sections accepted by dataset show.
const (
	SectionCategories     = "categories"
	SectionCustomizations = "customizations"
	SectionMenu           = "menu"
)

// NewShowCommand creates the dataset show subcommand.
func NewShowCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:       "show [categories|customizations|menu]",
		Short:     "Show dataset entries",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{SectionCategories, SectionCustomizations, SectionMenu},
		Example: `  menuseed dataset show                 # Counts per kind
  menuseed dataset show menu            # Menu items with their links
  menuseed dataset show categories -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, source, err := app.Dataset(datasetPath(cmd))
			if err != nil {
				return err
			}
			app.Logger().Debug().Str("source", source).Msg("Loaded dataset")

			section := ""
			if len(args) == 1 {
				section = args[0]
			}
			return show(cmd, output.Format(app.OutputFormat()), ds, section)
		},
	}
}

// show writes one section of ds, or the counts when section is empty.
func show(cmd *cobra.Command, format output.Format, ds *catalog.Dataset, section string) error {
	var table output.Data
	var raw any

	switch section {
	case "":
		table, raw = output.CountsTable(ds.Counts()), ds.Counts()
	case SectionCategories:
		table, raw = output.CategoriesTable(ds.Categories), ds.Categories
	case SectionCustomizations:
		table, raw = output.CustomizationsTable(ds.Customizations), ds.Customizations
	case SectionMenu:
		table, raw = output.MenuTable(ds.Menu), ds.Menu
	default:
		return errors.NewValidationError("section", section,
			"must be one of: "+SectionCategories+", "+SectionCustomizations+", "+SectionMenu)
	}

	if format == output.FormatTable {
		return output.Write(cmd.OutOrStdout(), format, table)
	}
	return output.Write(cmd.OutOrStdout(), format, raw)
}
