// Package reset provides the reset command, which clears the menu
// collections and the storage bucket without seeding.
package reset

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/menuseed"
	"github.com/agentstation/menuseed/internal/appcontext"
	"github.com/agentstation/menuseed/internal/cmd/output"
	"github.com/agentstation/menuseed/pkg/constants"
	"github.com/agentstation/menuseed/pkg/logging"
)

// NewCommand creates the reset command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		strict bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:     "reset",
		GroupID: "core",
		Short:   "Delete every document and file the seeder manages",
		Long: `Reset deletes all documents in the categories, customizations, menu and
menu_customizations collections, then every file in the storage bucket.

A target that cannot be cleared is reported and the remaining targets are
still cleared. With --strict the command then exits non-zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("strict") {
				strict = app.SeedConfig().StrictReset
			}

			b, err := app.Backend(dryRun)
			if err != nil {
				return err
			}
			seeder, err := app.Seeder(b, menuseed.WithStrictReset(strict))
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
			defer cancel()
			ctx = logging.WithLogger(ctx, app.Logger())
			reports, resetErr := seeder.Reset(ctx)

			format := output.Format(app.OutputFormat())
			var data any = output.NewResetViews(reports)
			if format == output.FormatTable {
				data = output.ResetTable(reports)
			}
			if err := output.Write(cmd.OutOrStdout(), format, data); err != nil {
				return err
			}
			return resetErr
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any target fails to clear (default from seed.strict_reset)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "clear an in-memory backend instead of Appwrite")

	return cmd
}
