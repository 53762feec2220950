// Package seed provides the seed command, which resets the backend and
// rebuilds it from the dataset.
package seed

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/menuseed"
	"github.com/agentstation/menuseed/internal/appcontext"
	"github.com/agentstation/menuseed/internal/cmd/alerts"
	"github.com/agentstation/menuseed/internal/cmd/output"
	"github.com/agentstation/menuseed/internal/report"
	"github.com/agentstation/menuseed/pkg/backend"
	"github.com/agentstation/menuseed/pkg/constants"
	"github.com/agentstation/menuseed/pkg/logging"
	"github.com/agentstation/menuseed/pkg/throttle"
)

// NewCommand creates the seed command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "seed",
		GroupID: "core",
		Short:   "Reset the backend and seed the menu dataset",
		Long: `Seed clears the menu collections and the storage bucket, then creates
categories, customizations and menu items from the dataset. Every menu item
image is downloaded, uploaded to the bucket, and referenced by its view URL.

Menu items whose category is unknown or whose image cannot be re-hosted are
skipped, as are links to unknown customizations. Any other failure stops the
run; documents already created are kept.`,
		Args: cobra.NoArgs,
		Example: `  menuseed seed                          # Seed the embedded dataset
  menuseed seed --dataset menu.yaml      # Seed a custom dataset
  menuseed seed --dry-run -o json        # Seed an in-memory backend
  menuseed seed --strategy bucket --delay 200ms --burst 5
  menuseed seed --report seed-report.md`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := parseOptions(cmd, app)
			if err != nil {
				return err
			}
			return run(cmd, app, opts)
		},
	}

	addFlags(cmd)

	return cmd
}

// run performs one seed run through a trigger and prints its result.
func run(cmd *cobra.Command, app appcontext.Interface, opts *Options) error {
	logger := app.Logger()

	ds, source, err := app.Dataset(opts.Dataset)
	if err != nil {
		return err
	}

	limiter, err := throttle.New(opts.Strategy, opts.Delay, opts.Burst)
	if err != nil {
		return err
	}

	b, err := app.Backend(opts.DryRun)
	if err != nil {
		return err
	}

	seeder, err := app.Seeder(b,
		menuseed.WithLimiter(limiter),
		menuseed.WithStrictReset(opts.StrictReset),
		menuseed.WithSkipReset(opts.SkipReset),
	)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("dataset", source).
		Str("strategy", opts.Strategy).
		Dur("delay", opts.Delay).
		Bool("dry_run", opts.DryRun).
		Msg("Seeding")

	ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
	defer cancel()
	ctx = logging.WithLogger(ctx, logger)
	trigger := menuseed.NewTrigger(seeder, ds)
	done, _ := trigger.Press(ctx)
	<-done
	result, runErr := trigger.Last()
	if result == nil {
		return runErr
	}

	if err := writeResult(cmd.OutOrStdout(), output.Format(app.OutputFormat()), result, opts.DryRun); err != nil {
		return err
	}

	if opts.Report != "" {
		err := report.WriteFile(opts.Report, result, report.Options{
			Dataset: source,
			Backend: describe(b, opts.DryRun),
			DryRun:  opts.DryRun,
		})
		if err != nil {
			logger.Error().Err(err).Str("path", opts.Report).Msg("Failed to write report")
			if runErr == nil {
				return err
			}
		} else {
			logger.Info().Str("path", opts.Report).Msg("Wrote seed report")
		}
	}

	return runErr
}

// writeResult writes the run result in the requested format. Tables show the
// per-collection counts, failed resets and skipped items if any, then a
// summary line.
func writeResult(w io.Writer, format output.Format, result *menuseed.Result, dryRun bool) error {
	if format != output.FormatTable {
		return output.Write(w, format, output.NewRunView(result, dryRun))
	}

	if err := output.Write(w, format, output.RunTable(result)); err != nil {
		return err
	}
	if failed := result.ResetFailures(); len(failed) > 0 {
		fmt.Fprintln(w)
		if err := output.Write(w, format, output.ResetTable(failed)); err != nil {
			return err
		}
	}
	if len(result.Skipped) > 0 {
		fmt.Fprintln(w)
		if err := output.Write(w, format, output.SkipTable(result.Skipped)); err != nil {
			return err
		}
	}
	fmt.Fprintln(w)
	return alerts.NewFormatWriter(w, format).WriteAlert(summaryAlert(result))
}

// summaryAlert is a warning when anything was skipped or not cleared.
func summaryAlert(result *menuseed.Result) *alerts.Alert {
	if len(result.Skipped) > 0 || len(result.ResetFailures()) > 0 {
		return alerts.NewWarning(result.Summary())
	}
	return alerts.NewSuccess(result.Summary())
}

// describe names the backend for the report header.
func describe(b backend.Backend, dryRun bool) string {
	if dryRun {
		return "in-memory bucket " + b.BucketID()
	}
	return "appwrite bucket " + b.BucketID()
}
