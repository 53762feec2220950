package seed

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/menuseed/internal/appcontext"
)

// Options are the seed command settings after flags have been merged over
// the configured seed section.
type Options struct {
	Dataset     string
	Delay       time.Duration
	Strategy    string
	Burst       int
	StrictReset bool
	SkipReset   bool
	DryRun      bool
	Report      string
}

// addFlags registers the seed flags on cmd.
func addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("dataset", "", "path to a YAML or JSON dataset file (default is the embedded dataset)")
	flags.Duration("delay", 0, "pause after every create call (default from seed.delay, 500ms)")
	flags.String("strategy", "", "throttle strategy: delay, bucket, none (default from seed.strategy)")
	flags.Int("burst", 0, "token bucket burst size for --strategy=bucket")
	flags.Bool("strict-reset", false, "abort before creating anything when the reset fails")
	flags.Bool("skip-reset", false, "seed without clearing the collections and bucket first")
	flags.Bool("dry-run", false, "seed an in-memory backend instead of Appwrite (images are still fetched)")
	flags.String("report", "", "write a markdown report of the run to this file")
}

// parseOptions merges changed flags over the app seed configuration.
func parseOptions(cmd *cobra.Command, app appcontext.Interface) (*Options, error) {
	cfg := app.SeedConfig()
	opts := &Options{
		Dataset:     cfg.Dataset,
		Delay:       cfg.Delay,
		Strategy:    cfg.Strategy,
		Burst:       cfg.Burst,
		StrictReset: cfg.StrictReset,
	}

	flags := cmd.Flags()
	var err error
	if flags.Changed("dataset") {
		if opts.Dataset, err = flags.GetString("dataset"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("delay") {
		if opts.Delay, err = flags.GetDuration("delay"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("strategy") {
		if opts.Strategy, err = flags.GetString("strategy"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("burst") {
		if opts.Burst, err = flags.GetInt("burst"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("strict-reset") {
		if opts.StrictReset, err = flags.GetBool("strict-reset"); err != nil {
			return nil, err
		}
	}
	if opts.SkipReset, err = flags.GetBool("skip-reset"); err != nil {
		return nil, err
	}
	if opts.DryRun, err = flags.GetBool("dry-run"); err != nil {
		return nil, err
	}
	if opts.Report, err = flags.GetString("report"); err != nil {
		return nil, err
	}
	return opts, nil
}
