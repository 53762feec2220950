// Package appcontext provides the shared application context interface
// used by all commands. Commands depend on this interface rather than on
// the concrete App so they can be tested with Mock.
package appcontext

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/menuseed"
	"github.com/agentstation/menuseed/pkg/backend"
	"github.com/agentstation/menuseed/pkg/catalog"
)

// SeedConfig is the seed section of the configuration after defaults,
// config file and environment have been merged. Command flags override it.
type SeedConfig struct {
	Delay       time.Duration
	Strategy    string
	Burst       int
	Dataset     string
	StrictReset bool
	Concurrency int
}

// Interface defines the application context interface that commands need.
// The App struct from cmd/menuseed/app implements it.
type Interface interface {
	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table).
	OutputFormat() string

	// SeedConfig returns the merged seed settings.
	SeedConfig() SeedConfig

	// Collections returns the configured collection identifiers.
	Collections() menuseed.Collections

	// Dataset loads the dataset at path, or the configured or embedded one
	// when path is empty. It also returns a description of the source.
	Dataset(path string) (*catalog.Dataset, string, error)

	// Backend returns the Appwrite backend, or an in-memory one for dry runs.
	// Only the Appwrite backend requires the appwrite.* settings.
	Backend(dryRun bool) (backend.Backend, error)

	// Seeder creates a seeder over b with the app logger and collections.
	Seeder(b backend.Backend, opts ...menuseed.Option) (*menuseed.Seeder, error)

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
