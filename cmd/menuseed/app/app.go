// Package app provides the application context and dependency management
// for the menuseed CLI. It centralizes configuration, logging and backend
// construction so commands only depend on appcontext.Interface.
package app

import (
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/menuseed"
	"github.com/agentstation/menuseed/internal/appcontext"
	"github.com/agentstation/menuseed/internal/appwrite"
	"github.com/agentstation/menuseed/internal/cmd/output"
	"github.com/agentstation/menuseed/pkg/backend"
	"github.com/agentstation/menuseed/pkg/backend/memory"
	"github.com/agentstation/menuseed/pkg/catalog"
	"github.com/agentstation/menuseed/pkg/errors"
)

// DryRunBucket names the in-memory bucket used by --dry-run.
const DryRunBucket = "dry-run"

// App represents the menuseed application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Appwrite client (lazy-initialized, singleton)
	mu     sync.RWMutex
	remote backend.Backend
}

var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
// Configuration is loaded from the default locations and can be replaced
// with functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig(os.Getenv("MENUSEED_CONFIG"))
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the requested output format, detecting one from the
// terminal when none was set.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// SeedConfig returns the merged seed settings.
func (a *App) SeedConfig() appcontext.SeedConfig {
	return a.config.Seed
}

// Collections returns the configured collection identifiers.
func (a *App) Collections() menuseed.Collections {
	return a.config.Collections
}

// Dataset loads the dataset at path. An empty path falls back to the
// configured seed.dataset and then to the embedded dataset.
func (a *App) Dataset(path string) (*catalog.Dataset, string, error) {
	if path == "" {
		path = a.config.Seed.Dataset
	}
	if path == "" {
		ds, err := catalog.Default()
		return ds, "embedded", err
	}
	ds, err := catalog.Load(path)
	if err != nil {
		return nil, path, err
	}
	return ds, path, nil
}

// Backend returns the Appwrite backend, creating it lazily. Dry runs get a
// fresh in-memory backend and need no appwrite settings.
func (a *App) Backend(dryRun bool) (backend.Backend, error) {
	if dryRun {
		return memory.New(memory.WithBucketID(DryRunBucket)), nil
	}

	a.mu.RLock()
	if a.remote != nil {
		b := a.remote
		a.mu.RUnlock()
		return b, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.remote != nil {
		return a.remote, nil
	}

	if err := a.config.RequireRemote(); err != nil {
		return nil, err
	}
	client, err := appwrite.New(a.config.Appwrite)
	if err != nil {
		return nil, errors.WrapResource("create", "appwrite client", "", err)
	}

	a.remote = client
	return client, nil
}

// Seeder creates a seeder over b using the app logger, the configured
// collections and the reset concurrency. opts are applied last. An in-memory
// backend falls back to the default collection identifiers.
func (a *App) Seeder(b backend.Backend, opts ...menuseed.Option) (*menuseed.Seeder, error) {
	collections := a.config.Collections
	if _, ok := b.(*memory.Backend); ok {
		collections = collections.WithDefaults()
	}

	base := []menuseed.Option{
		menuseed.WithLogger(a.logger),
		menuseed.WithStrictReset(a.config.Seed.StrictReset),
	}
	if a.config.Seed.Concurrency > 0 {
		base = append(base, menuseed.WithConcurrency(a.config.Seed.Concurrency))
	}
	return menuseed.New(b, collections, append(base, opts...)...)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithBackend sets the backend returned for non dry runs (useful for testing).
func WithBackend(b backend.Backend) Option {
	return func(a *App) error {
		a.remote = b
		return nil
	}
}
