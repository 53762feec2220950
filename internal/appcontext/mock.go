package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/menuseed"
	"github.com/agentstation/menuseed/pkg/backend"
	"github.com/agentstation/menuseed/pkg/backend/memory"
	"github.com/agentstation/menuseed/pkg/catalog"
	"github.com/agentstation/menuseed/pkg/constants"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value backed by
// the embedded dataset and an in-memory backend.
type Mock struct {
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	SeedConfigFunc   func() SeedConfig
	CollectionsFunc  func() menuseed.Collections
	DatasetFunc      func(path string) (*catalog.Dataset, string, error)
	BackendFunc      func(dryRun bool) (backend.Backend, error)
	SeederFunc       func(b backend.Backend, opts ...menuseed.Option) (*menuseed.Seeder, error)
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

var _ Interface = (*Mock)(nil)

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// SeedConfig returns settings using the mock function or the defaults with
// throttling disabled.
func (m *Mock) SeedConfig() SeedConfig {
	if m.SeedConfigFunc != nil {
		return m.SeedConfigFunc()
	}
	return SeedConfig{
		Strategy:    constants.StrategyNone,
		Burst:       constants.DefaultBurst,
		Concurrency: constants.MaxConcurrentDeletes,
	}
}

// Collections returns identifiers using the mock function or the defaults.
func (m *Mock) Collections() menuseed.Collections {
	if m.CollectionsFunc != nil {
		return m.CollectionsFunc()
	}
	return menuseed.DefaultCollections()
}

// Dataset returns a dataset using the mock function or the embedded one.
func (m *Mock) Dataset(path string) (*catalog.Dataset, string, error) {
	if m.DatasetFunc != nil {
		return m.DatasetFunc(path)
	}
	ds, err := catalog.Default()
	return ds, "embedded", err
}

// Backend returns a backend using the mock function or a fresh memory backend.
func (m *Mock) Backend(dryRun bool) (backend.Backend, error) {
	if m.BackendFunc != nil {
		return m.BackendFunc(dryRun)
	}
	return memory.New(), nil
}

// Seeder returns a seeder using the mock function or menuseed.New.
func (m *Mock) Seeder(b backend.Backend, opts ...menuseed.Option) (*menuseed.Seeder, error) {
	if m.SeederFunc != nil {
		return m.SeederFunc(b, opts...)
	}
	opts = append([]menuseed.Option{menuseed.WithLogger(m.Logger())}, opts...)
	return menuseed.New(b, m.Collections(), opts...)
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
