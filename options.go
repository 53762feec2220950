package menuseed

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agentstation/menuseed/pkg/constants"
	"github.com/agentstation/menuseed/pkg/ids"
	"github.com/agentstation/menuseed/pkg/throttle"
)

// Option is a function that configures a Seeder
type Option func(*config) error

// config holds the Seeder's tunables
type config struct {
	limiter     throttle.Limiter
	ids         ids.Generator
	images      ImageHost
	logger      *zerolog.Logger
	concurrency int
	pageSize    int
	strictReset bool
	skipReset   bool
}

func defaultConfig() *config {
	return &config{
		limiter:     throttle.Delay(constants.DefaultWriteDelay),
		ids:         ids.UUID(),
		concurrency: constants.MaxConcurrentDeletes,
		pageSize:    constants.DefaultPageSize,
	}
}

func (c *config) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// WithLimiter configures the pause applied after every create call.
// Use throttle.None() in tests.
func WithLimiter(l throttle.Limiter) Option {
	return func(c *config) error {
		if l == nil {
			return fmt.Errorf("limiter must not be nil")
		}
		c.limiter = l
		return nil
	}
}

// WithIDs configures the identifier generator for documents and files.
func WithIDs(gen ids.Generator) Option {
	return func(c *config) error {
		if gen == nil {
			return fmt.Errorf("id generator must not be nil")
		}
		c.ids = gen
		return nil
	}
}

// WithImageHost replaces the default image re-hoster.
func WithImageHost(h ImageHost) Option {
	return func(c *config) error {
		c.images = h
		return nil
	}
}

// WithLogger configures the logger; by default the context logger is used.
func WithLogger(l *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

// WithConcurrency bounds the number of parallel deletes during a reset.
func WithConcurrency(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return fmt.Errorf("concurrency must be positive, got %d", n)
		}
		c.concurrency = n
		return nil
	}
}

// WithPageSize sets how many documents or files a reset lists at a time.
func WithPageSize(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return fmt.Errorf("page size must be positive, got %d", n)
		}
		c.pageSize = n
		return nil
	}
}

// WithStrictReset makes a failed reset abort the run before anything is
// created. By default a failed reset is logged and seeding continues.
func WithStrictReset(enabled bool) Option {
	return func(c *config) error {
		c.strictReset = enabled
		return nil
	}
}

// WithSkipReset seeds without clearing first.
func WithSkipReset(enabled bool) Option {
	return func(c *config) error {
		c.skipReset = enabled
		return nil
	}
}
