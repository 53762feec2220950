// Package menuseed rebuilds a restaurant catalog in a hosted document
// database and blob store. A seed run clears four collections and the image
// bucket, then recreates categories, customizations, menu items with
// re-hosted images, and the links between menu items and customizations.
package menuseed

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/menuseed/pkg/backend"
	"github.com/agentstation/menuseed/pkg/errors"
	"github.com/agentstation/menuseed/pkg/logging"
	"github.com/agentstation/menuseed/pkg/rehost"
)

// Collections holds the identifiers of the four collections a run writes.
type Collections struct {
	Categories         string `json:"categories" yaml:"categories"`
	Customizations     string `json:"customizations" yaml:"customizations"`
	Menu               string `json:"menu" yaml:"menu"`
	MenuCustomizations string `json:"menu_customizations" yaml:"menu_customizations"`
}

// DefaultCollections uses the collection names as identifiers, which is how
// the in-memory backend and a freshly provisioned project are usually set up.
func DefaultCollections() Collections {
	return Collections{
		Categories:         "categories",
		Customizations:     "customizations",
		Menu:               "menu",
		MenuCustomizations: "menu_customizations",
	}
}

// WithDefaults fills empty identifiers from DefaultCollections.
func (c Collections) WithDefaults() Collections {
	d := DefaultCollections()
	if c.Categories == "" {
		c.Categories = d.Categories
	}
	if c.Customizations == "" {
		c.Customizations = d.Customizations
	}
	if c.Menu == "" {
		c.Menu = d.Menu
	}
	if c.MenuCustomizations == "" {
		c.MenuCustomizations = d.MenuCustomizations
	}
	return c
}

// Validate reports every empty identifier.
func (c Collections) Validate() error {
	var missing []string
	if c.Categories == "" {
		missing = append(missing, "categories")
	}
	if c.Customizations == "" {
		missing = append(missing, "customizations")
	}
	if c.Menu == "" {
		missing = append(missing, "menu")
	}
	if c.MenuCustomizations == "" {
		missing = append(missing, "menu_customizations")
	}
	if len(missing) > 0 {
		return errors.NewConfigError("collections", "missing "+strings.Join(missing, ", "), errors.ErrInvalidInput)
	}
	return nil
}

// ImageHost re-hosts a source image and returns its view URL.
// *rehost.Rehoster satisfies it.
type ImageHost interface {
	URL(ctx context.Context, sourceURL string) (string, error)
}

// Seeder runs resets and seeds against one backend.
type Seeder struct {
	backend     backend.Backend
	collections Collections
	config      *config
	images      ImageHost

	// Event hooks
	hooks *hooks
}

// New creates a Seeder writing to b.
func New(b backend.Backend, collections Collections, opts ...Option) (*Seeder, error) {
	if b == nil {
		return nil, errors.NewConfigError("seeder", "backend is required", errors.ErrInvalidInput)
	}
	if err := collections.Validate(); err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	if err := cfg.apply(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	s := &Seeder{
		backend:     b,
		collections: collections,
		config:      cfg,
		images:      cfg.images,
		hooks:       newHooks(),
	}
	if s.images == nil {
		s.images = rehost.New(b, rehost.WithIDs(cfg.ids), rehost.WithLimiter(cfg.limiter))
	}
	return s, nil
}

// Collections returns the collection identifiers the Seeder writes.
func (s *Seeder) Collections() Collections {
	return s.collections
}

// OnCreated registers a callback for every created document.
func (s *Seeder) OnCreated(fn CreatedHook) {
	s.hooks.OnCreated(fn)
}

// OnSkipped registers a callback for every skipped menu item or link.
func (s *Seeder) OnSkipped(fn SkippedHook) {
	s.hooks.OnSkipped(fn)
}

// OnReset registers a callback for every finished reset target.
func (s *Seeder) OnReset(fn ResetHook) {
	s.hooks.OnReset(fn)
}

func (s *Seeder) logger(ctx context.Context) *zerolog.Logger {
	if s.config.logger != nil {
		return s.config.logger
	}
	return logging.FromContext(ctx)
}
