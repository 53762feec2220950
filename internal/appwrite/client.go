// Package appwrite implements pkg/backend over the Appwrite REST API.
package appwrite

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/agentstation/menuseed/internal/transport"
	"github.com/agentstation/menuseed/pkg/backend"
	"github.com/agentstation/menuseed/pkg/errors"
)

// Config identifies the Appwrite project, database and bucket to talk to.
type Config struct {
	Endpoint   string // e.g. https://cloud.appwrite.io/v1
	ProjectID  string
	APIKey     string
	DatabaseID string
	BucketID   string
	Timeout    time.Duration
}

// Validate reports every missing field in one ConfigError.
func (c Config) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"endpoint", c.Endpoint},
		{"project_id", c.ProjectID},
		{"api_key", c.APIKey},
		{"database_id", c.DatabaseID},
		{"bucket_id", c.BucketID},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return errors.NewConfigError("appwrite", "missing "+strings.Join(missing, ", "), errors.ErrInvalidInput)
	}
	if _, err := url.ParseRequestURI(c.Endpoint); err != nil {
		return errors.NewConfigError("appwrite", fmt.Sprintf("invalid endpoint %q", c.Endpoint), err)
	}
	return nil
}

// Client talks to one Appwrite database and one storage bucket.
type Client struct {
	cfg       Config
	transport *transport.Client
	base      string
}

var _ backend.Backend = (*Client)(nil)

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	transport []transport.Option
}

// WithTransportOptions passes options through to the HTTP transport.
func WithTransportOptions(opts ...transport.Option) Option {
	return func(o *clientOptions) {
		o.transport = append(o.transport, opts...)
	}
}

// New validates cfg and returns a Client.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &clientOptions{}
	for _, opt := range opts {
		opt(o)
	}

	topts := []transport.Option{transport.WithSecret(cfg.APIKey)}
	if cfg.Timeout > 0 {
		topts = append(topts, transport.WithTimeout(cfg.Timeout))
	}
	topts = append(topts, o.transport...)

	return &Client{
		cfg:       cfg,
		transport: transport.New(&transport.ProjectAuth{ProjectID: cfg.ProjectID}, topts...),
		base:      strings.TrimRight(cfg.Endpoint, "/"),
	}, nil
}

// BucketID implements backend.Files.
func (c *Client) BucketID() string {
	return c.cfg.BucketID
}

// DatabaseID returns the configured database.
func (c *Client) DatabaseID() string {
	return c.cfg.DatabaseID
}

func (c *Client) documentsURL(collectionID string) string {
	return fmt.Sprintf("%s/databases/%s/collections/%s/documents",
		c.base, url.PathEscape(c.cfg.DatabaseID), url.PathEscape(collectionID))
}

func (c *Client) filesURL() string {
	return fmt.Sprintf("%s/storage/buckets/%s/files", c.base, url.PathEscape(c.cfg.BucketID))
}
