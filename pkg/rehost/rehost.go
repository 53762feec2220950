// Package rehost copies a remote image into the backend's blob store and
// returns the stored copy's view URL.
package rehost

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/agentstation/utc"
	"github.com/gabriel-vasile/mimetype"

	"github.com/agentstation/menuseed/internal/transport"
	"github.com/agentstation/menuseed/pkg/backend"
	"github.com/agentstation/menuseed/pkg/constants"
	"github.com/agentstation/menuseed/pkg/errors"
	"github.com/agentstation/menuseed/pkg/ids"
	"github.com/agentstation/menuseed/pkg/logging"
	"github.com/agentstation/menuseed/pkg/throttle"
)

// Rehoster fetches images and uploads them to a bucket.
type Rehoster struct {
	files    backend.Files
	fetcher  *transport.Client
	ids      ids.Generator
	limiter  throttle.Limiter
	maxBytes int64
	now      func() utc.Time
}

// Option configures a Rehoster.
type Option func(*Rehoster)

// WithIDs sets the file identifier generator.
func WithIDs(gen ids.Generator) Option {
	return func(r *Rehoster) {
		r.ids = gen
	}
}

// WithLimiter sets the pause applied after each upload.
func WithLimiter(l throttle.Limiter) Option {
	return func(r *Rehoster) {
		r.limiter = l
	}
}

// WithFetcher replaces the client used to download source images.
func WithFetcher(c *transport.Client) Option {
	return func(r *Rehoster) {
		r.fetcher = c
	}
}

// WithMaxBytes caps the size of a downloaded image.
func WithMaxBytes(n int64) Option {
	return func(r *Rehoster) {
		r.maxBytes = n
	}
}

// WithClock overrides the time source used for fallback file names.
func WithClock(now func() utc.Time) Option {
	return func(r *Rehoster) {
		r.now = now
	}
}

// New creates a Rehoster that uploads into files.
func New(files backend.Files, opts ...Option) *Rehoster {
	r := &Rehoster{
		files: files,
		fetcher: transport.New(&transport.NoAuth{},
			transport.WithTimeout(constants.ImageFetchTimeout),
			transport.WithHeader("Accept", "image/*")),
		ids:      ids.UUID(),
		limiter:  throttle.Delay(constants.DefaultWriteDelay),
		maxBytes: constants.MaxImageBytes,
		now:      utc.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Image is the result of a successful re-host.
type Image struct {
	FileID   string
	Name     string
	MimeType string
	Size     int64
	Source   string
	ViewURL  string
}

// Rehost fetches sourceURL, uploads it as a new file, waits on the limiter
// and returns the stored copy. Any fetch or upload failure is returned; the
// caller decides whether to skip the owning item.
func (r *Rehoster) Rehost(ctx context.Context, sourceURL string) (*Image, error) {
	logger := logging.FromContext(ctx)

	data, contentType, err := r.fetch(ctx, sourceURL)
	if err != nil {
		return nil, err
	}

	in := backend.FileInput{
		Name:     FileName(sourceURL, r.now()),
		MimeType: DetectMimeType(data, contentType),
		Data:     data,
		Source:   sourceURL,
	}

	fileID := r.ids.New()
	f, err := r.files.CreateFile(ctx, fileID, in)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("file_id", f.ID).
		Str("name", in.Name).
		Str("mime_type", in.MimeType).
		Int64("size", in.Size()).
		Msg("Uploaded image")

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	return &Image{
		FileID:   f.ID,
		Name:     in.Name,
		MimeType: in.MimeType,
		Size:     in.Size(),
		Source:   sourceURL,
		ViewURL:  r.files.FileViewURL(f.ID),
	}, nil
}

// URL is Rehost for callers that only need the view URL.
func (r *Rehoster) URL(ctx context.Context, sourceURL string) (string, error) {
	img, err := r.Rehost(ctx, sourceURL)
	if err != nil {
		return "", err
	}
	return img.ViewURL, nil
}

func (r *Rehoster) fetch(ctx context.Context, sourceURL string) ([]byte, string, error) {
	u, err := url.Parse(sourceURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, "", errors.NewValidationError("image_url", sourceURL, "not an http(s) URL")
	}

	resp, err := r.fetcher.Get(ctx, sourceURL)
	if err != nil {
		return nil, "", errors.WrapIO("download", sourceURL, err)
	}
	contentType := resp.Header.Get("Content-Type")

	data, err := transport.ReadBody(resp, r.maxBytes)
	if err != nil {
		return nil, "", errors.WrapIO("download", sourceURL, err)
	}
	if len(data) == 0 {
		return nil, "", errors.NewIOError("download", sourceURL, fmt.Errorf("empty body"))
	}
	return data, contentType, nil
}

// FileName derives an upload name from the last path segment of sourceURL,
// falling back to a timestamp-based name when the URL has none.
func FileName(sourceURL string, now utc.Time) string {
	if u, err := url.Parse(sourceURL); err == nil {
		name := path.Base(u.Path)
		if name != "" && name != "." && name != "/" {
			if unescaped, err := url.PathUnescape(name); err == nil {
				name = unescaped
			}
			return name
		}
	}
	return fmt.Sprintf("file-%d.jpg", now.Time.UnixMilli())
}

// DetectMimeType sniffs data, falling back to the server-declared content
// type when the bytes are not recognized.
func DetectMimeType(data []byte, declared string) string {
	detected := mimetype.Detect(data)
	if detected != nil && !detected.Is("application/octet-stream") && !detected.Is("text/plain") {
		return detected.String()
	}
	if declared = strings.TrimSpace(declared); declared != "" {
		return declared
	}
	return detected.String()
}
