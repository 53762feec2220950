// Package constants provides shared constants used throughout the menuseed codebase.
// This includes timeouts, limits, file permissions, and the default pacing values
// applied to backend writes.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the backend
	DefaultHTTPTimeout = 30 * time.Second

	// ImageFetchTimeout bounds a single source image download
	ImageFetchTimeout = 60 * time.Second

	// CommandTimeout bounds a whole seed or reset command
	CommandTimeout = 30 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// MaxConcurrentDeletes is the default fan-out used when clearing a collection
	MaxConcurrentDeletes = 10

	// DefaultPageSize is the number of documents or files listed per reset page
	DefaultPageSize = 100

	// MaxImageBytes caps the size of a downloaded source image (20 MiB)
	MaxImageBytes = 20 << 20
)

// Rate limiting constants
const (
	// DefaultWriteDelay is the pause after every create call
	DefaultWriteDelay = 500 * time.Millisecond

	// DefaultBurst is the token bucket burst size when the bucket strategy is used
	DefaultBurst = 1
)

// Strategy names accepted by the seed.strategy setting.
const (
	StrategyDelay  = "delay"
	StrategyBucket = "bucket"
	StrategyNone   = "none"
)
