// Package ids generates backend-assigned unique identifiers.
package ids

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MaxLength is the longest identifier the backend accepts.
const MaxLength = 36

// Generator produces a fresh identifier for every call.
type Generator interface {
	New() string
}

// Func adapts a function to Generator.
type Func func() string

// New implements Generator.
func (f Func) New() string { return f() }

// UUID returns a Generator of random version 4 UUIDs with the hyphens
// stripped, leaving 32 lowercase hex characters that never start with an
// underscore and fit the backend's identifier rules.
func UUID() Generator {
	return Func(func() string {
		return strings.ReplaceAll(uuid.NewString(), "-", "")
	})
}

// Sequence returns a deterministic Generator yielding prefix-1, prefix-2, ...
// It is safe for concurrent use.
func Sequence(prefix string) Generator {
	var (
		mu sync.Mutex
		n  int
	)
	return Func(func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	})
}

// Valid reports whether id satisfies the backend's identifier rules:
// 1 to 36 characters from a-z, A-Z, 0-9, period, hyphen and underscore,
// not starting with a special character.
func Valid(id string) bool {
	if id == "" || len(id) > MaxLength {
		return false
	}
	for i, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.' || r == '-' || r == '_':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
