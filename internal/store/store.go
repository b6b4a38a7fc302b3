// Package store defines the key/value port the session and checklist
// components persist through. Adapters live in the sub-packages.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// Well-known record keys.
const (
	KeyUser      = "user"
	KeyChecklist = "packingChecklist"
	KeyTheme     = "theme"
)

// ErrInvalidKey is returned by adapters for keys outside ValidKey.
var ErrInvalidKey = errors.New("store: invalid key")

// Store loads and saves opaque records by key. Load reports ok=false for a
// missing key; Delete of a missing key is not an error.
type Store interface {
	Load(ctx context.Context, key string) (data []byte, ok bool, err error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidKey rejects keys that would be unsafe as file names.
func ValidKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
