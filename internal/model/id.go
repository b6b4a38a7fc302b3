package model

import "github.com/google/uuid"

// NewID returns prefix-<uuid v4>, e.g. "cat-2f1c…". Every identifier in the
// app goes through here.
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
