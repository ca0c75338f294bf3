package ports

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means the word has no pronunciation clip: it is absent from
	// the dictionary, its article embeds no sound reference, or the resource
	// archive has no entry for the derived key.
	ErrNotFound = errors.New("audio not found")

	// ErrNotInitialized means one or both archive engines failed to load at
	// startup.
	ErrNotInitialized = errors.New("engines not initialized")
)

type AudioService interface {
	// Resolve returns the pronunciation clip for word together with its
	// lowercased file extension.
	Resolve(ctx context.Context, word string) ([]byte, string, error)
}
