package refdata

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates the requested set has not been stored yet.
	ErrNotFound = errors.New("reference data not found")

	// ErrInvalidEntry indicates a stored entry that cannot be decoded.
	ErrInvalidEntry = errors.New("invalid reference data entry")
)

// Store persists reference data entries.
type Store interface {
	Get(ctx context.Context, key Key) (*Entry, error)
	Set(ctx context.Context, key Key, entry *Entry) error
	Delete(ctx context.Context, key Key) error
}
