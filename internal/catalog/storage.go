// Package catalog defines the store that raw score records are loaded from
// before a corpus is built. Implementations live in subpackages.
package catalog

import (
	"context"

	"partituras/internal/domain"
)

// DefaultKeyPrefix is the key prefix used for scores in key-value stores.
const DefaultKeyPrefix = "partitura:"

// Store persists raw score records.
type Store interface {
	// List returns every score in a stable order. That order becomes the
	// corpus row order.
	List(ctx context.Context) ([]domain.Document, error)

	// Put inserts or replaces scores by id.
	Put(ctx context.Context, docs ...domain.Document) error

	Close() error
}
