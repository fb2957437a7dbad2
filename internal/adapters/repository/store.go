// Package repository owns the cached race dataset and its load lifecycle.
package repository

import (
	"context"

	"github.com/paddocklab/gridboss/internal/domain/model"
)

// Store provides read access to the loaded dataset. The dataset is loaded
// once, held in memory for the process lifetime, and refreshed only through
// an explicit Reload; there is no implicit cache invalidation.
type Store interface {
	// Load reads the dataset from its source. Calling Load on an already
	// loaded store is a no-op.
	Load(ctx context.Context) error

	// Rows returns the cached dataset. The slice is owned by the caller of
	// Load for the duration of a snapshot build; it is replaced wholesale,
	// never mutated, by Reload.
	Rows(ctx context.Context) []model.RaceEntry

	// Count returns the number of loaded rows.
	Count(ctx context.Context) int

	// Skipped returns the number of input rows dropped during parsing.
	Skipped(ctx context.Context) int

	// Reload discards the cached dataset and loads it again from the source.
	Reload(ctx context.Context) error
}
