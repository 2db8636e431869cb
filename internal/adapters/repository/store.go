// Package repository persists league snapshots.
package repository

import (
	"context"

	"github.com/okian/pitwall/internal/domain/model"
)

// Store provides read/write access to the latest snapshot of each league.
type Store interface {
	// Persist replaces both the summary list and the detail map of tag.
	Persist(ctx context.Context, tag string, entrants []model.Entrant, details map[string]model.Entrant) error

	// Summary returns the summary rows in roster order.
	// Returns ErrNotFound if no snapshot was ever written.
	Summary(ctx context.Context, tag string) ([]model.Summary, error)

	// Details returns the full entrant records keyed by remote id.
	Details(ctx context.Context, tag string) (map[string]model.Entrant, error)
}
