package repository

import (
	"context"

	"climate-dashboard/internal/domain/entity"
)

// UpdateRepository persists manual updates keyed by company name.
// Each company's updates are kept in insertion order.
type UpdateRepository interface {
	// Load returns the full update state. Missing state yields an empty map;
	// unparsable state yields an error wrapping entity.ErrCorruptState.
	Load(ctx context.Context) (map[string][]entity.ManualUpdate, error)
	// Append adds update as the last element of its company's sequence.
	Append(ctx context.Context, update entity.ManualUpdate) error
}
