package storage

import (
	"context"

	"github.com/mcoot/benched/internal/model"
)

// Storage is the durable mirror of the roster. It holds no business rules:
// the in-memory roster is the source of truth and every save is a full overwrite.
type Storage interface {
	// LoadRoster returns the persisted players in stored order.
	// A roster that was never saved is not an error and yields an empty slice.
	// Unreadable or malformed data returns an error wrapping model.ErrCorruptRoster.
	LoadRoster(ctx context.Context) ([]model.Player, error)

	// SaveRoster replaces the persisted roster with players
	SaveRoster(ctx context.Context, players []model.Player) error

	// Close releases any resources held by the backend
	Close() error
}
