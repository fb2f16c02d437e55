package storage

import (
	"context"

	"github.com/goserg/rosterserver/internal/domain"
)

// PlayerStorage is the durable player table.
//
// Implementations enforce name uniqueness on the normalized name at write time
// and report a collision as domain.ErrDuplicateName. Missing ids are reported
// as domain.ErrNotFound.
type PlayerStorage interface {
	ListPlayers(ctx context.Context) ([]domain.Player, error)
	Get(ctx context.Context, id int64) (domain.Player, error)
	Create(ctx context.Context, player domain.Player) (domain.Player, error)
	// Update loads the player, lets apply modify it and writes the result,
	// all in one step with respect to other writers.
	Update(ctx context.Context, id int64, apply func(*domain.Player)) (domain.Player, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	Close() error
}
