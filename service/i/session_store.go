package i

import (
	"context"
	"errors"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("no maze session")

// SessionStore keeps the hosted game of every player between requests.
type SessionStore interface {
	// Load returns the stored game record, or ErrSessionNotFound.
	Load(ctx context.Context, playerID uuid.UUID) (*game.Record, error)

	// Save stores the game record, replacing any previous one.
	Save(ctx context.Context, playerID uuid.UUID, record game.Record) error

	// Lock acquires the exclusive lock of a player's session.
	// The returned function releases it.
	Lock(ctx context.Context, playerID uuid.UUID) (func(), error)
}
