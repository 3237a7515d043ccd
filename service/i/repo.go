package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/identity"
	"github.com/google/uuid"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	// If the user already exists, it updates the record. Otherwise, it creates a new one.
	Save(user *identity.User) error

	// ByID retrieves a user by their unique ID.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*identity.User, error)

	// ByUsername retrieves a user by their username.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByUsername(username string) (*identity.User, error)
}

// RunRepo stores the mazes players walked to the exit.
type RunRepo interface {
	// Add records a solved maze for a player.
	Add(ctx context.Context, playerID uuid.UUID, run game.SolvedRun) error

	// ByPlayer returns the most recent runs of a player, newest first.
	ByPlayer(ctx context.Context, playerID uuid.UUID, limit int64) ([]game.SolvedRun, error)
}
