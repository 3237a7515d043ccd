package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// LeaderboardEntry is a player ranked by solved mazes.
type LeaderboardEntry struct {
	PlayerID string
	Username string
	Solved   int
}

// MazeSessionManager hosts one maze game per player.
type MazeSessionManager interface {
	Start(ctx context.Context, playerID uuid.UUID, dims game.Dimensions) (game.State, error)
	State(ctx context.Context, playerID uuid.UUID) (game.State, error)
	Render(ctx context.Context, playerID uuid.UUID) (string, error)
	Move(ctx context.Context, playerID uuid.UUID, d maze.Direction) (game.MoveResult, error)
	Drag(ctx context.Context, playerID uuid.UUID, dx, dy, cellSize float64) (game.MoveResult, error)
	Resize(ctx context.Context, playerID uuid.UUID, dims game.Dimensions) (game.State, error)
	FitViewport(ctx context.Context, playerID uuid.UUID, width, height int) (game.State, error)
	Runs(ctx context.Context, playerID uuid.UUID, limit int64) ([]game.SolvedRun, error)
	Leaderboard(ctx context.Context, n int64) ([]LeaderboardEntry, error)
}
