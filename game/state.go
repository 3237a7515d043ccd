package game

import (
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
)

// State is a read-only copy of a game for renderers.
type State struct {
	Dims    Dimensions        // Maze dimensions.
	Cells   [][]maze.Cell     // Cells indexed by row then column.
	Player  maze.CellPosition // Player position.
	Exit    maze.CellPosition // Exit position.
	Seed    int64             // Seed the maze was carved with.
	Moves   int               // Accepted moves in the current maze.
	Solved  int               // Mazes solved so far.
	Version int64             // State version.
}

// MoveResult describes the outcome of a single move request.
type MoveResult struct {
	Direction maze.Direction    // Requested direction.
	From      maze.CellPosition // Position before the move.
	Player    maze.CellPosition // Position after the move, the new start when Solved.
	Moved     bool              // False when a wall blocked the move.
	Solved    bool              // True when the move reached the exit.
	Run       *SolvedRun        // Summary of the solved maze, set when Solved.
}

// SolvedRun summarizes a maze that was walked to its exit.
type SolvedRun struct {
	Dims     Dimensions `bson:"dims"`
	Seed     int64      `bson:"seed"`
	Moves    int        `bson:"moves"`
	SolvedAt time.Time  `bson:"solvedAt"`
}

// Record is the persistable form of a game.
// The walls are not stored: the maze is carved again from its seed on Restore.
type Record struct {
	Dims    Dimensions        `bson:"dims"`
	Seed    int64             `bson:"seed"`
	Player  maze.CellPosition `bson:"player"`
	Moves   int               `bson:"moves"`
	Solved  int               `bson:"solved"`
	Version int64             `bson:"version"`
}

// Record returns the persistable form of the game.
func (g *Game) Record() Record {
	g.RLock()
	defer g.RUnlock()

	return Record{
		Dims:    g.dims,
		Seed:    g.seed,
		Player:  g.player,
		Moves:   g.moves,
		Solved:  g.solved,
		Version: g.version,
	}
}

// Restore rebuilds a game from its record.
func Restore(r Record, opts ...Option) (*Game, error) {
	g := newGame(opts)
	if err := g.generate(r.Dims, r.Seed); err != nil {
		return nil, err
	}

	if !g.grid.InBound(r.Player.Col, r.Player.Row) {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrInvalidPlayerPosition, r.Player.Col, r.Player.Row)
	}

	g.player = r.Player
	g.moves = r.Moves
	g.solved = r.Solved
	g.version = r.Version
	return g, nil
}
