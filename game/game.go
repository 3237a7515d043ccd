/*
Package game hosts a single player maze.

Game is the only owner of a maze.Grid and of the player and exit positions. Renderers
read it through Snapshot and Render, input handlers mutate it through Move, Resize and
Regenerate. Every entry point takes the embedded lock, so a Game can be shared between a
drawing loop and an input loop.
*/
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
)

// Game-related errors.
var (
	ErrInvalidPlayerPosition = errors.New("player is out of the maze")
)

const (
	playerMark = 'P'
	exitMark   = 'E'
)

// Dimensions is the size of a maze in cells.
type Dimensions struct {
	Cols int `json:"cols" bson:"cols"`
	Rows int `json:"rows" bson:"rows"`
}

// Option configures a Game.
type Option func(*Game)

// WithSeeder sets the function drawing the seed of every new maze.
func WithSeeder(seeder func() int64) Option {
	return func(g *Game) {
		g.seeder = seeder
	}
}

// Game represents a maze with a player walking from the start to the exit.
// Reaching the exit replaces the maze with a freshly generated one.
type Game struct {
	grid         *maze.Grid        // The current maze.
	dims         Dimensions        // Dimensions of the current maze.
	seed         int64             // Seed the current maze was carved with.
	player       maze.CellPosition // Player position.
	exit         maze.CellPosition // Exit position, fixed for the lifetime of a maze.
	moves        int               // Accepted moves in the current maze.
	solved       int               // Mazes solved since the game started.
	version      int64             // State version, bumped on every change.
	seeder       func() int64      // Source of maze seeds.
	sync.RWMutex                   // Read-Write lock for synchronizing access.
}

// New creates a game with a freshly generated maze of the given dimensions.
func New(dims Dimensions, opts ...Option) (*Game, error) {
	g := newGame(opts)
	if err := g.generate(dims, g.seeder()); err != nil {
		return nil, err
	}
	return g, nil
}

func newGame(opts []Option) *Game {
	g := &Game{seeder: rand.Int63}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// generate replaces the maze wholesale and resets the player and the exit.
func (g *Game) generate(dims Dimensions, seed int64) error {
	grid, err := maze.Generate(dims.Cols, dims.Rows, rand.New(rand.NewSource(seed)))
	if err != nil {
		return fmt.Errorf("generating %dx%d maze: %w", dims.Cols, dims.Rows, err)
	}

	g.grid = grid
	g.dims = dims
	g.seed = seed
	g.player = maze.CellPosition{}
	g.exit = maze.CellPosition{Col: dims.Cols - 1, Row: dims.Rows - 1}
	g.moves = 0
	g.version++
	return nil
}

// Move walks the player one cell in direction d.
// A blocked move leaves the player in place and is not an error.
func (g *Game) Move(d maze.Direction) (MoveResult, error) {
	g.Lock()
	defer g.Unlock()

	next, err := maze.Move(g.grid, g.player, d)
	if err != nil {
		return MoveResult{}, err
	}

	result := MoveResult{Direction: d, From: g.player, Moved: next != g.player}
	if result.Moved {
		g.player = next
		g.moves++
		g.version++
	}

	if g.player == g.exit {
		run := SolvedRun{
			Dims:     g.dims,
			Seed:     g.seed,
			Moves:    g.moves,
			SolvedAt: time.Now().UTC(),
		}
		if err := g.generate(g.dims, g.seeder()); err != nil {
			return MoveResult{}, err
		}
		g.solved++
		result.Solved = true
		result.Run = &run
	}

	result.Player = g.player
	return result, nil
}

// Regenerate replaces the maze with a new one of the same dimensions.
func (g *Game) Regenerate() error {
	g.Lock()
	defer g.Unlock()

	return g.generate(g.dims, g.seeder())
}

// Resize regenerates the maze when dims differ from the current dimensions.
// It reports whether a new maze was generated. On error the current maze is kept.
func (g *Game) Resize(dims Dimensions) (bool, error) {
	g.Lock()
	defer g.Unlock()

	if dims == g.dims {
		return false, nil
	}
	if err := g.generate(dims, g.seeder()); err != nil {
		return false, err
	}
	return true, nil
}

// Dimensions returns the dimensions of the current maze.
func (g *Game) Dimensions() Dimensions {
	g.RLock()
	defer g.RUnlock()
	return g.dims
}

// Snapshot copies everything a renderer needs to draw the game.
func (g *Game) Snapshot() State {
	g.RLock()
	defer g.RUnlock()

	cells := make([][]maze.Cell, g.dims.Rows)
	for row := range cells {
		cells[row] = make([]maze.Cell, g.dims.Cols)
		for col := range cells[row] {
			cells[row][col], _ = g.grid.CellAt(col, row)
		}
	}

	return State{
		Dims:    g.dims,
		Cells:   cells,
		Player:  g.player,
		Exit:    g.exit,
		Seed:    g.seed,
		Moves:   g.moves,
		Solved:  g.solved,
		Version: g.version,
	}
}

// Render draws the maze as ASCII art with the player and the exit marked.
func (g *Game) Render() string {
	g.RLock()
	defer g.RUnlock()

	return g.grid.Render(map[maze.CellPosition]rune{
		g.exit:   exitMark,
		g.player: playerMark,
	})
}
