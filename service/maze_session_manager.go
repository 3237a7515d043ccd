package service

import (
	"context"
	"errors"
	"fmt"

	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

const (
	defaultMaxDimension     = 50
	defaultRunsLimit        = 20
	defaultLeaderboardLimit = 10
)

var (
	ErrDimensionTooLarge = errors.New("maze dimension is too large")
	ErrInvalidViewport   = errors.New("viewport dimensions must be positive")
	ErrMissingDependency = errors.New("missing dependency")
)

// MazeSessionManager hosts a maze game for every player. Each mutating call
// runs inside the player's session lock: load, apply, save.
type MazeSessionManager struct {
	store        i.SessionStore
	runs         i.RunRepo
	leaderboard  i.Leaderboard
	users        i.UserRepo
	layout       game.LayoutPolicy
	maxDimension int
	gameOptions  []game.Option
	logger       general_i.Logger
}

// Config holds the dependencies of a MazeSessionManager.
// Runs, Leaderboard and Users are optional.
type Config struct {
	Store        i.SessionStore
	Runs         i.RunRepo
	Leaderboard  i.Leaderboard
	Users        i.UserRepo
	Layout       *game.LayoutPolicy
	MaxDimension int
	GameOptions  []game.Option
	Logger       general_i.Logger
}

// NewMazeSessionManager validates the configuration and builds a manager.
func NewMazeSessionManager(c *Config) (*MazeSessionManager, error) {
	if c == nil || c.Store == nil || c.Logger == nil {
		return nil, fmt.Errorf("%w: session store and logger are required", ErrMissingDependency)
	}

	layout := game.DefaultLayoutPolicy
	if c.Layout != nil {
		layout = *c.Layout
	}

	maxDimension := c.MaxDimension
	if maxDimension <= 0 {
		maxDimension = defaultMaxDimension
	}

	return &MazeSessionManager{
		store:        c.Store,
		runs:         c.Runs,
		leaderboard:  c.Leaderboard,
		users:        c.Users,
		layout:       layout,
		maxDimension: maxDimension,
		gameOptions:  c.GameOptions,
		logger:       c.Logger,
	}, nil
}

// Start replaces the player's game with a new maze.
func (m *MazeSessionManager) Start(ctx context.Context, playerID uuid.UUID, dims game.Dimensions) (game.State, error) {
	if err := m.validateDimensions(dims); err != nil {
		return game.State{}, err
	}

	unlock, err := m.store.Lock(ctx, playerID)
	if err != nil {
		return game.State{}, err
	}
	defer unlock()

	g, err := game.New(dims, m.gameOptions...)
	if err != nil {
		return game.State{}, err
	}

	if err := m.store.Save(ctx, playerID, g.Record()); err != nil {
		m.logger.Error(fmt.Sprintf("saving new session for player %s: %s", playerID, err))
		return game.State{}, err
	}

	m.logger.Info(fmt.Sprintf("started %dx%d maze for player %s", dims.Cols, dims.Rows, playerID))
	return g.Snapshot(), nil
}

// State returns the current state of the player's game.
func (m *MazeSessionManager) State(ctx context.Context, playerID uuid.UUID) (game.State, error) {
	g, err := m.load(ctx, playerID)
	if err != nil {
		return game.State{}, err
	}
	return g.Snapshot(), nil
}

// Render returns the player's maze as ASCII art.
func (m *MazeSessionManager) Render(ctx context.Context, playerID uuid.UUID) (string, error) {
	g, err := m.load(ctx, playerID)
	if err != nil {
		return "", err
	}
	return g.Render(), nil
}

// Move walks the player one cell. Solving a maze records the run and bumps the leaderboard.
func (m *MazeSessionManager) Move(ctx context.Context, playerID uuid.UUID, d maze.Direction) (game.MoveResult, error) {
	var result game.MoveResult
	err := m.withGame(ctx, playerID, func(g *game.Game) error {
		var err error
		result, err = g.Move(d)
		return err
	})
	if err != nil {
		return game.MoveResult{}, err
	}

	if result.Solved {
		m.recordRun(ctx, playerID, *result.Run)
	}
	return result, nil
}

// Drag classifies a drag gesture and moves the player accordingly.
// Drags that do not classify leave the game untouched.
func (m *MazeSessionManager) Drag(ctx context.Context, playerID uuid.UUID, dx, dy, cellSize float64) (game.MoveResult, error) {
	d, ok := game.ClassifyDrag(dx, dy, cellSize)
	if ok {
		return m.Move(ctx, playerID, d)
	}

	g, err := m.load(ctx, playerID)
	if err != nil {
		return game.MoveResult{}, err
	}
	player := g.Snapshot().Player
	return game.MoveResult{From: player, Player: player}, nil
}

// Resize regenerates the player's maze with new dimensions.
func (m *MazeSessionManager) Resize(ctx context.Context, playerID uuid.UUID, dims game.Dimensions) (game.State, error) {
	if err := m.validateDimensions(dims); err != nil {
		return game.State{}, err
	}

	var state game.State
	err := m.withGame(ctx, playerID, func(g *game.Game) error {
		changed, err := g.Resize(dims)
		if err != nil {
			return err
		}
		if changed {
			m.logger.Info(fmt.Sprintf("resized maze of player %s to %dx%d", playerID, dims.Cols, dims.Rows))
		}
		state = g.Snapshot()
		return nil
	})
	return state, err
}

// FitViewport applies the layout policy for a viewport of the given size.
func (m *MazeSessionManager) FitViewport(ctx context.Context, playerID uuid.UUID, width, height int) (game.State, error) {
	if width <= 0 || height <= 0 {
		return game.State{}, fmt.Errorf("%w: %dx%d", ErrInvalidViewport, width, height)
	}

	var state game.State
	err := m.withGame(ctx, playerID, func(g *game.Game) error {
		dims, changed := m.layout.Fit(width, height, g.Dimensions())
		if changed {
			if _, err := g.Resize(dims); err != nil {
				return err
			}
			m.logger.Info(fmt.Sprintf("viewport %dx%d switched maze of player %s to %dx%d", width, height, playerID, dims.Cols, dims.Rows))
		}
		state = g.Snapshot()
		return nil
	})
	return state, err
}

// Runs lists the mazes a player solved, newest first.
func (m *MazeSessionManager) Runs(ctx context.Context, playerID uuid.UUID, limit int64) ([]game.SolvedRun, error) {
	if m.runs == nil {
		return []game.SolvedRun{}, nil
	}
	if limit <= 0 {
		limit = defaultRunsLimit
	}
	return m.runs.ByPlayer(ctx, playerID, limit)
}

// Leaderboard returns the players with the most solved mazes.
func (m *MazeSessionManager) Leaderboard(ctx context.Context, n int64) ([]i.LeaderboardEntry, error) {
	if m.leaderboard == nil {
		return []i.LeaderboardEntry{}, nil
	}
	if n <= 0 {
		n = defaultLeaderboardLimit
	}

	scores, err := m.leaderboard.Top(ctx, n)
	if err != nil {
		m.logger.Error(fmt.Sprintf("reading leaderboard: %s", err))
		return nil, err
	}

	entries := make([]i.LeaderboardEntry, 0, len(scores))
	for _, s := range scores {
		entry := i.LeaderboardEntry{PlayerID: s.Member, Solved: int(s.Score)}
		id, err := uuid.Parse(s.Member)
		if err != nil {
			m.logger.Warning(fmt.Sprintf("Non-UUID value in leaderboard: %s", s.Member))
		} else if m.users != nil {
			if user, err := m.users.ByID(id); err == nil {
				entry.Username = user.Username
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// withGame runs fn on the player's game inside the session lock and saves the result.
func (m *MazeSessionManager) withGame(ctx context.Context, playerID uuid.UUID, fn func(*game.Game) error) error {
	unlock, err := m.store.Lock(ctx, playerID)
	if err != nil {
		m.logger.Error(fmt.Sprintf("locking session of player %s: %s", playerID, err))
		return err
	}
	defer unlock()

	g, err := m.load(ctx, playerID)
	if err != nil {
		return err
	}

	if err := fn(g); err != nil {
		return err
	}

	if err := m.store.Save(ctx, playerID, g.Record()); err != nil {
		m.logger.Error(fmt.Sprintf("saving session of player %s: %s", playerID, err))
		return err
	}
	return nil
}

func (m *MazeSessionManager) load(ctx context.Context, playerID uuid.UUID) (*game.Game, error) {
	record, err := m.store.Load(ctx, playerID)
	if err != nil {
		if !errors.Is(err, i.ErrSessionNotFound) {
			m.logger.Error(fmt.Sprintf("loading session of player %s: %s", playerID, err))
		}
		return nil, err
	}

	g, err := game.Restore(*record, m.gameOptions...)
	if err != nil {
		m.logger.Error(fmt.Sprintf("restoring session of player %s: %s", playerID, err))
		return nil, err
	}
	return g, nil
}

// recordRun stores a solved maze. Failures are logged, the move itself already succeeded.
func (m *MazeSessionManager) recordRun(ctx context.Context, playerID uuid.UUID, run game.SolvedRun) {
	m.logger.Info(fmt.Sprintf("player %s solved %dx%d maze in %d moves", playerID, run.Dims.Cols, run.Dims.Rows, run.Moves))

	if m.runs != nil {
		if err := m.runs.Add(ctx, playerID, run); err != nil {
			m.logger.Error(fmt.Sprintf("recording run of player %s: %s", playerID, err))
		}
	}

	if m.leaderboard != nil {
		if err := m.leaderboard.Increment(ctx, playerID.String(), 1); err != nil {
			m.logger.Error(fmt.Sprintf("updating leaderboard for player %s: %s", playerID, err))
		}
	}
}

func (m *MazeSessionManager) validateDimensions(dims game.Dimensions) error {
	if dims.Cols <= 0 || dims.Rows <= 0 {
		return fmt.Errorf("%w: %dx%d", maze.ErrInvalidDimensions, dims.Cols, dims.Rows)
	}
	if dims.Cols > m.maxDimension || dims.Rows > m.maxDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrDimensionTooLarge, dims.Cols, dims.Rows, m.maxDimension)
	}
	return nil
}
