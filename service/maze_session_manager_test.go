package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/identity"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type managerFixture struct {
	manager     *MazeSessionManager
	store       *memStore
	runs        *memRuns
	leaderboard *memLeaderboard
	users       *memUsers
}

func newManagerFixture(t *testing.T) *managerFixture {
	t.Helper()
	var seed int64
	f := &managerFixture{
		store:       newMemStore(),
		runs:        &memRuns{},
		leaderboard: &memLeaderboard{},
		users:       newMemUsers(),
	}

	m, err := NewMazeSessionManager(&Config{
		Store:        f.store,
		Runs:         f.runs,
		Leaderboard:  f.leaderboard,
		Users:        f.users,
		MaxDimension: 30,
		GameOptions: []game.Option{game.WithSeeder(func() int64 {
			seed++
			return seed
		})},
		Logger: newTestLogger(t),
	})
	require.NoError(t, err)
	f.manager = m
	return f
}

// solve walks the player of a fresh session to the exit.
func solve(t *testing.T, m *MazeSessionManager, playerID uuid.UUID) game.MoveResult {
	t.Helper()
	ctx := context.Background()
	for steps := 0; steps < 10000; steps++ {
		state, err := m.State(ctx, playerID)
		require.NoError(t, err)
		res, err := m.Move(ctx, playerID, nextStep(state))
		require.NoError(t, err)
		if res.Solved {
			return res
		}
	}
	t.Fatal("exit not reached")
	return game.MoveResult{}
}

// nextStep returns the first direction of the shortest path to the exit.
func nextStep(s game.State) maze.Direction {
	dirs := []maze.Direction{maze.Up, maze.Down, maze.Left, maze.Right}
	first := map[maze.CellPosition]maze.Direction{s.Player: ""}
	queue := []maze.CellPosition{s.Player}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == s.Exit {
			return first[cur]
		}
		for _, d := range dirs {
			if s.Cells[cur.Row][cur.Col].HasWall(d) {
				continue
			}
			next := cur.Step(d)
			if _, seen := first[next]; seen {
				continue
			}
			if cur == s.Player {
				first[next] = d
			} else {
				first[next] = first[cur]
			}
			queue = append(queue, next)
		}
	}
	return maze.Up
}

func TestNewMazeSessionManager(t *testing.T) {
	_, err := NewMazeSessionManager(nil)
	assert.ErrorIs(t, err, ErrMissingDependency)

	_, err = NewMazeSessionManager(&Config{Logger: newTestLogger(t)})
	assert.ErrorIs(t, err, ErrMissingDependency)

	m, err := NewMazeSessionManager(&Config{Store: newMemStore(), Logger: newTestLogger(t)})
	require.NoError(t, err)
	assert.Equal(t, defaultMaxDimension, m.maxDimension)
	assert.Equal(t, game.DefaultLayoutPolicy, m.layout)
}

func TestMazeSessionManager_Start(t *testing.T) {
	ctx := context.Background()
	f := newManagerFixture(t)
	playerID := uuid.New()

	t.Run("Invalid dimensions", func(t *testing.T) {
		_, err := f.manager.Start(ctx, playerID, game.Dimensions{Cols: 0, Rows: 3})
		assert.ErrorIs(t, err, maze.ErrInvalidDimensions)

		_, err = f.manager.Start(ctx, playerID, game.Dimensions{Cols: 31, Rows: 3})
		assert.ErrorIs(t, err, ErrDimensionTooLarge)
	})

	t.Run("No session before start", func(t *testing.T) {
		_, err := f.manager.State(ctx, playerID)
		assert.ErrorIs(t, err, i.ErrSessionNotFound)

		_, err = f.manager.Move(ctx, playerID, maze.Down)
		assert.ErrorIs(t, err, i.ErrSessionNotFound)
	})

	t.Run("Start stores the session", func(t *testing.T) {
		state, err := f.manager.Start(ctx, playerID, game.Dimensions{Cols: 10, Rows: 18})
		require.NoError(t, err)
		assert.Equal(t, maze.CellPosition{}, state.Player)
		assert.Equal(t, maze.CellPosition{Col: 9, Row: 17}, state.Exit)

		again, err := f.manager.State(ctx, playerID)
		require.NoError(t, err)
		assert.Equal(t, state, again)
	})

	t.Run("Save failure is reported", func(t *testing.T) {
		f.store.saveErr = errors.New("redis down")
		defer func() { f.store.saveErr = nil }()

		_, err := f.manager.Start(ctx, uuid.New(), game.Dimensions{Cols: 3, Rows: 3})
		assert.EqualError(t, err, "redis down")
	})
}

func TestMazeSessionManager_Move(t *testing.T) {
	ctx := context.Background()
	f := newManagerFixture(t)
	playerID := uuid.New()

	_, err := f.manager.Start(ctx, playerID, game.Dimensions{Cols: 6, Rows: 5})
	require.NoError(t, err)

	t.Run("Wall hit keeps the player", func(t *testing.T) {
		res, err := f.manager.Move(ctx, playerID, maze.Up)
		require.NoError(t, err)
		assert.False(t, res.Moved)

		state, err := f.manager.State(ctx, playerID)
		require.NoError(t, err)
		assert.Equal(t, maze.CellPosition{}, state.Player)
	})

	t.Run("Accepted move is persisted", func(t *testing.T) {
		state, err := f.manager.State(ctx, playerID)
		require.NoError(t, err)
		d := nextStep(state)

		res, err := f.manager.Move(ctx, playerID, d)
		require.NoError(t, err)
		assert.True(t, res.Moved)

		after, err := f.manager.State(ctx, playerID)
		require.NoError(t, err)
		assert.Equal(t, res.Player, after.Player)
		assert.Equal(t, 1, after.Moves)
	})

	t.Run("Solving records the run", func(t *testing.T) {
		before, err := f.manager.State(ctx, playerID)
		require.NoError(t, err)

		res := solve(t, f.manager, playerID)
		require.NotNil(t, res.Run)
		assert.Equal(t, before.Seed, res.Run.Seed)

		after, err := f.manager.State(ctx, playerID)
		require.NoError(t, err)
		assert.Equal(t, maze.CellPosition{}, after.Player)
		assert.Equal(t, maze.CellPosition{Col: 5, Row: 4}, after.Exit)
		assert.Equal(t, 1, after.Solved)
		assert.NotEqual(t, before.Seed, after.Seed)

		runs, err := f.manager.Runs(ctx, playerID, 0)
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, game.Dimensions{Cols: 6, Rows: 5}, runs[0].Dims)
		assert.Equal(t, float64(1), f.leaderboard.scores[playerID.String()])
	})
}

func TestMazeSessionManager_Drag(t *testing.T) {
	ctx := context.Background()
	f := newManagerFixture(t)
	playerID := uuid.New()

	state, err := f.manager.Start(ctx, playerID, game.Dimensions{Cols: 8, Rows: 8})
	require.NoError(t, err)

	res, err := f.manager.Drag(ctx, playerID, 1, 1, 40)
	require.NoError(t, err)
	assert.False(t, res.Moved)
	assert.Equal(t, state.Player, res.Player)

	d := nextStep(state)
	dx, dy := 0.0, 0.0
	switch d {
	case maze.Right:
		dx = 40
	case maze.Down:
		dy = 40
	}
	res, err = f.manager.Drag(ctx, playerID, dx, dy, 40)
	require.NoError(t, err)
	assert.True(t, res.Moved)
	assert.Equal(t, d, res.Direction)
}

func TestMazeSessionManager_Resize(t *testing.T) {
	ctx := context.Background()
	f := newManagerFixture(t)
	playerID := uuid.New()

	_, err := f.manager.Start(ctx, playerID, game.Dimensions{Cols: 10, Rows: 18})
	require.NoError(t, err)

	t.Run("Explicit dimensions", func(t *testing.T) {
		state, err := f.manager.Resize(ctx, playerID, game.Dimensions{Cols: 4, Rows: 9})
		require.NoError(t, err)
		assert.Equal(t, game.Dimensions{Cols: 4, Rows: 9}, state.Dims)
		assert.Equal(t, maze.CellPosition{Col: 3, Row: 8}, state.Exit)

		_, err = f.manager.Resize(ctx, playerID, game.Dimensions{Cols: 400, Rows: 9})
		assert.ErrorIs(t, err, ErrDimensionTooLarge)
	})

	t.Run("Viewport policy", func(t *testing.T) {
		state, err := f.manager.FitViewport(ctx, playerID, 1920, 1080)
		require.NoError(t, err)
		assert.Equal(t, game.DefaultLayoutPolicy.Landscape, state.Dims)

		same, err := f.manager.FitViewport(ctx, playerID, 1280, 720)
		require.NoError(t, err)
		assert.Equal(t, state.Seed, same.Seed, "matching orientation keeps the maze")

		state, err = f.manager.FitViewport(ctx, playerID, 720, 1280)
		require.NoError(t, err)
		assert.Equal(t, game.DefaultLayoutPolicy.Portrait, state.Dims)

		_, err = f.manager.FitViewport(ctx, playerID, 0, 1280)
		assert.ErrorIs(t, err, ErrInvalidViewport)
	})
}

func TestMazeSessionManager_Render(t *testing.T) {
	ctx := context.Background()
	f := newManagerFixture(t)
	playerID := uuid.New()

	_, err := f.manager.Start(ctx, playerID, game.Dimensions{Cols: 3, Rows: 2})
	require.NoError(t, err)

	out, err := f.manager.Render(ctx, playerID)
	require.NoError(t, err)
	assert.Contains(t, out, "P")
	assert.Contains(t, out, "E")
}

func TestMazeSessionManager_Leaderboard(t *testing.T) {
	ctx := context.Background()
	f := newManagerFixture(t)

	alice := &identity.User{ID: uuid.New(), Username: "alice"}
	require.NoError(t, f.users.Save(alice))
	require.NoError(t, f.leaderboard.Increment(ctx, alice.ID.String(), 3))
	bob := uuid.New()
	require.NoError(t, f.leaderboard.Increment(ctx, bob.String(), 1))
	require.NoError(t, f.leaderboard.Increment(ctx, "garbage", 2))

	entries, err := f.manager.Leaderboard(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, i.LeaderboardEntry{PlayerID: alice.ID.String(), Username: "alice", Solved: 3}, entries[0])
	assert.Equal(t, i.LeaderboardEntry{PlayerID: "garbage", Solved: 2}, entries[1])
	assert.Equal(t, i.LeaderboardEntry{PlayerID: bob.String(), Solved: 1}, entries[2])

	top, err := f.manager.Leaderboard(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestMazeSessionManager_ConcurrentMoves(t *testing.T) {
	ctx := context.Background()
	f := newManagerFixture(t)
	playerID := uuid.New()

	_, err := f.manager.Start(ctx, playerID, game.Dimensions{Cols: 12, Rows: 12})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for n := 0; n < 10; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, d := range []maze.Direction{maze.Right, maze.Down, maze.Left, maze.Up} {
				_, err := f.manager.Move(ctx, playerID, d)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	state, err := f.manager.State(ctx, playerID)
	require.NoError(t, err)
	assert.True(t, state.Player.Col >= 0 && state.Player.Col < 12)
	assert.True(t, state.Player.Row >= 0 && state.Player.Row < 12)
}
