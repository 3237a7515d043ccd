package maze

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Rejects non positive dimensions", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}, {3, -7}, {0, 0}} {
			g, err := New(dims[0], dims[1])
			assert.ErrorIs(t, err, ErrInvalidDimensions)
			assert.Nil(t, g)
		}
	})

	t.Run("Allocates closed unvisited cells", func(t *testing.T) {
		g, err := New(4, 3)
		require.NoError(t, err)
		assert.Equal(t, 4, g.Width())
		assert.Equal(t, 3, g.Height())

		for col := 0; col < 4; col++ {
			for row := 0; row < 3; row++ {
				c, err := g.CellAt(col, row)
				require.NoError(t, err)
				assert.Equal(t, Cell{TopWall: true, BottomWall: true, LeftWall: true, RightWall: true}, c)
			}
		}
		assert.Zero(t, g.OpenEdges())
		assertSymmetric(t, g)
	})

	t.Run("CellAt out of bounds", func(t *testing.T) {
		g, err := New(2, 2)
		require.NoError(t, err)

		for _, pos := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}, {5, 5}} {
			_, err := g.CellAt(pos[0], pos[1])
			assert.ErrorIs(t, err, ErrOutOfBounds)
		}
	})

	t.Run("CellAt returns a copy", func(t *testing.T) {
		g, err := New(1, 1)
		require.NoError(t, err)

		c, _ := g.CellAt(0, 0)
		c.TopWall = false
		again, _ := g.CellAt(0, 0)
		assert.True(t, again.TopWall)
	})
}

func TestOpenWall(t *testing.T) {
	g, err := New(3, 3)
	require.NoError(t, err)
	center := CellPosition{Col: 1, Row: 1}

	for _, d := range []Direction{Up, Down, Left, Right} {
		g.openWall(center, center.Step(d))
	}

	c, _ := g.CellAt(1, 1)
	assert.False(t, c.TopWall)
	assert.False(t, c.BottomWall)
	assert.False(t, c.LeftWall)
	assert.False(t, c.RightWall)
	assert.Equal(t, 4, g.OpenEdges())
	assertSymmetric(t, g)
}

func TestRender(t *testing.T) {
	g, err := New(1, 1)
	require.NoError(t, err)
	assert.Equal(t, "+---+\n|   |\n+---+\n", g.String())

	g, err = New(2, 1)
	require.NoError(t, err)
	g.openWall(CellPosition{0, 0}, CellPosition{1, 0})
	marks := map[CellPosition]rune{{0, 0}: 'P', {1, 0}: 'E', {9, 9}: 'X'}
	assert.Equal(t, "+---+---+\n| P   E |\n+---+---+\n", g.Render(marks))
}

// assertSymmetric checks that every shared edge has the same wall state on both sides.
func assertSymmetric(t *testing.T, g *Grid) {
	t.Helper()
	for col := 0; col < g.Width(); col++ {
		for row := 0; row < g.Height(); row++ {
			a, _ := g.CellAt(col, row)
			if col+1 < g.Width() {
				b, _ := g.CellAt(col+1, row)
				assert.Equalf(t, a.RightWall, b.LeftWall, "edge (%d,%d)-(%d,%d)", col, row, col+1, row)
			}
			if row+1 < g.Height() {
				b, _ := g.CellAt(col, row+1)
				assert.Equalf(t, a.BottomWall, b.TopWall, "edge (%d,%d)-(%d,%d)", col, row, col, row+1)
			}
		}
	}
}

// reachable counts the cells connected to start through open walls.
func reachable(g *Grid, start CellPosition) int {
	seen := map[CellPosition]bool{start: true}
	queue := []CellPosition{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range neighbourOrder {
			next, err := Move(g, cur, d)
			if err != nil || next == cur || seen[next] {
				continue
			}
			seen[next] = true
			queue = append(queue, next)
		}
	}
	return len(seen)
}

func newSeeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
