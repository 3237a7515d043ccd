package game

import (
	"testing"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/stretchr/testify/assert"
)

func TestClassifyDrag(t *testing.T) {
	const cell = 40.0

	cases := []struct {
		name   string
		dx, dy float64
		want   maze.Direction
		ok     bool
	}{
		{"Right", 30, 5, maze.Right, true},
		{"Left", -30, 5, maze.Left, true},
		{"Down", 3, 45, maze.Down, true},
		{"Up", 3, -45, maze.Up, true},
		{"Tie goes vertical", 30, 30, maze.Down, true},
		{"Too short", 10, 10, "", false},
		{"Exactly half a cell", 20, 0, "", false},
		{"Too long", 100, 90, "", false},
		{"Exactly one and a half cells", 60, 0, "", false},
		{"Long axis ignored when short axis in range", 100, 30, maze.Right, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ClassifyDrag(tc.dx, tc.dy, cell)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}

	_, ok := ClassifyDrag(30, 0, 0)
	assert.False(t, ok)
}
