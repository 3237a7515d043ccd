package game

import (
	"math"

	"github.com/beka-birhanu/vinom-maze/maze"
)

const (
	minDragCells = 0.5
	maxDragCells = 1.5
)

// ClassifyDrag turns a drag displacement, measured from the centre of the
// player's cell, into a direction. A drag counts only when one of its axes
// lies strictly between half a cell and one and a half cells; the dominant
// axis then decides the direction.
func ClassifyDrag(dx, dy, cellSize float64) (maze.Direction, bool) {
	if cellSize <= 0 {
		return "", false
	}

	absDx, absDy := math.Abs(dx), math.Abs(dy)
	if !inDragRange(absDx, cellSize) && !inDragRange(absDy, cellSize) {
		return "", false
	}

	if absDx > absDy {
		if dx > 0 {
			return maze.Right, true
		}
		return maze.Left, true
	}
	if dy > 0 {
		return maze.Down, true
	}
	return maze.Up, true
}

func inDragRange(v, cellSize float64) bool {
	return v > cellSize*minDragCells && v < cellSize*maxDragCells
}
