/*
Package maze provides the data model and algorithms for rectangular perfect mazes.

A Grid owns numCols × numRows cells, each carrying four wall flags. Generate carves a
freshly allocated grid into a spanning tree with the recursive backtracker, and Move
resolves a single directional step of a player against the grid's walls.

Wall state is always symmetric across a shared edge: the only mutation, openWall,
clears both sides at once.
*/
package maze

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimensions = errors.New("maze dimensions must be positive")
	ErrOutOfBounds       = errors.New("cell position is out of the maze")
)

// Grid is a rectangular maze made of cells indexed by column then row.
type Grid struct {
	cols  int      // Number of columns
	rows  int      // Number of rows
	cells [][]Cell // cells[col][row]
}

// New allocates a grid of the given dimensions with every wall up and nothing visited.
func New(cols, rows int) (*Grid, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, cols, rows)
	}

	cells := make([][]Cell, cols)
	for col := range cells {
		cells[col] = make([]Cell, rows)
		for row := range cells[col] {
			cells[col][row] = Cell{
				TopWall:    true,
				BottomWall: true,
				LeftWall:   true,
				RightWall:  true,
			}
		}
	}

	return &Grid{cols: cols, rows: rows, cells: cells}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.cols
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.rows
}

// InBound reports whether (col, row) lies inside the grid.
func (g *Grid) InBound(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// CellAt returns a copy of the cell at (col, row).
func (g *Grid) CellAt(col, row int) (Cell, error) {
	if !g.InBound(col, row) {
		return Cell{}, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, col, row, g.cols, g.rows)
	}
	return g.cells[col][row], nil
}

// OpenEdges counts the interior edges that have no wall.
// A carved grid has exactly Width()*Height()-1 of them.
func (g *Grid) OpenEdges() int {
	open := 0
	for col := 0; col < g.cols; col++ {
		for row := 0; row < g.rows; row++ {
			c := g.cells[col][row]
			if col < g.cols-1 && !c.RightWall {
				open++
			}
			if row < g.rows-1 && !c.BottomWall {
				open++
			}
		}
	}
	return open
}

func (g *Grid) cell(p CellPosition) *Cell {
	return &g.cells[p.Col][p.Row]
}

// openWall removes the wall between two adjacent cells on both sides.
func (g *Grid) openWall(from, to CellPosition) {
	a, b := g.cell(from), g.cell(to)
	switch {
	case from.Col == to.Col && from.Row == to.Row+1:
		a.TopWall = false
		b.BottomWall = false
	case from.Col == to.Col && from.Row == to.Row-1:
		a.BottomWall = false
		b.TopWall = false
	case from.Row == to.Row && from.Col == to.Col+1:
		a.LeftWall = false
		b.RightWall = false
	case from.Row == to.Row && from.Col == to.Col-1:
		a.RightWall = false
		b.LeftWall = false
	}
}
