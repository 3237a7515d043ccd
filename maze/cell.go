package maze

// Cell represents a single cell in a maze grid.
// A wall flag set to true means the side cannot be passed.
type Cell struct {
	TopWall    bool // TopWall indicates whether there is a wall on the top side of the cell.
	BottomWall bool // BottomWall indicates whether there is a wall on the bottom side of the cell.
	LeftWall   bool // LeftWall indicates whether there is a wall on the left side of the cell.
	RightWall  bool // RightWall indicates whether there is a wall on the right side of the cell.
	Visited    bool // Visited is only meaningful while the maze is being carved.
}

// HasWall reports whether the side of the cell facing d is walled.
// Unknown directions are treated as walled.
func (c Cell) HasWall(d Direction) bool {
	switch d {
	case Up:
		return c.TopWall
	case Down:
		return c.BottomWall
	case Left:
		return c.LeftWall
	case Right:
		return c.RightWall
	default:
		return true
	}
}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Col int // Column index of the cell
	Row int // Row index of the cell
}

// Step returns the position one cell away in direction d.
// The result is not bounds checked.
func (p CellPosition) Step(d Direction) CellPosition {
	delta := deltas[d]
	return CellPosition{Col: p.Col + delta.Col, Row: p.Row + delta.Row}
}
