package maze

import (
	"errors"
	"fmt"
	"strings"
)

// Direction is one of the four cardinal moves a player can request.
type Direction string

const (
	Up    Direction = "UP"
	Down  Direction = "DOWN"
	Left  Direction = "LEFT"
	Right Direction = "RIGHT"
)

var (
	ErrInvalidDirection = errors.New("invalid direction")

	deltas = map[Direction]CellPosition{
		Up:    {Col: 0, Row: -1},
		Down:  {Col: 0, Row: 1},
		Left:  {Col: -1, Row: 0},
		Right: {Col: 1, Row: 0},
	}
)

// ParseDirection converts a case-insensitive name into a Direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := deltas[d]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
	return d, nil
}

// Move resolves one step of a player standing on from.
// Hitting a wall is not an error: from is returned unchanged.
func Move(g *Grid, from CellPosition, d Direction) (CellPosition, error) {
	if _, ok := deltas[d]; !ok {
		return from, fmt.Errorf("%w: %q", ErrInvalidDirection, d)
	}

	cell, err := g.CellAt(from.Col, from.Row)
	if err != nil {
		return from, err
	}

	if cell.HasWall(d) {
		return from, nil
	}

	// Boundary walls are never carved, so an open side always leads inside the grid.
	return from.Step(d), nil
}
