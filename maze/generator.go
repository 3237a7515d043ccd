package maze

// Rand is the randomness the generator needs. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// neighbourOrder fixes the enumeration order of candidate neighbours.
// It changes the shape of the maze for a given random sequence, never its correctness.
var neighbourOrder = [...]Direction{Left, Up, Right, Down}

// Generate allocates a grid and carves it into a perfect maze.
func Generate(cols, rows int, rnd Rand) (*Grid, error) {
	g, err := New(cols, rows)
	if err != nil {
		return nil, err
	}
	g.Carve(rnd)
	return g, nil
}

// Carve turns a freshly allocated grid into a spanning tree using a randomized
// iterative depth first traversal (recursive backtracker) starting at (0,0).
// Calling it on a grid that was already carved has no effect.
func (g *Grid) Carve(rnd Rand) {
	stack := make([]CellPosition, 0, g.cols*g.rows)
	current := CellPosition{}
	if g.cell(current).Visited {
		return
	}
	g.cell(current).Visited = true

	for {
		if next, ok := g.randomUnvisitedNeighbour(current, rnd); ok {
			g.openWall(current, next)
			stack = append(stack, current)
			current = next
			g.cell(current).Visited = true
			continue
		}

		// A start cell without unvisited neighbours only happens on a 1x1 grid.
		if len(stack) == 0 {
			return
		}
		current = pop(&stack)
		if len(stack) == 0 {
			return
		}
	}
}

// randomUnvisitedNeighbour picks uniformly among the in-bound unvisited neighbours of pos.
func (g *Grid) randomUnvisitedNeighbour(pos CellPosition, rnd Rand) (CellPosition, bool) {
	var candidates [len(neighbourOrder)]CellPosition
	n := 0
	for _, d := range neighbourOrder {
		next := pos.Step(d)
		if g.InBound(next.Col, next.Row) && !g.cell(next).Visited {
			candidates[n] = next
			n++
		}
	}

	if n == 0 {
		return CellPosition{}, false
	}
	return candidates[rnd.Intn(n)], true
}

// pop removes and returns the last element of a stack of CellPositions.
func pop(s *[]CellPosition) CellPosition {
	lastIndex := len(*s) - 1
	popped := (*s)[lastIndex]
	*s = (*s)[:lastIndex]
	return popped
}
