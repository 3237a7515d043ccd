package maze

import "strings"

// String provides a textual representation of the maze.
func (g *Grid) String() string {
	return g.Render(nil)
}

// Render draws the maze as ASCII art, placing a marker rune in the middle of
// every cell listed in marks. Marks outside the grid are ignored.
func (g *Grid) Render(marks map[CellPosition]rune) string {
	var output strings.Builder

	// Top boundary
	output.WriteString("+")
	for col := 0; col < g.cols; col++ {
		if g.cells[col][0].TopWall {
			output.WriteString("---+")
		} else {
			output.WriteString("   +")
		}
	}
	output.WriteString("\n")

	for row := 0; row < g.rows; row++ {
		// Cell rows
		if g.cells[0][row].LeftWall {
			output.WriteString("|")
		} else {
			output.WriteString(" ")
		}
		for col := 0; col < g.cols; col++ {
			if mark, ok := marks[CellPosition{Col: col, Row: row}]; ok {
				output.WriteString(" ")
				output.WriteRune(mark)
				output.WriteString(" ")
			} else {
				output.WriteString("   ")
			}

			// Add right wall or space
			if g.cells[col][row].RightWall {
				output.WriteString("|")
			} else {
				output.WriteString(" ")
			}
		}
		output.WriteString("\n")

		// Wall rows
		output.WriteString("+")
		for col := 0; col < g.cols; col++ {
			if g.cells[col][row].BottomWall {
				output.WriteString("---+")
			} else {
				output.WriteString("   +")
			}
		}
		output.WriteString("\n")
	}

	return output.String()
}
