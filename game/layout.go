package game

// LayoutPolicy picks maze dimensions matching the orientation of a viewport.
type LayoutPolicy struct {
	Landscape Dimensions // Used when the viewport is wider than tall.
	Portrait  Dimensions // Used when the viewport is taller than wide.
}

// DefaultLayoutPolicy keeps cells roughly square on phone sized screens.
var DefaultLayoutPolicy = LayoutPolicy{
	Landscape: Dimensions{Cols: 18, Rows: 7},
	Portrait:  Dimensions{Cols: 10, Rows: 18},
}

// Fit returns the dimensions to use for a width x height viewport and whether
// they differ from current. A maze is only swapped when its orientation
// disagrees with the viewport, square viewports never trigger a swap.
func (p LayoutPolicy) Fit(width, height int, current Dimensions) (Dimensions, bool) {
	switch {
	case width > height && current.Cols < current.Rows:
		return p.Landscape, p.Landscape != current
	case height > width && current.Cols > current.Rows:
		return p.Portrait, p.Portrait != current
	default:
		return current, false
	}
}
