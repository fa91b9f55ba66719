package render

import (
	"math"

	"github.com/lixenwraith/orrery/vmath"
)

// Viewport maps the scene's orbital plane onto a character grid
// Scene X runs along columns, scene Z along rows at half density since cells are twice as tall as wide
type Viewport struct {
	X, Y          int // Top-left cell
	Width, Height int
	Scale         float64 // Scene units per column
	Center        vmath.Vec3F
}

// Project returns the cell for p and whether it falls inside the viewport
func (v Viewport) Project(p vmath.Vec3F) (int, int, bool) {
	scale := v.Scale
	if scale <= 0 {
		scale = 1
	}
	dx := (p.X - v.Center.X) / scale
	dz := (p.Z - v.Center.Z) / (scale * 2)

	col := v.X + v.Width/2 + int(math.Round(dx))
	row := v.Y + v.Height/2 + int(math.Round(dz))
	return col, row, v.Contains(col, row)
}

// Contains reports whether a cell is inside the viewport
func (v Viewport) Contains(x, y int) bool {
	return x >= v.X && x < v.X+v.Width && y >= v.Y && y < v.Y+v.Height
}

// Line walks the cells from (x0, y0) to (x1, y1) inclusive using Bresenham's algorithm
func Line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// BarFill returns the number of filled cells of a width-cell bar at progress p
func BarFill(width int, p float64) int {
	if width <= 0 {
		return 0
	}
	n := int(math.Round(vmath.Saturate(p) * float64(width)))
	return n
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
