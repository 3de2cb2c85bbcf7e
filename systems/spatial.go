package systems

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
)

// SpatialGrid buckets slot indices by position for broad-phase overlap queries.
// Positions outside the covered area are clamped into the edge cells, so no
// particle is ever dropped from the grid.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	originX  float64
	originY  float64
	cells    [][]int
}

// NewSpatialGrid creates a spatial grid covering [0,width]x[0,height].
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	g := &SpatialGrid{cellSize: cellSize}
	g.Resize(width, height)
	return g
}

// Resize re-dimensions the grid for a new play area. Contents are discarded.
func (g *SpatialGrid) Resize(width, height float64) {
	g.cols = int(math.Max(width, g.cellSize)/g.cellSize) + 1
	g.rows = int(math.Max(height, g.cellSize)/g.cellSize) + 1

	g.cells = make([][]int, g.cols*g.rows)
	for i := range g.cells {
		g.cells[i] = make([]int, 0, 8)
	}
}

// Clear removes all entries from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds a slot index to the grid at the given position.
func (g *SpatialGrid) Insert(slot int, p r2.Vec) {
	col, row := g.cellOf(p.X, p.Y)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], slot)
}

// QueryAfter appends to dst every slot greater than after whose cell intersects the
// square of half-size radius around p. Results are sorted ascending. Candidates are
// not distance-filtered; callers do the exact test.
func (g *SpatialGrid) QueryAfter(dst []int, p r2.Vec, radius float64, after int) []int {
	minCol, minRow := g.cellOf(p.X-radius, p.Y-radius)
	maxCol, maxRow := g.cellOf(p.X+radius, p.Y+radius)

	start := len(dst)
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, slot := range g.cells[row*g.cols+col] {
				if slot > after {
					dst = append(dst, slot)
				}
			}
		}
	}
	slices.Sort(dst[start:])
	return dst
}

// cellOf returns the clamped cell coordinates for a position.
func (g *SpatialGrid) cellOf(x, y float64) (col, row int) {
	col = int(math.Floor(x / g.cellSize))
	row = int(math.Floor(y / g.cellSize))

	// Clamp to valid range
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}
