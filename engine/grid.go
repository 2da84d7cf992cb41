package engine

import "math"

// cell holds the indices of particles whose centre falls inside it
type cell struct {
	items []int
}

// Grid is a uniform spatial partition over the surface used for radius
// queries. It is rebuilt from the store each frame it is needed.
type Grid struct {
	// CellSize is the edge length of each cell in pixels
	CellSize float64

	cols, rows int
	cells      []cell
	origin     Vec2
}

// NewGrid creates a grid with the given cell size
func NewGrid(cellSize float64) *Grid {
	return &Grid{CellSize: cellSize}
}

// Rebuild sizes the grid to cover the surface plus a margin and bins every particle
func (g *Grid) Rebuild(particles []Particle, b Bounds) {
	// particles may sit up to one size outside the surface under wrap
	margin := g.CellSize
	g.origin = Vec2{-margin, -margin}
	g.cols = int(math.Ceil((b.W+2*margin)/g.CellSize)) + 1
	g.rows = int(math.Ceil((b.H+2*margin)/g.CellSize)) + 1

	n := g.cols * g.rows
	if cap(g.cells) < n {
		g.cells = make([]cell, n)
	}
	g.cells = g.cells[:n]
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}

	for i := range particles {
		cx, cy := g.cellOf(particles[i].Pos)
		c := &g.cells[cy*g.cols+cx]
		c.items = append(c.items, i)
	}
}

// cellOf converts a position to clamped cell coordinates
func (g *Grid) cellOf(p Vec2) (int, int) {
	cx := int((p.X - g.origin.X) / g.CellSize)
	cy := int((p.Y - g.origin.Y) / g.CellSize)
	cx = min(max(cx, 0), g.cols-1)
	cy = min(max(cy, 0), g.rows-1)
	return cx, cy
}

// Within calls fn for every particle index within radius of p
func (g *Grid) Within(particles []Particle, p Vec2, radius float64, fn func(i int)) {
	if g.cols == 0 {
		return
	}
	minX, minY := g.cellOf(Vec2{p.X - radius, p.Y - radius})
	maxX, maxY := g.cellOf(Vec2{p.X + radius, p.Y + radius})
	r2 := radius * radius

	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			for _, i := range g.cells[cy*g.cols+cx].items {
				d := particles[i].Pos.Sub(p)
				if d.X*d.X+d.Y*d.Y <= r2 {
					fn(i)
				}
			}
		}
	}
}
