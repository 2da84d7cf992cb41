package engine

// Connector decides which particle pairs get a connecting line
type Connector interface {
	Edges(particles []Particle, b Bounds) []Edge
}

// FixedEdges is a hand-authored adjacency list; edges naming missing particles are skipped
type FixedEdges []Edge

// Edges returns the edges whose endpoints both exist
func (f FixedEdges) Edges(particles []Particle, b Bounds) []Edge {
	out := make([]Edge, 0, len(f))
	for _, e := range f {
		if e[0] < len(particles) && e[1] < len(particles) {
			out = append(out, e)
		}
	}
	return out
}

// ProximityEdges connects every pair of particles closer than Radius
type ProximityEdges struct {
	Radius float64
	grid   *Grid
}

// NewProximityEdges creates a distance-threshold connector
func NewProximityEdges(radius float64) *ProximityEdges {
	return &ProximityEdges{Radius: radius, grid: NewGrid(radius)}
}

// Edges returns each close pair once, lower index first
func (pe *ProximityEdges) Edges(particles []Particle, b Bounds) []Edge {
	pe.grid.Rebuild(particles, b)

	var out []Edge
	for i := range particles {
		pe.grid.Within(particles, particles[i].Pos, pe.Radius, func(j int) {
			if j > i {
				out = append(out, Edge{i, j})
			}
		})
	}
	return out
}
