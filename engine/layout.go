package engine

import "math"

// Edge connects two particle indices
type Edge [2]int

// NetworkLayout is a hand-authored node placement for the hero network
type NetworkLayout struct {
	// Name identifies the layout in config
	Name string

	// Nodes are normalized (0..1) positions, scaled by the surface size
	Nodes []Vec2

	// Kinds and Sizes are consulted modulo their length
	Kinds []Kind
	Sizes []float64

	// Edges are the fixed connection lines drawn in neutral mode
	Edges []Edge

	// Floating enables orbit motion around each node
	Floating bool

	Palette Palette
}

// Node returns the normalized position for an index, modulo the table length
func (l *NetworkLayout) Node(index int) Vec2 {
	return l.Nodes[wrapIndex(index, len(l.Nodes))]
}

// Kind returns the shape kind for an index
func (l *NetworkLayout) Kind(index int) Kind {
	if len(l.Kinds) == 0 {
		return KindCircle
	}
	return l.Kinds[wrapIndex(index, len(l.Kinds))]
}

func wrapIndex(index, n int) int {
	return ((index % n) + n) % n
}

// Size returns the shape size for an index
func (l *NetworkLayout) Size(index int) float64 {
	return l.Sizes[wrapIndex(index, len(l.Sizes))]
}

// Float returns the orbit radius, phase speed and starting phase for an index
func (l *NetworkLayout) Float(index int) (radius, speed, angle float64) {
	if !l.Floating {
		return 0, 0, 0
	}
	radius = 15 + float64(index%4)*5
	speed = 0.015 + float64(index%4)*0.008
	angle = float64(index) / float64(len(l.Nodes)) * 2 * math.Pi
	return radius, speed, angle
}

// ClassicNetwork is the eight-node static network
var ClassicNetwork = NetworkLayout{
	Name: "classic",
	Nodes: []Vec2{
		{0.15, 0.25}, {0.5, 0.15}, {0.85, 0.3}, {0.12, 0.65},
		{0.3, 0.8}, {0.7, 0.75}, {0.88, 0.6}, {0.6, 0.45},
	},
	Kinds: []Kind{
		KindTriangle, KindTriangle, KindRoundedRect, KindRoundedRect,
		KindRoundedRect, KindCircle, KindCircle, KindRoundedRect,
	},
	Sizes: []float64{80, 80, 100, 100, 70, 70, 70, 70},
	Edges: []Edge{
		// outer ring
		{0, 1}, {1, 2}, {2, 7}, {7, 6}, {6, 5}, {5, 4}, {4, 3}, {3, 0},
		// cross
		{0, 4}, {1, 7}, {2, 5}, {3, 6},
		{1, 4}, {2, 6},
	},
	Palette: ClassicPalette,
}

// ExtendedNetwork is the fourteen-node floating network
var ExtendedNetwork = NetworkLayout{
	Name: "extended",
	Nodes: []Vec2{
		{0.15, 0.25}, {0.5, 0.15}, {0.85, 0.3}, {0.12, 0.65},
		{0.3, 0.8}, {0.7, 0.75}, {0.88, 0.6}, {0.6, 0.45},
		{0.08, 0.45}, {0.25, 0.35}, {0.75, 0.25}, {0.4, 0.6},
		{0.92, 0.4}, {0.05, 0.8},
	},
	Kinds: []Kind{
		KindTriangle, KindTriangle, KindRoundedRect, KindRoundedRect,
		KindRoundedRect, KindCircle, KindCircle, KindRoundedRect,
		KindCircle, KindTriangle, KindRoundedRect, KindTriangle,
		KindCircle, KindRoundedRect,
	},
	Sizes: []float64{80, 80, 90, 90, 90, 90, 75, 75, 75, 75, 65, 65, 65, 65},
	Edges: []Edge{
		{0, 1}, {1, 2}, {2, 7}, {7, 6}, {6, 5}, {5, 4}, {4, 3}, {3, 0},
		{0, 4}, {1, 7}, {2, 5}, {3, 6}, {1, 4}, {2, 6},
		{8, 9}, {9, 0}, {9, 3}, {8, 4},
		{10, 1}, {10, 2}, {10, 7}, {11, 7}, {11, 5},
		{12, 2}, {12, 7}, {12, 6},
		{13, 3}, {13, 4}, {13, 5},
		{8, 11}, {9, 11}, {11, 6},
	},
	Floating: true,
	Palette:  BrandPalette,
}

// LayoutByName looks up a built-in network layout
func LayoutByName(name string) (*NetworkLayout, bool) {
	switch name {
	case ClassicNetwork.Name:
		return &ClassicNetwork, true
	case ExtendedNetwork.Name:
		return &ExtendedNetwork, true
	}
	return nil, false
}
