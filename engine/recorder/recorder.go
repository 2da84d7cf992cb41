// Package recorder provides an in-memory drawing surface that records draw
// calls instead of rasterising them. It backs the headless runner and tests.
package recorder

import (
	"image/color"

	"swarmfield/engine"
)

// Op is the kind of a recorded draw call
type Op string

const (
	OpClear    Op = "clear"
	OpFill     Op = "fill"
	OpRect     Op = "rect"
	OpCircle   Op = "circle"
	OpTriangle Op = "triangle"
	OpRounded  Op = "roundedRect"
	OpLine     Op = "line"
	OpSprite   Op = "sprite"
)

// Call is one recorded draw call
type Call struct {
	Op     Op
	Pos    engine.Vec2
	Size   float64
	Color  color.Color
	Sprite string
}

// Surface records draw calls on a fixed-size virtual surface
type Surface struct {
	Bounds engine.Bounds

	// Sprites lists the sprite names that are available
	Sprites map[string]bool

	Calls  []Call
	Frames int
}

// New creates a recording surface of the given size
func New(w, h float64) *Surface {
	return &Surface{
		Bounds:  engine.Bounds{W: w, H: h},
		Sprites: map[string]bool{},
	}
}

// Reset forgets recorded calls
func (s *Surface) Reset() {
	s.Calls = s.Calls[:0]
}

// Count returns the number of recorded calls of an op
func (s *Surface) Count(op Op) int {
	n := 0
	for _, c := range s.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (s *Surface) Size() engine.Bounds { return s.Bounds }

func (s *Surface) Clear() {
	s.Frames++
	s.Calls = append(s.Calls, Call{Op: OpClear})
}

func (s *Surface) Fill(c color.Color) {
	s.Frames++
	s.Calls = append(s.Calls, Call{Op: OpFill, Color: c})
}

func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	s.Calls = append(s.Calls, Call{Op: OpRect, Pos: engine.Vec2{X: x, Y: y}, Size: w, Color: c})
}

func (s *Surface) FillCircle(cx, cy, r float64, c color.Color) {
	s.Calls = append(s.Calls, Call{Op: OpCircle, Pos: engine.Vec2{X: cx, Y: cy}, Size: r * 2, Color: c})
}

func (s *Surface) FillTriangle(a, b, c engine.Vec2, clr color.Color) {
	s.Calls = append(s.Calls, Call{Op: OpTriangle, Pos: a, Size: c.X - b.X, Color: clr})
}

func (s *Surface) FillRoundedRect(x, y, w, h, radius float64, c color.Color) {
	s.Calls = append(s.Calls, Call{Op: OpRounded, Pos: engine.Vec2{X: x, Y: y}, Size: w, Color: c})
}

func (s *Surface) StrokeLine(a, b engine.Vec2, width float64, c color.Color) {
	s.Calls = append(s.Calls, Call{Op: OpLine, Pos: a, Size: width, Color: c})
}

func (s *Surface) DrawSprite(name string, pos engine.Vec2, size, rotation, alpha float64) bool {
	if !s.Sprites[name] {
		return false
	}
	s.Calls = append(s.Calls, Call{Op: OpSprite, Pos: pos, Size: size, Sprite: name})
	return true
}
