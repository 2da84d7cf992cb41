package engine

import "math"

// Vec2 is a 2D vector in surface pixels
type Vec2 struct {
	X, Y float64
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Len returns the vector magnitude
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Lerp interpolates between v and o by t
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Polar builds a vector from an angle (radians) and a length
func Polar(angle, length float64) Vec2 {
	return Vec2{math.Cos(angle) * length, math.Sin(angle) * length}
}

// Bounds is the pixel size of a drawing surface
type Bounds struct {
	W, H float64
}

// Empty reports whether the surface has no drawable area yet
func (b Bounds) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Contains reports whether p lies inside the surface rectangle (edges inclusive)
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= 0 && p.X <= b.W && p.Y >= 0 && p.Y <= b.H
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
