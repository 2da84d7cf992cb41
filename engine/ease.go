package engine

import "math"

// Ease maps linear progress in [0,1] to eased progress
type Ease func(t float64) float64

// Linear is the identity ease
func Linear(t float64) float64 {
	return t
}

// Power2In accelerates from zero velocity (cubic)
func Power2In(t float64) float64 {
	return t * t * t
}

// Power2Out decelerates to zero velocity (cubic)
func Power2Out(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// Power2InOut accelerates then decelerates (cubic)
func Power2InOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseByName resolves the ease names used in scene definitions and config
func EaseByName(name string) (Ease, bool) {
	switch name {
	case "linear", "none":
		return Linear, true
	case "power2.in":
		return Power2In, true
	case "power2.out", "":
		return Power2Out, true
	case "power2.inOut":
		return Power2InOut, true
	}
	return nil, false
}
