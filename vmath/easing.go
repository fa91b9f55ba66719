package vmath

import "math"

// TwoPi is a full turn in radians
const TwoPi = 2 * math.Pi

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Saturate restricts v to [0, 1]
func Saturate(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Lerp returns a + (b-a)*t, t unclamped
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Smoothstep is the cubic Hermite step between edge0 and edge1
// Returns 0 below edge0, 1 above edge1, 3x²-2x³ in between
// Coincident edges degrade to a hard step at edge0
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge1 <= edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Saturate((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// WrapAngle maps any angle into [0, 2π)
func WrapAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// Mod of tiny negatives can land exactly on 2π after the add
	if a >= TwoPi {
		a = 0
	}
	return a
}
