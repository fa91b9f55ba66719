package physics

import (
	"math"

	"github.com/lixenwraith/orrery/vmath"
)

// Libration points of a circular two-body system
// Primary at the origin, secondary on +X at the separation distance, orbital plane X/Z
type LibrationSet struct {
	L1, L2, L3, L4, L5 vmath.Vec3F
}

// Points returns L1..L5 in order
func (s LibrationSet) Points() [5]vmath.Vec3F {
	return [5]vmath.Vec3F{s.L1, s.L2, s.L3, s.L4, s.L5}
}

// Translate offsets every point by the primary position
func (s LibrationSet) Translate(origin vmath.Vec3F) LibrationSet {
	return LibrationSet{
		L1: vmath.V3FAdd(s.L1, origin),
		L2: vmath.V3FAdd(s.L2, origin),
		L3: vmath.V3FAdd(s.L3, origin),
		L4: vmath.V3FAdd(s.L4, origin),
		L5: vmath.V3FAdd(s.L5, origin),
	}
}

// Rotate turns every point about the Y axis by angle radians, counter-clockwise from +X toward +Z
// A set computed with the secondary on +X is oriented onto a secondary at bearing angle
func (s LibrationSet) Rotate(angle float64) LibrationSet {
	if angle == 0 {
		return s
	}
	sin, cos := math.Sincos(angle)
	turn := func(p vmath.Vec3F) vmath.Vec3F {
		return vmath.Vec3F{X: p.X*cos - p.Z*sin, Y: p.Y, Z: p.X*sin + p.Z*cos}
	}
	return LibrationSet{L1: turn(s.L1), L2: turn(s.L2), L3: turn(s.L3), L4: turn(s.L4), L5: turn(s.L5)}
}

// LibrationPoints computes the first-order libration point positions
// separation: primary–secondary distance
// mu: mass ratio m2/(m1+m2), clamped to [0, 0.5]
// L1/L2 use the Hill radius approximation r = D·(μ/3)^(1/3); L3 uses D·(1 + 5μ/12)
func LibrationPoints(separation, mu float64) LibrationSet {
	d := math.Max(separation, 0)
	mu = vmath.Clamp(mu, 0, 0.5)

	hill := math.Cbrt(mu / 3)

	// Equilateral points sit at ±60° from the primary–secondary axis
	const sixty = math.Pi / 3
	l4 := vmath.V3FPolarXZ(sixty, d)

	return LibrationSet{
		L1: vmath.Vec3F{X: d * (1 - hill)},
		L2: vmath.Vec3F{X: d * (1 + hill)},
		L3: vmath.Vec3F{X: -d * (1 + 5*mu/12)},
		L4: l4,
		L5: vmath.V3FReflectZ(l4),
	}
}

// LibrationCache holds the last computed set and recomputes only on configuration change
type LibrationCache struct {
	separation float64
	mu         float64
	set        LibrationSet
	valid      bool

	computations int
}

// Get returns the libration set for the given configuration
func (c *LibrationCache) Get(separation, mu float64) LibrationSet {
	if c.valid && c.separation == separation && c.mu == mu {
		return c.set
	}
	c.separation = separation
	c.mu = mu
	c.set = LibrationPoints(separation, mu)
	c.valid = true
	c.computations++
	return c.set
}

// Computations returns how many times the set was derived
func (c *LibrationCache) Computations() int {
	return c.computations
}

// Invalidate forces the next Get to recompute
func (c *LibrationCache) Invalidate() {
	c.valid = false
}

// AdvanceAngle moves an orbital angle by rate·yearDelta and wraps into [0, 2π)
// yearDelta is simulated time, negative when scrubbing backwards
func AdvanceAngle(angle, rate, yearDelta float64) float64 {
	return vmath.WrapAngle(angle + rate*yearDelta)
}

// OrbitPosition returns the position on a circular orbit relative to the primary
func OrbitPosition(angle, radius float64) vmath.Vec3F {
	return vmath.V3FPolarXZ(angle, radius)
}

// OrbitalPeriod returns simulated years for one revolution, 0 for a stationary body
func OrbitalPeriod(rate float64) float64 {
	if rate == 0 {
		return 0
	}
	return vmath.TwoPi / math.Abs(rate)
}
