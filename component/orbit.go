package component

// OrbitingBody is a body in circular motion around a primary entity
// AngularPosition is kept in [0, 2π)
type OrbitingBody struct {
	ID              string
	PrimaryID       string  // Entity the body circles; empty means the origin
	PrimaryDistance float64 // Orbit radius

	AngularPosition float64 // Radians
	AngularRate     float64 // Radians per simulated year
}

// BinarySystem describes the two-body configuration used for libration points
type BinarySystem struct {
	PrimaryID          string
	SecondaryID        string
	SeparationDistance float64
	MassRatio          float64 // μ = m2 / (m1 + m2)
}
