package parameter

// Two-body system, Earth–Moon-like defaults
const (
	// BinaryMassRatio is μ = m2 / (m1 + m2)
	BinaryMassRatio = 0.01215

	// BinarySeparation is the primary–secondary distance in scene units
	BinarySeparation = 30.0
)

// Orbiting bodies
const (
	// DefaultAngularRate is radians per simulated year for bodies without an explicit rate
	DefaultAngularRate = 0.2
)
