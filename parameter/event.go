package parameter

// Stochastic event scheduler
const (
	// EventSpawnThreshold is the uniform sample a tick must exceed to spawn an artifact
	EventSpawnThreshold = 0.8

	// ArtifactInitialOpacity is the opacity of a freshly spawned artifact
	ArtifactInitialOpacity = 0.8

	// ArtifactOpacityStep is subtracted from every artifact each tick
	ArtifactOpacityStep = 0.05

	// ArtifactFadeEpsilon absorbs float residue from repeated subtraction
	ArtifactFadeEpsilon = 1e-9
)

// Artifact spawn geometry, scene units
const (
	// ArtifactVolumeExtent is the half-size of the reference box around the volume center
	ArtifactVolumeExtent = 20.0

	// ArtifactSpanMin and ArtifactSpanMax bound the start-to-end length of an artifact
	ArtifactSpanMin = 2.0
	ArtifactSpanMax = 8.0
)
