package component

import (
	"github.com/lixenwraith/orrery/vmath"
)

// TransientArtifact is a short-lived event effect spawned inside an active period
// Opacity only decreases; the artifact is discarded once it reaches zero
type TransientArtifact struct {
	ID         string
	SpawnTime  float64 // Timeline value at spawn
	SpawnTick  uint64
	StartPoint vmath.Vec3F
	EndPoint   vmath.Vec3F
	Opacity    float64
	ColorHint  string
}

// Faded reports whether the artifact has finished fading
func (a *TransientArtifact) Faded(epsilon float64) bool {
	return a.Opacity <= epsilon
}
