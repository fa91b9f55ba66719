package component

import (
	"math"

	"github.com/lixenwraith/orrery/vmath"
)

// Open-ended validity bounds; an entity using both is visible for the whole timeline
const (
	AlwaysValidStart = -math.MaxFloat32
	AlwaysValidEnd   = math.MaxFloat32
)

// TemporalEntity is a dataset node with a validity window on the timeline
// Window and position are owned by the dataset provider and never mutated by the core
type TemporalEntity struct {
	ID            string
	Kind          string // body, station, event; opaque to the core
	ValidityStart float64
	ValidityEnd   float64
	Position      vmath.Vec3F
}

// OpenStart reports whether the entity has no lower validity bound
func (e *TemporalEntity) OpenStart() bool {
	return e.ValidityStart <= AlwaysValidStart
}

// OpenEnd reports whether the entity has no upper validity bound
func (e *TemporalEntity) OpenEnd() bool {
	return e.ValidityEnd >= AlwaysValidEnd
}
