package engine

import (
	"time"

	"github.com/lixenwraith/orrery/component"
	"github.com/lixenwraith/orrery/physics"
	"github.com/lixenwraith/orrery/vmath"
)

// EntityView is the per-tick visibility output for one dataset entity
type EntityView struct {
	ID           string
	Kind         string
	Position     vmath.Vec3F
	Alpha        float64
	JustAppeared bool
}

// BodyView is the per-tick position of an orbiting body
type BodyView struct {
	ID       string
	Position vmath.Vec3F
	Angle    float64
}

// Frame is the numeric state handed to presenters each tick
// Owned by the orchestrator and reused; presenters that retain it must Clone
type Frame struct {
	Tick     uint64
	WallTime time.Time

	CurrentTime   float64
	TargetTime    float64
	Year          string
	Progress      float64
	Moving        bool
	Transitioning bool
	Velocity      float64

	Entities []EntityView
	Bodies   []BodyView

	Libration    physics.LibrationSet
	HasLibration bool

	LivePeriod string
	Artifacts  []component.TransientArtifact
}

// reset clears per-tick outputs, keeping slice capacity
func (f *Frame) reset() {
	f.Entities = f.Entities[:0]
	f.Bodies = f.Bodies[:0]
	f.Artifacts = f.Artifacts[:0]
	f.Libration = physics.LibrationSet{}
	f.HasLibration = false
	f.LivePeriod = ""
}

// Clone returns a deep copy
func (f *Frame) Clone() *Frame {
	c := *f
	c.Entities = append([]EntityView(nil), f.Entities...)
	c.Bodies = append([]BodyView(nil), f.Bodies...)
	c.Artifacts = append([]component.TransientArtifact(nil), f.Artifacts...)
	return &c
}

// EmphasisCount returns the number of entities flagged as just appeared
func (f *Frame) EmphasisCount() int {
	n := 0
	for i := range f.Entities {
		if f.Entities[i].JustAppeared {
			n++
		}
	}
	return n
}

// VisibleCount returns the number of entities with non-zero alpha
func (f *Frame) VisibleCount() int {
	n := 0
	for i := range f.Entities {
		if f.Entities[i].Alpha > 0 {
			n++
		}
	}
	return n
}

// Entity returns the view for id
func (f *Frame) Entity(id string) (EntityView, bool) {
	for _, e := range f.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return EntityView{}, false
}

// Body returns the view for id
func (f *Frame) Body(id string) (BodyView, bool) {
	for _, b := range f.Bodies {
		if b.ID == id {
			return b, true
		}
	}
	return BodyView{}, false
}
