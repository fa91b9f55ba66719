package system

import (
	"github.com/lixenwraith/orrery/content"
	"github.com/lixenwraith/orrery/engine"
)

// stubTimeline is a fixed timeline reading for driving systems directly
type stubTimeline struct {
	now        float64
	velocity   float64
	moving     bool
	transition bool
}

func (s *stubTimeline) CurrentTime() float64 { return s.now }
func (s *stubTimeline) IsMoving() bool        { return s.moving }
func (s *stubTimeline) InTransition() bool    { return s.transition }
func (s *stubTimeline) Velocity() float64     { return s.velocity }

var _ engine.Timeline = (*stubTimeline)(nil)

// seqRand replays a fixed sample sequence, cycling at the end
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

func mustDefault() *content.Dataset {
	ds, err := content.Default()
	if err != nil {
		panic(err)
	}
	return ds
}
