package system

import (
	"github.com/lixenwraith/orrery/component"
	"github.com/lixenwraith/orrery/content"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/temporal"
)

// VisibilitySystem computes per-entity alpha and the just-appeared flag each tick
// Holds no per-entity history; emphasis is recomputed fresh every call
type VisibilitySystem struct {
	entities []component.TemporalEntity

	fadeRange         float64
	emphasisThreshold float64
}

func NewVisibilitySystem(fadeRange, emphasisThreshold float64) *VisibilitySystem {
	if fadeRange < 0 {
		fadeRange = 0
	}
	return &VisibilitySystem{
		fadeRange:         fadeRange,
		emphasisThreshold: emphasisThreshold,
	}
}

func (s *VisibilitySystem) Name() string {
	return "visibility"
}

func (s *VisibilitySystem) Priority() int {
	return parameter.PriorityVisibility
}

// LoadDataset implements engine.DatasetLoader
func (s *VisibilitySystem) LoadDataset(ds *content.Dataset) {
	s.entities = append(s.entities[:0], ds.Entities...)
}

func (s *VisibilitySystem) Update(tl engine.Timeline, frame *engine.Frame) {
	t := tl.CurrentTime()
	for i := range s.entities {
		e := &s.entities[i]
		alpha := temporal.EntityRelevance(e, t, s.fadeRange)
		frame.Entities = append(frame.Entities, engine.EntityView{
			ID:           e.ID,
			Kind:         e.Kind,
			Position:     e.Position,
			Alpha:        alpha,
			JustAppeared: temporal.JustAppeared(alpha, s.emphasisThreshold),
		})
	}
}
