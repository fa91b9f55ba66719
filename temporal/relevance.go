// Package temporal maps validity windows on the timeline to continuous visibility weights
package temporal

import (
	"github.com/lixenwraith/orrery/component"
	"github.com/lixenwraith/orrery/vmath"
)

// Relevance returns the visibility weight in [0, 1] of a window at time t
// Rising edge spans [start-fade, start+fade], falling edge [end-fade, end+fade]
// alpha = rise(t) · (1 - fall(t)); zero outside [start-fade, end+fade]
// A window with end <= start is never visible
func Relevance(start, end, t, fadeRange float64) float64 {
	if end <= start {
		return 0
	}
	if fadeRange < 0 {
		fadeRange = 0
	}

	rise := 1.0
	if start > component.AlwaysValidStart {
		rise = vmath.Smoothstep(start-fadeRange, start+fadeRange, t)
	}

	fall := 0.0
	if end < component.AlwaysValidEnd {
		fall = vmath.Smoothstep(end-fadeRange, end+fadeRange, t)
	}

	return vmath.Saturate(rise * (1 - fall))
}

// JustAppeared flags the first sliver of visibility, 0 < alpha < threshold
// Stateless: crossing back into relevance from either side flags again
func JustAppeared(alpha, threshold float64) bool {
	return alpha > 0 && alpha < threshold
}

// EntityRelevance applies Relevance to an entity's validity window
func EntityRelevance(e *component.TemporalEntity, t, fadeRange float64) float64 {
	return Relevance(e.ValidityStart, e.ValidityEnd, t, fadeRange)
}
