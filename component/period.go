package component

// ActivePeriod is a named span of the timeline during which transient events spawn
type ActivePeriod struct {
	Name      string
	Start     float64
	End       float64
	StyleHint string // Passed through to spawned artifacts
}

// Contains reports whether t lies inside [Start, End]
func (p *ActivePeriod) Contains(t float64) bool {
	return t >= p.Start && t <= p.End
}
