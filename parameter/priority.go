package parameter

// System Execution Priorities (lower runs first)
// All systems run after the timeline update of the same tick
const (
	PriorityVisibility = 10
	PriorityOrbit      = 20
	PriorityEvent      = 30
)
