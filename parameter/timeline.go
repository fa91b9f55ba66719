package parameter

import "time"

// Timeline bounds, in simulated years
const (
	TimelineMinYear   = 1.0
	TimelineMaxYear   = 100.0
	TimelineStartYear = 79.0
)

// Timeline easing
const (
	// ScrollSensitivity converts one scroll notch into simulated years
	ScrollSensitivity = 0.5

	// TimelineLerpFactor is the fraction of remaining distance covered per tick
	TimelineLerpFactor = 0.08

	// TimelineSnapEpsilon is the distance below which current time snaps to target
	TimelineSnapEpsilon = 0.001

	// TimelineMotionThreshold is the per-tick change above which the timeline counts as moving
	TimelineMotionThreshold = 0.0001

	// TransitionHoldWindow keeps InTransition true after a snap so dependents can settle
	TransitionHoldWindow = 300 * time.Millisecond
)

// Frame pacing for drivers
const (
	// FrameUpdateInterval is the render tick interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// InputQueueSize is the buffered capacity for commands arriving between ticks
	InputQueueSize = 256
)
