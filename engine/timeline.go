package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/vmath"
)

// Timeline is the read side of the time controller consumed by systems
type Timeline interface {
	CurrentTime() float64
	IsMoving() bool
	InTransition() bool
	Velocity() float64
}

// TimelineConfig holds bounds and easing tunables
// MotionThreshold and TransitionHold are independent on purpose: orbit advance gates on the
// former, settle effects on the latter
type TimelineConfig struct {
	MinTime   float64
	MaxTime   float64
	StartTime float64

	ScrollSensitivity float64
	LerpFactor        float64
	SnapEpsilon       float64
	MotionThreshold   float64
	TransitionHold    time.Duration
}

// DefaultTimelineConfig returns the parameter defaults
func DefaultTimelineConfig() TimelineConfig {
	return TimelineConfig{
		MinTime:           parameter.TimelineMinYear,
		MaxTime:           parameter.TimelineMaxYear,
		StartTime:         parameter.TimelineStartYear,
		ScrollSensitivity: parameter.ScrollSensitivity,
		LerpFactor:        parameter.TimelineLerpFactor,
		SnapEpsilon:       parameter.TimelineSnapEpsilon,
		MotionThreshold:   parameter.TimelineMotionThreshold,
		TransitionHold:    parameter.TransitionHoldWindow,
	}
}

// normalize repairs out-of-range tunables instead of failing
func (c TimelineConfig) normalize() TimelineConfig {
	if c.MinTime > c.MaxTime {
		c.MinTime, c.MaxTime = c.MaxTime, c.MinTime
	}
	if c.LerpFactor <= 0 || c.LerpFactor > 1 {
		c.LerpFactor = parameter.TimelineLerpFactor
	}
	// A zero epsilon would leave convergence to float rounding
	if c.SnapEpsilon <= 0 {
		c.SnapEpsilon = parameter.TimelineSnapEpsilon
	}
	if c.MotionThreshold < 0 {
		c.MotionThreshold = 0
	}
	if c.TransitionHold < 0 {
		c.TransitionHold = 0
	}
	c.StartTime = vmath.Clamp(c.StartTime, c.MinTime, c.MaxTime)
	return c
}

// TimelineState is the mutable state owned by TimeController
// Invariant: MinTime <= CurrentTime, TargetTime <= MaxTime
type TimelineState struct {
	CurrentTime         float64
	TargetTime          float64
	LastTime            float64
	IsTransitioning     bool
	TransitionStartedAt time.Time
}

// TimeController owns the scrubbable current time and eases it toward a target
// Not safe for concurrent use; route input through InputQueue from other goroutines
type TimeController struct {
	cfg   TimelineConfig
	clock TimeProvider
	state TimelineState
}

// NewTimeController creates a controller resting at cfg.StartTime
func NewTimeController(cfg TimelineConfig, clock TimeProvider) *TimeController {
	cfg = cfg.normalize()
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	return &TimeController{
		cfg:   cfg,
		clock: clock,
		state: TimelineState{
			CurrentTime: cfg.StartTime,
			TargetTime:  cfg.StartTime,
			LastTime:    cfg.StartTime,
		},
	}
}

func (tc *TimeController) clamp(t float64) float64 {
	if math.IsNaN(t) {
		return tc.state.TargetTime
	}
	return vmath.Clamp(t, tc.cfg.MinTime, tc.cfg.MaxTime)
}

func (tc *TimeController) beginTransition() {
	tc.state.IsTransitioning = true
	tc.state.TransitionStartedAt = tc.clock.Now()
}

// HandleScroll moves the target by delta·ScrollSensitivity, clamped to bounds
func (tc *TimeController) HandleScroll(delta float64) {
	if delta == 0 || math.IsNaN(delta) {
		return
	}
	tc.state.TargetTime = tc.clamp(tc.state.TargetTime + delta*tc.cfg.ScrollSensitivity)
	tc.beginTransition()
}

// JumpToYear redirects the target; the newest target always wins
// CurrentTime is untouched so the eased approach continues without a discontinuity
func (tc *TimeController) JumpToYear(year float64) {
	if math.IsNaN(year) {
		return
	}
	tc.state.TargetTime = tc.clamp(year)
	tc.beginTransition()
}

// Update advances current time one tick toward the target and returns it
func (tc *TimeController) Update() float64 {
	s := &tc.state
	s.LastTime = s.CurrentTime

	delta := s.TargetTime - s.CurrentTime
	if math.Abs(delta) < tc.cfg.SnapEpsilon {
		s.CurrentTime = s.TargetTime
		s.IsTransitioning = false
	} else {
		// Fraction of remaining distance, never overshoots
		s.CurrentTime += delta * tc.cfg.LerpFactor
	}

	s.CurrentTime = tc.clamp(s.CurrentTime)
	return s.CurrentTime
}

// CurrentTime returns the eased timeline value
func (tc *TimeController) CurrentTime() float64 {
	return tc.state.CurrentTime
}

// TargetTime returns the value current time is converging to
func (tc *TimeController) TargetTime() float64 {
	return tc.state.TargetTime
}

// IsMoving reports whether the last tick changed current time beyond the motion threshold
func (tc *TimeController) IsMoving() bool {
	return math.Abs(tc.state.CurrentTime-tc.state.LastTime) > tc.cfg.MotionThreshold
}

// InTransition is true while converging and for TransitionHold of wall-clock after the last input
func (tc *TimeController) InTransition() bool {
	if tc.state.IsTransitioning {
		return true
	}
	if tc.state.TransitionStartedAt.IsZero() {
		return false
	}
	return tc.clock.Now().Sub(tc.state.TransitionStartedAt) < tc.cfg.TransitionHold
}

// Velocity returns the signed change of current time over the last tick
func (tc *TimeController) Velocity() float64 {
	return tc.state.CurrentTime - tc.state.LastTime
}

// Progress returns current time as a fraction of the bounds
func (tc *TimeController) Progress() float64 {
	span := tc.cfg.MaxTime - tc.cfg.MinTime
	if span <= 0 {
		return 0
	}
	return (tc.state.CurrentTime - tc.cfg.MinTime) / span
}

// Bounds returns the clamping range
func (tc *TimeController) Bounds() (lo, hi float64) {
	return tc.cfg.MinTime, tc.cfg.MaxTime
}

// Config returns the normalized configuration
func (tc *TimeController) Config() TimelineConfig {
	return tc.cfg
}

// State returns a copy of the current state
func (tc *TimeController) State() TimelineState {
	return tc.state
}

// FormatYear renders current time for display
func (tc *TimeController) FormatYear() string {
	return FormatYear(tc.state.CurrentTime)
}

// FormatYear renders a timeline value rounded to the nearest year
func FormatYear(t float64) string {
	return fmt.Sprintf("Year %d", int64(math.Round(t)))
}
