package system

import (
	"math"
	"math/rand/v2"

	"github.com/rs/xid"

	"github.com/lixenwraith/orrery/component"
	"github.com/lixenwraith/orrery/content"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/vmath"
)

// RandSource yields uniform samples in [0, 1)
// *rand.Rand satisfies it; tests inject fixed sequences
type RandSource interface {
	Float64() float64
}

// EventConfig tunes spawn probability, fade rate and spawn geometry
type EventConfig struct {
	SpawnThreshold float64
	InitialOpacity float64
	OpacityStep    float64
	FadeEpsilon    float64

	VolumeCenter vmath.Vec3F
	VolumeExtent float64
	SpanMin      float64
	SpanMax      float64
}

// DefaultEventConfig returns the parameter defaults
func DefaultEventConfig() EventConfig {
	return EventConfig{
		SpawnThreshold: parameter.EventSpawnThreshold,
		InitialOpacity: parameter.ArtifactInitialOpacity,
		OpacityStep:    parameter.ArtifactOpacityStep,
		FadeEpsilon:    parameter.ArtifactFadeEpsilon,
		VolumeExtent:   parameter.ArtifactVolumeExtent,
		SpanMin:        parameter.ArtifactSpanMin,
		SpanMax:        parameter.ArtifactSpanMax,
	}
}

// EventScheduler spawns and retires transient artifacts while the timeline sits in an active period
// Per tick: decay every artifact and drop faded ones, then, if a period is live,
// draw one sample and spawn when it exceeds the threshold
type EventScheduler struct {
	cfg EventConfig
	rng RandSource

	periods   []component.ActivePeriod
	artifacts []component.TransientArtifact
	live      *component.ActivePeriod

	tick    uint64
	spawned uint64
	retired uint64
}

// NewEventScheduler creates a scheduler; nil rng falls back to a randomly seeded PCG
func NewEventScheduler(cfg EventConfig, rng RandSource) *EventScheduler {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if cfg.SpanMax < cfg.SpanMin {
		cfg.SpanMin, cfg.SpanMax = cfg.SpanMax, cfg.SpanMin
	}
	return &EventScheduler{
		cfg: cfg,
		rng: rng,
	}
}

func (s *EventScheduler) Name() string {
	return "event"
}

func (s *EventScheduler) Priority() int {
	return parameter.PriorityEvent
}

// LoadDataset implements engine.DatasetLoader
// Live artifacts are kept; they finish fading under the new periods
func (s *EventScheduler) LoadDataset(ds *content.Dataset) {
	s.periods = append(s.periods[:0], ds.Periods...)
	s.live = nil
}

// SetPeriods replaces the active period table, in priority order
func (s *EventScheduler) SetPeriods(periods []component.ActivePeriod) {
	s.periods = append(s.periods[:0], periods...)
	s.live = nil
}

// LivePeriod returns the first period containing t
func (s *EventScheduler) LivePeriod(t float64) (*component.ActivePeriod, bool) {
	for i := range s.periods {
		if s.periods[i].Contains(t) {
			return &s.periods[i], true
		}
	}
	return nil, false
}

// AddArtifact inserts an externally built artifact
func (s *EventScheduler) AddArtifact(a component.TransientArtifact) {
	s.artifacts = append(s.artifacts, a)
}

// Artifacts returns the live population; valid until the next Step
func (s *EventScheduler) Artifacts() []component.TransientArtifact {
	return s.artifacts
}

// Stats returns lifetime spawn and retire counts
func (s *EventScheduler) Stats() (spawned, retired uint64) {
	return s.spawned, s.retired
}

// Step runs one scheduler tick at timeline value t
func (s *EventScheduler) Step(t float64) {
	s.tick++

	// Decay is unconditional so artifacts drain after a period closes
	kept := s.artifacts[:0]
	for i := range s.artifacts {
		a := s.artifacts[i]
		a.Opacity -= s.cfg.OpacityStep
		if a.Faded(s.cfg.FadeEpsilon) {
			s.retired++
			continue
		}
		kept = append(kept, a)
	}
	// Zero the tail so dropped artifacts do not linger in the backing array
	for i := len(kept); i < len(s.artifacts); i++ {
		s.artifacts[i] = component.TransientArtifact{}
	}
	s.artifacts = kept

	period, ok := s.LivePeriod(t)
	if !ok {
		s.live = nil
		return
	}
	s.live = period

	if s.rng.Float64() > s.cfg.SpawnThreshold {
		s.spawn(t, period)
	}
}

func (s *EventScheduler) spawn(t float64, period *component.ActivePeriod) {
	start, end := s.endpoints()
	s.artifacts = append(s.artifacts, component.TransientArtifact{
		ID:         xid.New().String(),
		SpawnTime:  t,
		SpawnTick:  s.tick,
		StartPoint: start,
		EndPoint:   end,
		Opacity:    s.cfg.InitialOpacity,
		ColorHint:  period.StyleHint,
	})
	s.spawned++
}

// endpoints draws a start uniformly in the reference box and an end along a uniform direction
func (s *EventScheduler) endpoints() (start, end vmath.Vec3F) {
	ext := s.cfg.VolumeExtent
	offset := vmath.Vec3F{
		X: (s.rng.Float64()*2 - 1) * ext,
		Y: (s.rng.Float64()*2 - 1) * ext,
		Z: (s.rng.Float64()*2 - 1) * ext,
	}
	start = vmath.V3FAdd(s.cfg.VolumeCenter, offset)

	azimuth := s.rng.Float64() * vmath.TwoPi
	y := s.rng.Float64()*2 - 1
	ring := math.Sqrt(1 - y*y)
	dir := vmath.Vec3F{X: ring * math.Cos(azimuth), Y: y, Z: ring * math.Sin(azimuth)}

	span := vmath.Lerp(s.cfg.SpanMin, s.cfg.SpanMax, s.rng.Float64())
	end = vmath.V3FAdd(start, vmath.V3FScale(dir, span))
	return start, end
}

func (s *EventScheduler) Update(tl engine.Timeline, frame *engine.Frame) {
	s.Step(tl.CurrentTime())
	if s.live != nil {
		frame.LivePeriod = s.live.Name
	}
	frame.Artifacts = append(frame.Artifacts, s.artifacts...)
}
