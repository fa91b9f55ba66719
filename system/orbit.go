package system

import (
	"math"

	"github.com/lixenwraith/orrery/component"
	"github.com/lixenwraith/orrery/content"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/physics"
	"github.com/lixenwraith/orrery/vmath"
)

// OrbitSystem advances orbiting bodies by simulated time and publishes libration points
// Angles only advance while the timeline is moving, so a paused timeline never drifts
type OrbitSystem struct {
	bodies    []component.OrbitingBody
	anchors   map[string]vmath.Vec3F // Entity positions bodies can orbit
	positions map[string]vmath.Vec3F // Scratch, rebuilt per tick

	binary            component.BinarySystem
	libration         physics.LibrationCache
	librationDisabled bool
}

// NewOrbitSystem creates the system with a fallback binary used when the dataset defines none
func NewOrbitSystem(separation, massRatio float64) *OrbitSystem {
	return &OrbitSystem{
		anchors:   make(map[string]vmath.Vec3F),
		positions: make(map[string]vmath.Vec3F),
		binary: component.BinarySystem{
			SeparationDistance: separation,
			MassRatio:          massRatio,
		},
		librationDisabled: separation <= 0,
	}
}

func (s *OrbitSystem) Name() string {
	return "orbit"
}

func (s *OrbitSystem) Priority() int {
	return parameter.PriorityOrbit
}

// LoadDataset implements engine.DatasetLoader
// Bodies that survive a reload by ID keep their current angle
func (s *OrbitSystem) LoadDataset(ds *content.Dataset) {
	prev := make(map[string]float64, len(s.bodies))
	for _, b := range s.bodies {
		prev[b.ID] = b.AngularPosition
	}

	s.bodies = append(s.bodies[:0], ds.Bodies...)
	for i := range s.bodies {
		if angle, ok := prev[s.bodies[i].ID]; ok {
			s.bodies[i].AngularPosition = angle
		}
	}

	clear(s.anchors)
	for i := range ds.Entities {
		s.anchors[ds.Entities[i].ID] = ds.Entities[i].Position
	}

	if ds.Binary != nil {
		s.binary = *ds.Binary
		s.librationDisabled = ds.Binary.SeparationDistance <= 0
	}
}

// Bodies returns the current body state
func (s *OrbitSystem) Bodies() []component.OrbitingBody {
	return s.bodies
}

// Libration returns the cached libration set for the current binary, relative to its primary
func (s *OrbitSystem) Libration() physics.LibrationSet {
	return s.libration.Get(s.binary.SeparationDistance, s.binary.MassRatio)
}

// LibrationComputations reports how often the libration set was derived
func (s *OrbitSystem) LibrationComputations() int {
	return s.libration.Computations()
}

func (s *OrbitSystem) Update(tl engine.Timeline, frame *engine.Frame) {
	if tl.IsMoving() {
		yearDelta := tl.Velocity()
		for i := range s.bodies {
			b := &s.bodies[i]
			b.AngularPosition = physics.AdvanceAngle(b.AngularPosition, b.AngularRate, yearDelta)
		}
	}

	clear(s.positions)
	for id, p := range s.anchors {
		s.positions[id] = p
	}

	// Dataset order guarantees a body's primary is resolved before the body
	for i := range s.bodies {
		b := &s.bodies[i]
		origin := s.positions[b.PrimaryID]
		pos := vmath.V3FAdd(origin, physics.OrbitPosition(b.AngularPosition, b.PrimaryDistance))
		s.positions[b.ID] = pos
		frame.Bodies = append(frame.Bodies, engine.BodyView{
			ID:       b.ID,
			Position: pos,
			Angle:    b.AngularPosition,
		})
	}

	if !s.librationDisabled {
		frame.Libration = s.placedLibration()
		frame.HasLibration = true
	}
}

// placedLibration orients the cached set along the primary→secondary bearing and moves it onto the primary
// Either end may be an entity or a body; positions must be resolved for this tick
func (s *OrbitSystem) placedLibration() physics.LibrationSet {
	set := s.Libration()
	origin := s.positions[s.binary.PrimaryID]
	if secondary, ok := s.positions[s.binary.SecondaryID]; ok && s.binary.SecondaryID != "" {
		axis := vmath.V3FSub(secondary, origin)
		if axis.X != 0 || axis.Z != 0 {
			set = set.Rotate(math.Atan2(axis.Z, axis.X))
		}
	}
	return set.Translate(origin)
}
