package engine

import (
	"context"
	"sort"
	"time"

	"github.com/lixenwraith/orrery/content"
)

// Orchestrator drives one tick: input drain, timeline update, systems, presenters
// Sole owner of the TimeController, the dataset and the systems; single goroutine only
type Orchestrator struct {
	timeline *TimeController
	clock    TimeProvider
	input    *InputQueue

	systems    []System
	presenters []Presenter
	dataset    *content.Dataset

	frame Frame
	tick  uint64
}

// NewOrchestrator wires a timeline and its input queue
func NewOrchestrator(tl *TimeController, clock TimeProvider, input *InputQueue) *Orchestrator {
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	if input == nil {
		input = NewInputQueue(1)
	}
	return &Orchestrator{
		timeline: tl,
		clock:    clock,
		input:    input,
	}
}

// AddSystem registers a system, keeping priority order stable for equal priorities
func (o *Orchestrator) AddSystem(s System) {
	o.systems = append(o.systems, s)
	sort.SliceStable(o.systems, func(i, j int) bool {
		return o.systems[i].Priority() < o.systems[j].Priority()
	})
	if o.dataset != nil {
		if dl, ok := s.(DatasetLoader); ok {
			dl.LoadDataset(o.dataset)
		}
	}
}

// AddPresenter registers a presenter; presenters run in registration order
func (o *Orchestrator) AddPresenter(p Presenter) {
	o.presenters = append(o.presenters, p)
}

// LoadDataset hands the dataset to every system that derives state from it
func (o *Orchestrator) LoadDataset(ds *content.Dataset) {
	o.dataset = ds
	for _, s := range o.systems {
		if dl, ok := s.(DatasetLoader); ok {
			dl.LoadDataset(ds)
		}
	}
}

// Dataset returns the current dataset
func (o *Orchestrator) Dataset() *content.Dataset {
	return o.dataset
}

// Timeline returns the owned time controller
func (o *Orchestrator) Timeline() *TimeController {
	return o.timeline
}

// Input returns the queue for commands from other goroutines
func (o *Orchestrator) Input() *InputQueue {
	return o.input
}

// Systems returns registered systems in execution order
func (o *Orchestrator) Systems() []System {
	return o.systems
}

// TickCount returns the number of completed ticks
func (o *Orchestrator) TickCount() uint64 {
	return o.tick
}

func (o *Orchestrator) apply(cmd Command) {
	switch cmd.Kind {
	case CommandScroll:
		o.timeline.HandleScroll(cmd.Value)
	case CommandJump:
		o.timeline.JumpToYear(cmd.Value)
	case CommandDataset:
		if cmd.Dataset != nil {
			o.LoadDataset(cmd.Dataset)
		}
	}
}

// Tick runs one frame and returns it; the frame is reused by the next call
func (o *Orchestrator) Tick() *Frame {
	o.input.Drain(o.apply)

	// Timeline first: every system reads the freshly advanced time
	o.timeline.Update()
	o.tick++

	f := &o.frame
	f.reset()
	f.Tick = o.tick
	f.WallTime = o.clock.Now()
	f.CurrentTime = o.timeline.CurrentTime()
	f.TargetTime = o.timeline.TargetTime()
	f.Year = o.timeline.FormatYear()
	f.Progress = o.timeline.Progress()
	f.Moving = o.timeline.IsMoving()
	f.Transitioning = o.timeline.InTransition()
	f.Velocity = o.timeline.Velocity()

	for _, s := range o.systems {
		s.Update(o.timeline, f)
	}

	for _, p := range o.presenters {
		p.Present(f)
	}

	return f
}

// Run ticks at interval until ctx is done
// onTick, if set, runs after each tick on the same goroutine and may stop the loop by returning false
func (o *Orchestrator) Run(ctx context.Context, interval time.Duration, onTick func(*Frame) bool) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			f := o.Tick()
			if onTick != nil && !onTick(f) {
				return nil
			}
		}
	}
}
