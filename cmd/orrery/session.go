package main

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/lixenwraith/orrery/config"
	"github.com/lixenwraith/orrery/content"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/monitoring"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/recording"
	"github.com/lixenwraith/orrery/system"
)

// session is one wired orchestrator with its systems and optional sinks
type session struct {
	cfg       config.Config
	orch      *engine.Orchestrator
	manager   *content.Manager
	orbit     *system.OrbitSystem
	scheduler *system.EventScheduler

	recorder *recording.Recorder
	monitor  *monitoring.Monitor
	watcher  *content.Watcher
}

func newSession(cfg config.Config, clock engine.TimeProvider) (*session, error) {
	manager := content.NewManager(cfg.Dataset.Path)
	ds, err := manager.Load()
	if err != nil {
		return nil, err
	}

	tl := engine.NewTimeController(cfg.EngineTimeline(), clock)
	orch := engine.NewOrchestrator(tl, clock, engine.NewInputQueue(parameter.InputQueueSize))

	var rng system.RandSource
	if cfg.Events.Seed != 0 {
		rng = rand.New(rand.NewPCG(cfg.Events.Seed, cfg.Events.Seed))
	}

	s := &session{
		cfg:       cfg,
		orch:      orch,
		manager:   manager,
		orbit:     system.NewOrbitSystem(cfg.Orbital.Separation, cfg.Orbital.MassRatio),
		scheduler: system.NewEventScheduler(cfg.SchedulerEvents(), rng),
	}

	orch.LoadDataset(ds)
	orch.AddSystem(system.NewVisibilitySystem(cfg.Visibility.FadeRange, cfg.Visibility.EmphasisThreshold))
	orch.AddSystem(s.orbit)
	orch.AddSystem(s.scheduler)
	return s, nil
}

// attachSinks wires the recorder, monitor and dataset watcher the configuration asks for
func (s *session) attachSinks() error {
	if s.cfg.Recording.Path != "" {
		rec, err := recording.NewRecorder(s.cfg.Recording.Path, s.cfg.Recording.BatchSize)
		if err != nil {
			return err
		}
		s.recorder = rec
		s.orch.AddPresenter(rec)
	}

	if s.cfg.Monitor.Port != 0 {
		s.monitor = monitoring.NewMonitor(s.orch.Input()).WithPortNumber(s.cfg.Monitor.Port)
		url, err := s.monitor.StartServer()
		if err != nil {
			return err
		}
		s.orch.AddPresenter(s.monitor)
		if s.cfg.Monitor.Open {
			s.monitor.OpenBrowser(url)
		}
	}

	if s.cfg.Dataset.Watch {
		if s.manager.Path() == "" {
			log.Printf("Dataset watch ignored for the built-in dataset")
			return nil
		}
		w, err := content.NewWatcher(s.manager)
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		s.watcher = w
		input := s.orch.Input()
		go func() {
			for ds := range w.Datasets {
				if !input.ReplaceDataset(ds) {
					log.Printf("Dataset reload dropped, input queue full")
				}
			}
		}()
	}
	return nil
}

func (s *session) close() {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	if s.monitor != nil {
		s.monitor.Stop()
	}
	if s.recorder != nil {
		if err := s.recorder.Close(); err != nil {
			log.Printf("Recording close failed: %v", err)
		}
	}
}

func (s *session) summary() string {
	spawned, retired := s.scheduler.Stats()
	tl := s.orch.Timeline()
	return fmt.Sprintf("ticks=%d time=%.4f target=%.4f artifacts spawned=%d retired=%d libration computations=%d dropped inputs=%d",
		s.orch.TickCount(), tl.CurrentTime(), tl.TargetTime(), spawned, retired,
		s.orbit.LibrationComputations(), s.orch.Input().Dropped())
}
