package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/orrery/audio"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/render"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the interactive terminal viewer",
	RunE:  runView,
}

func init() {
	viewCmd.Flags().Bool("audio", false, "play emphasis and skirmish cues")
	viewCmd.Flags().Bool("debug", false, "write logs to the render log file")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if on, _ := cmd.Flags().GetBool("audio"); on {
		cfg.Audio.Enabled = true
	}
	debugLog, _ := cmd.Flags().GetBool("debug")
	if logFile := setupLogging(debugLog || cfg.Render.LogFile != "", cfg.Render.LogFile); logFile != nil {
		defer logFile.Close()
	}

	sess, err := newSession(cfg, engine.NewMonotonicTimeProvider())
	if err != nil {
		return err
	}
	if err := sess.attachSinks(); err != nil {
		sess.close()
		return err
	}
	defer sess.close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	// Panic recovery: restore the terminal before printing the trace
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mORRERY CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	lo, hi := sess.orch.Timeline().Bounds()
	presenter := render.NewTerminalPresenter(screen, cfg.Render.Scale, lo, hi)
	machine := input.NewMachine(lo, hi)
	presenter.SetPrompt(machine.Prompt)
	if ds := sess.orch.Dataset(); ds != nil && ds.Binary != nil {
		if primary, ok := ds.Entity(ds.Binary.PrimaryID); ok {
			presenter.SetCenter(primary.Position)
		}
	}
	sess.orch.AddPresenter(presenter)

	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			log.Printf("Audio initialization failed: %v (continuing without audio)", err)
		} else {
			defer sm.Cleanup()
			sess.orch.AddPresenter(sm)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events := make(chan tcell.Event, 256)
	go pumpEvents(ctx, screen.PollEvent, events)

	return viewLoop(ctx, sess.orch, screen, machine, events, cfg.Timeline.FrameInterval)
}

// pumpEvents forwards polled events until poll returns nil or ctx ends
func pumpEvents(ctx context.Context, poll func() tcell.Event, events chan<- tcell.Event) {
	for {
		ev := poll()
		// Nil event means the screen was finalized
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// viewLoop interleaves terminal events with fixed-interval ticks on one goroutine
func viewLoop(ctx context.Context, orch *engine.Orchestrator, screen tcell.Screen,
	machine *input.Machine, events <-chan tcell.Event, interval time.Duration) error {
	if interval <= 0 {
		interval = parameter.FrameUpdateInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			intent := machine.HandleEvent(ev)
			if intent.Type == input.IntentResize {
				screen.Sync()
			}
			if input.Dispatch(intent, orch.Input()) {
				return nil
			}

		case <-ticker.C:
			orch.Tick()
		}
	}
}
