package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/recording"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the timeline headless for a fixed number of ticks",
	Long: "Run drives the orchestrator without a terminal on a simulated wall clock advanced one frame per tick. " +
		"Inputs are scheduled with --jump tick:year and --scroll tick:delta.",
	RunE: runHeadless,
}

func init() {
	runCmd.Flags().Int("ticks", 600, "number of ticks to run")
	runCmd.Flags().Int("every", 60, "print a frame line every N ticks (0 disables)")
	runCmd.Flags().StringSlice("jump", nil, "jump at tick, as tick:year (repeatable)")
	runCmd.Flags().StringSlice("scroll", nil, "scroll at tick, as tick:delta (repeatable)")
	rootCmd.AddCommand(runCmd)
}

// scheduledInput is a command pushed just before the given tick runs
type scheduledInput struct {
	tick uint64
	cmd  engine.Command
}

// parseSchedule parses tick:value pairs into commands of kind
func parseSchedule(specs []string, kind engine.CommandKind) ([]scheduledInput, error) {
	out := make([]scheduledInput, 0, len(specs))
	for _, spec := range specs {
		tickStr, valueStr, ok := strings.Cut(spec, ":")
		if !ok {
			return nil, fmt.Errorf("invalid schedule %q: want tick:value", spec)
		}
		tick, err := strconv.ParseUint(strings.TrimSpace(tickStr), 10, 64)
		if err != nil || tick == 0 {
			return nil, fmt.Errorf("invalid schedule %q: tick must be a positive integer", spec)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
		}
		out = append(out, scheduledInput{tick: tick, cmd: engine.Command{Kind: kind, Value: value}})
	}
	return out, nil
}

func runHeadless(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ticks, _ := cmd.Flags().GetInt("ticks")
	every, _ := cmd.Flags().GetInt("every")
	jumps, _ := cmd.Flags().GetStringSlice("jump")
	scrolls, _ := cmd.Flags().GetStringSlice("scroll")

	schedule, err := parseSchedule(jumps, engine.CommandJump)
	if err != nil {
		return err
	}
	more, err := parseSchedule(scrolls, engine.CommandScroll)
	if err != nil {
		return err
	}
	schedule = append(schedule, more...)
	sort.SliceStable(schedule, func(i, j int) bool { return schedule[i].tick < schedule[j].tick })

	if cfg.Render.LogFile != "" {
		if logFile := setupLogging(true, cfg.Render.LogFile); logFile != nil {
			defer logFile.Close()
		}
	}

	interval := cfg.Timeline.FrameInterval
	if interval <= 0 {
		interval = parameter.FrameUpdateInterval
	}
	clock := engine.NewMockTimeProvider(time.Unix(0, 0))

	sess, err := newSession(cfg, clock)
	if err != nil {
		return err
	}
	if err := sess.attachSinks(); err != nil {
		sess.close()
		return err
	}
	defer sess.close()

	out := cmd.OutOrStdout()
	runTicks(sess.orch, clock, interval, ticks, every, schedule, out)
	fmt.Fprintf(out, "%s wall=%s\n", sess.summary(), clock.Elapsed())

	if sess.recorder != nil {
		if err := sess.recorder.Flush(); err != nil {
			return err
		}
		lifetimes, err := recording.ArtifactLifetimes(sess.recorder.DB)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "recorded %d frames, %d artifacts to %s\n",
			sess.recorder.Written(), len(lifetimes), sess.recorder.Path())
	}
	return nil
}

// runTicks advances the clock one interval per tick, pushing scheduled inputs first
func runTicks(orch *engine.Orchestrator, clock *engine.MockTimeProvider, interval time.Duration,
	ticks, every int, schedule []scheduledInput, out io.Writer) {
	next := 0
	for i := 1; i <= ticks; i++ {
		for next < len(schedule) && schedule[next].tick <= uint64(i) {
			if !orch.Input().Push(schedule[next].cmd) {
				fmt.Fprintf(os.Stderr, "input dropped at tick %d\n", i)
			}
			next++
		}

		clock.Advance(interval)
		f := orch.Tick()

		if every > 0 && (i%every == 0 || i == ticks) {
			fmt.Fprintf(out, "tick=%d %s time=%.4f target=%.4f moving=%t transition=%t visible=%d emphasis=%d artifacts=%d period=%q\n",
				f.Tick, f.Year, f.CurrentTime, f.TargetTime, f.Moving, f.Transitioning,
				f.VisibleCount(), f.EmphasisCount(), len(f.Artifacts), f.LivePeriod)
		}
	}
}
