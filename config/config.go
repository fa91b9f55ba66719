// Package config resolves runtime settings from defaults, config file, .env, ORRERY_* variables and flags
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/system"
)

// EnvPrefix namespaces environment overrides, e.g. ORRERY_TIMELINE_MAX
const EnvPrefix = "ORRERY"

type TimelineConfig struct {
	Min               float64       `mapstructure:"min"`
	Max               float64       `mapstructure:"max"`
	Start             float64       `mapstructure:"start"`
	ScrollSensitivity float64       `mapstructure:"scroll_sensitivity"`
	LerpFactor        float64       `mapstructure:"lerp_factor"`
	SnapEpsilon       float64       `mapstructure:"snap_epsilon"`
	MotionThreshold   float64       `mapstructure:"motion_threshold"`
	TransitionHold    time.Duration `mapstructure:"transition_hold"`
	FrameInterval     time.Duration `mapstructure:"frame_interval"`
}

type VisibilityConfig struct {
	FadeRange         float64 `mapstructure:"fade_range"`
	EmphasisThreshold float64 `mapstructure:"emphasis_threshold"`
}

type OrbitalConfig struct {
	Separation float64 `mapstructure:"separation"`
	MassRatio  float64 `mapstructure:"mass_ratio"`
}

type EventsConfig struct {
	SpawnThreshold float64 `mapstructure:"spawn_threshold"`
	InitialOpacity float64 `mapstructure:"initial_opacity"`
	OpacityStep    float64 `mapstructure:"opacity_step"`
	VolumeExtent   float64 `mapstructure:"volume_extent"`
	SpanMin        float64 `mapstructure:"span_min"`
	SpanMax        float64 `mapstructure:"span_max"`
	Seed           uint64  `mapstructure:"seed"` // 0 seeds randomly
}

type DatasetConfig struct {
	Path  string `mapstructure:"path"` // Empty selects the embedded default
	Watch bool   `mapstructure:"watch"`
}

type RenderConfig struct {
	Scale   float64 `mapstructure:"scale"` // Scene units per terminal column
	LogFile string  `mapstructure:"log_file"`
}

type AudioConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type RecordingConfig struct {
	Path      string `mapstructure:"path"` // Empty disables recording
	BatchSize int    `mapstructure:"batch_size"`
}

type MonitorConfig struct {
	Port int  `mapstructure:"port"` // 0 disables the monitor
	Open bool `mapstructure:"open"`
}

// Config holds all runtime configuration
type Config struct {
	Timeline   TimelineConfig   `mapstructure:"timeline"`
	Visibility VisibilityConfig `mapstructure:"visibility"`
	Orbital    OrbitalConfig    `mapstructure:"orbital"`
	Events     EventsConfig     `mapstructure:"events"`
	Dataset    DatasetConfig    `mapstructure:"dataset"`
	Render     RenderConfig     `mapstructure:"render"`
	Audio      AudioConfig      `mapstructure:"audio"`
	Recording  RecordingConfig  `mapstructure:"recording"`
	Monitor    MonitorConfig    `mapstructure:"monitor"`
}

var (
	ErrTimelineBounds = errors.New("timeline min must be below max")
	ErrLerpFactor     = errors.New("lerp factor must be in (0, 1]")
	ErrNegative       = errors.New("value must not be negative")
	ErrMassRatio      = errors.New("mass ratio must be in [0, 0.5]")
)

// SetDefaults registers parameter defaults on the global viper instance
func SetDefaults() {
	viper.SetDefault("timeline.min", parameter.TimelineMinYear)
	viper.SetDefault("timeline.max", parameter.TimelineMaxYear)
	viper.SetDefault("timeline.start", parameter.TimelineStartYear)
	viper.SetDefault("timeline.scroll_sensitivity", parameter.ScrollSensitivity)
	viper.SetDefault("timeline.lerp_factor", parameter.TimelineLerpFactor)
	viper.SetDefault("timeline.snap_epsilon", parameter.TimelineSnapEpsilon)
	viper.SetDefault("timeline.motion_threshold", parameter.TimelineMotionThreshold)
	viper.SetDefault("timeline.transition_hold", parameter.TransitionHoldWindow)
	viper.SetDefault("timeline.frame_interval", parameter.FrameUpdateInterval)

	viper.SetDefault("visibility.fade_range", parameter.VisibilityFadeRange)
	viper.SetDefault("visibility.emphasis_threshold", parameter.EmphasisThreshold)

	viper.SetDefault("orbital.separation", parameter.BinarySeparation)
	viper.SetDefault("orbital.mass_ratio", parameter.BinaryMassRatio)

	viper.SetDefault("events.spawn_threshold", parameter.EventSpawnThreshold)
	viper.SetDefault("events.initial_opacity", parameter.ArtifactInitialOpacity)
	viper.SetDefault("events.opacity_step", parameter.ArtifactOpacityStep)
	viper.SetDefault("events.volume_extent", parameter.ArtifactVolumeExtent)
	viper.SetDefault("events.span_min", parameter.ArtifactSpanMin)
	viper.SetDefault("events.span_max", parameter.ArtifactSpanMax)
	viper.SetDefault("events.seed", 0)

	viper.SetDefault("dataset.path", "")
	viper.SetDefault("dataset.watch", false)

	viper.SetDefault("render.scale", parameter.RenderScale)
	viper.SetDefault("render.log_file", "")

	viper.SetDefault("audio.enabled", false)

	viper.SetDefault("recording.path", "")
	viper.SetDefault("recording.batch_size", parameter.RecordingBatchSize)

	viper.SetDefault("monitor.port", 0)
	viper.SetDefault("monitor.open", false)
}

// BindEnv enables ORRERY_* overrides for every key, dots mapped to underscores
func BindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// Existing variables win; a missing file is not an error
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags
func Load() (Config, error) {
	SetDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the core would otherwise silently repair
func (c *Config) Validate() error {
	t := c.Timeline
	if t.Min >= t.Max {
		return fmt.Errorf("timeline [%g, %g]: %w", t.Min, t.Max, ErrTimelineBounds)
	}
	if t.LerpFactor <= 0 || t.LerpFactor > 1 {
		return fmt.Errorf("timeline.lerp_factor %g: %w", t.LerpFactor, ErrLerpFactor)
	}
	for name, v := range map[string]float64{
		"timeline.snap_epsilon":         t.SnapEpsilon,
		"timeline.motion_threshold":     t.MotionThreshold,
		"visibility.fade_range":         c.Visibility.FadeRange,
		"visibility.emphasis_threshold": c.Visibility.EmphasisThreshold,
		"orbital.separation":            c.Orbital.Separation,
		"events.opacity_step":           c.Events.OpacityStep,
		"events.volume_extent":          c.Events.VolumeExtent,
		"events.span_min":               c.Events.SpanMin,
	} {
		if v < 0 {
			return fmt.Errorf("%s %g: %w", name, v, ErrNegative)
		}
	}
	if t.TransitionHold < 0 || t.FrameInterval < 0 {
		return fmt.Errorf("timeline durations: %w", ErrNegative)
	}
	if c.Orbital.MassRatio < 0 || c.Orbital.MassRatio > 0.5 {
		return fmt.Errorf("orbital.mass_ratio %g: %w", c.Orbital.MassRatio, ErrMassRatio)
	}
	return nil
}

// EngineTimeline converts to the time controller configuration
func (c *Config) EngineTimeline() engine.TimelineConfig {
	return engine.TimelineConfig{
		MinTime:           c.Timeline.Min,
		MaxTime:           c.Timeline.Max,
		StartTime:         c.Timeline.Start,
		ScrollSensitivity: c.Timeline.ScrollSensitivity,
		LerpFactor:        c.Timeline.LerpFactor,
		SnapEpsilon:       c.Timeline.SnapEpsilon,
		MotionThreshold:   c.Timeline.MotionThreshold,
		TransitionHold:    c.Timeline.TransitionHold,
	}
}

// SchedulerEvents converts to the event scheduler configuration
func (c *Config) SchedulerEvents() system.EventConfig {
	ec := system.DefaultEventConfig()
	ec.SpawnThreshold = c.Events.SpawnThreshold
	ec.InitialOpacity = c.Events.InitialOpacity
	ec.OpacityStep = c.Events.OpacityStep
	ec.VolumeExtent = c.Events.VolumeExtent
	ec.SpanMin = c.Events.SpanMin
	ec.SpanMax = c.Events.SpanMax
	return ec
}
