package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/parameter"
)

const (
	sampleRate = beep.SampleRate(48000)

	chimeVolume    = 0.35
	skirmishVolume = 0.25
)

// SoundManager plays presentation cues for a frame stream
// Every operation is a safe no-op before Initialize or after Cleanup, so the viewer runs without a device
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool

	// Presenter state
	seen          map[string]struct{}
	next          map[string]struct{}
	lastChime     uint64
	chimeCooldown uint64
	chimes        int
	skirmishes    int
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:         &beep.Mixer{},
		seen:          make(map[string]struct{}),
		next:          make(map[string]struct{}),
		chimeCooldown: parameter.EmphasisChimeCooldown,
	}
}

// Initialize sets up the speaker
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// Initialized reports whether a device is open
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// PlayChime plays the emphasis cue
func (sm *SoundManager) PlayChime(count int) {
	sm.play(CreateChimeSound(sampleRate, count, chimeVolume))
}

// PlaySkirmish plays the artifact spawn cue
func (sm *SoundManager) PlaySkirmish() {
	sm.play(CreateSkirmishSound(sampleRate, skirmishVolume))
}

// Present implements engine.Presenter
// Chimes on emphasis, rate-limited by frame count; bursts once per newly seen artifact ID
func (sm *SoundManager) Present(frame *engine.Frame) {
	if n := frame.EmphasisCount(); n > 0 && (sm.lastChime == 0 || frame.Tick-sm.lastChime >= sm.chimeCooldown) {
		sm.lastChime = frame.Tick
		sm.chimes++
		sm.PlayChime(n)
	}

	clear(sm.next)
	spawned := 0
	for i := range frame.Artifacts {
		id := frame.Artifacts[i].ID
		sm.next[id] = struct{}{}
		if _, ok := sm.seen[id]; !ok {
			spawned++
		}
	}
	sm.seen, sm.next = sm.next, sm.seen

	if spawned > 0 {
		sm.skirmishes++
		sm.PlaySkirmish()
	}
}

// Cues returns how many chime and skirmish cues Present has issued
func (sm *SoundManager) Cues() (chimes, skirmishes int) {
	return sm.chimes, sm.skirmishes
}
