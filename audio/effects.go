package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveTriangle
	WaveNoise
)

// Cue timings
const (
	chimeDuration = 220 * time.Millisecond
	chimeAttack   = 5 * time.Millisecond
	chimeRelease  = 180 * time.Millisecond

	skirmishDuration = 90 * time.Millisecond
	skirmishAttack   = 2 * time.Millisecond
	skirmishRelease  = 70 * time.Millisecond
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s with attack/release over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) gain() float64 {
	if e.attack > 0 && e.position < e.attack {
		return float64(e.position) / float64(e.attack)
	}
	releaseStart := e.total - e.release
	if e.release > 0 && e.position >= releaseStart {
		return math.Max(0, float64(e.total-e.position)/float64(e.release))
	}
	return 1
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		g := e.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain; zero or negative volume is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateChimeSound is the emphasis cue for an entity entering relevance
// Pitch rises with the number of simultaneous emphases, capped at an octave
func CreateChimeSound(rate beep.SampleRate, count int, volume float64) beep.Streamer {
	if count < 1 {
		count = 1
	}
	freq := 660.0 * math.Pow(2, math.Min(float64(count-1), 12)/12)

	fund := NewEnvelope(NewOscillator(freq, chimeDuration, WaveSine, rate), chimeDuration, chimeAttack, chimeRelease, rate)
	over := NewEnvelope(NewOscillator(freq*2, chimeDuration, WaveSine, rate), chimeDuration, chimeAttack, chimeRelease/2, rate)

	return newVolume(beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.3)), volume)
}

// CreateSkirmishSound is a short filtered-noise burst for a spawned artifact
func CreateSkirmishSound(rate beep.SampleRate, volume float64) beep.Streamer {
	noise := NewOscillator(0, skirmishDuration, WaveNoise, rate)
	thump := NewOscillator(90, skirmishDuration, WaveTriangle, rate)
	mixed := beep.Mix(newVolume(noise, 0.35), newVolume(thump, 0.65))
	shaped := NewEnvelope(mixed, skirmishDuration, skirmishAttack, skirmishRelease, rate)
	return newVolume(shaped, volume)
}
