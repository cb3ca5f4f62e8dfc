// Package audio synthesizes the referee whistle.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const (
	sampleRate = beep.SampleRate(44100)

	whistlePitch  = 2800.0 // Hz
	trillRate     = 28.0   // Hz, the rattle of the pea
	trillDepth    = 0.35   // Fraction of amplitude modulated by the trill
	whistleAttack = 15 * time.Millisecond
	whistleFade   = 40 * time.Millisecond
)

// whistle is a sine tone with a fast amplitude trill.
type whistle struct {
	freq     float64
	phase    float64
	trill    float64
	position int
	duration int
	rate     beep.SampleRate
}

// NewWhistle creates a single whistle blast.
func NewWhistle(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &whistle{
		freq:     freq,
		duration: rate.N(duration),
		rate:     rate,
	}
}

func (w *whistle) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if w.position >= w.duration {
			return i, i > 0
		}

		mod := 1 - trillDepth*(0.5+0.5*math.Sin(2*math.Pi*w.trill))
		val := mod * math.Sin(2*math.Pi*w.phase)

		samples[i][0] = val
		samples[i][1] = val

		w.phase += w.freq / float64(w.rate)
		w.phase -= math.Floor(w.phase)
		w.trill += trillRate / float64(w.rate)
		w.trill -= math.Floor(w.trill)
		w.position++
	}
	return len(samples), true
}

func (w *whistle) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s, which is expected to last duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
			vol = math.Max(float64(remaining)/float64(e.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

func blast(d time.Duration) beep.Streamer {
	return NewEnvelope(NewWhistle(whistlePitch, d, sampleRate), d, whistleAttack, whistleFade, sampleRate)
}

func pause(d time.Duration) beep.Streamer {
	return beep.Silence(sampleRate.N(d))
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// GoalWhistle is two short trills.
func GoalWhistle(vol float64) beep.Streamer {
	return withVolume(beep.Seq(
		blast(180*time.Millisecond),
		pause(90*time.Millisecond),
		blast(180*time.Millisecond),
	), vol)
}

// FullTimeWhistle is the classic three blasts, the last one long.
func FullTimeWhistle(vol float64) beep.Streamer {
	return withVolume(beep.Seq(
		blast(250*time.Millisecond),
		pause(120*time.Millisecond),
		blast(250*time.Millisecond),
		pause(120*time.Millisecond),
		blast(900*time.Millisecond),
	), vol)
}
