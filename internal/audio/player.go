package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player plays whistles on the local sound card. When sound is disabled or
// no audio device is available it stays silent.
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	volume  float64
	enabled bool
	logger  *log.Logger
}

// NewPlayer initializes the speaker if enabled is true. Failing to open an
// audio device is logged and leaves the player silent.
func NewPlayer(enabled bool, volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	p := &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		logger: logger,
	}
	if !enabled {
		return p
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		logger.Warn("audio unavailable, playing silently", "err", err)
		return p
	}
	speaker.Play(p.mixer)
	p.enabled = true
	return p
}

// Enabled reports whether sound actually reaches a device.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Goal plays the goal whistle.
func (p *Player) Goal() {
	p.play(GoalWhistle(p.volume))
}

// FullTime plays the end of round whistle.
func (p *Player) FullTime() {
	p.play(FullTimeWhistle(p.volume))
}

// Close stops all sounds.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.enabled = false
}
