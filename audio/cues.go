// Package audio plays short synthesized cues for gameplay events.
package audio

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/thingbox/game"
)

const sampleRate = beep.SampleRate(44100)

// Cues is a game.Notifier that mixes one cue per event into the speaker.
// Until Init succeeds every Notify is a no-op, so a machine without an audio
// device runs silent.
type Cues struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	volume  float64
	enabled bool
	logger  *slog.Logger
}

// New creates a disabled cue player. volume is clamped to [0, 1].
func New(volume float64, logger *slog.Logger) *Cues {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cues{
		mixer:  &beep.Mixer{},
		volume: math.Max(0, math.Min(1, volume)),
		logger: logger.With("component", "audio"),
	}
}

// Init opens the speaker. Calling it again after success is a no-op.
func (c *Cues) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.enabled {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		c.logger.Warn("audio disabled", "err", err)
		return err
	}
	speaker.Play(c.mixer)
	c.enabled = true
	return nil
}

// Close silences pending cues and disables the player.
func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.enabled = false
}

// Enabled reports whether cues reach the speaker.
func (c *Cues) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Notify queues the cue for e.
func (c *Cues) Notify(e game.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return
	}
	s := Cue(e, c.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

// Cue returns the finite streamer played for e, or nil when the event has
// no cue.
func Cue(e game.Event, volume float64) beep.Streamer {
	switch e.Kind {
	case game.EventPickup:
		return beep.Seq(
			beep.Take(sampleRate.N(60*time.Millisecond), newTone(880, 0.3*volume, 0)),
			beep.Take(sampleRate.N(90*time.Millisecond), newTone(1320, 0.3*volume, 12)),
		)
	case game.EventSlash:
		return beep.Take(sampleRate.N(180*time.Millisecond), newSweep(900, 200, 0.25*volume))
	case game.EventSlashHit:
		return beep.Take(sampleRate.N(120*time.Millisecond), newTone(220, 0.3*volume, 20))
	case game.EventImpact:
		// Louder thud for faster hits, saturating at speed 5.
		amp := 0.1 + 0.3*math.Min(float64(e.Speed)/5, 1)
		return beep.Take(sampleRate.N(100*time.Millisecond), newTone(90, amp*volume, 30))
	}
	return nil
}

// tone is a sine with an exponential decay envelope.
type tone struct {
	freq, amp, decay float64
	pos              int
}

func newTone(freq, amp, decay float64) *tone {
	return &tone{freq: freq, amp: amp, decay: decay}
}

func (g *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		t := float64(g.pos) / float64(sampleRate)
		v := g.amp * math.Exp(-t*g.decay) * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0], samples[i][1] = v, v
		g.pos++
	}
	return len(samples), true
}

func (g *tone) Err() error { return nil }

// sweep glides linearly from one frequency to another over 200ms.
type sweep struct {
	from, to, amp float64
	phase         float64
	pos           int
}

func newSweep(from, to, amp float64) *sweep {
	return &sweep{from: from, to: to, amp: amp}
}

func (g *sweep) Stream(samples [][2]float64) (int, bool) {
	span := float64(sampleRate.N(200 * time.Millisecond))
	for i := range samples {
		k := math.Min(float64(g.pos)/span, 1)
		freq := g.from + (g.to-g.from)*k
		g.phase += 2 * math.Pi * freq / float64(sampleRate)
		v := g.amp * (1 - k) * math.Sin(g.phase)
		samples[i][0], samples[i][1] = v, v
		g.pos++
	}
	return len(samples), true
}

func (g *sweep) Err() error { return nil }
