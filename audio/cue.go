package audio

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// CueConfig shapes the edge cue tone
type CueConfig struct {
	SampleRate int
	Frequency  float64
	Duration   time.Duration
	Volume     float64 // 0.0 - 1.0
}

// DefaultCueConfig returns a short, quiet high tone
func DefaultCueConfig() CueConfig {
	return CueConfig{
		SampleRate: 44100,
		Frequency:  880,
		Duration:   40 * time.Millisecond,
		Volume:     0.2,
	}
}

// EdgeCue plays a short tone when the cursor is blocked at a viewport edge
// Notify is a no-op until Init succeeds
type EdgeCue struct {
	mu          sync.Mutex
	cfg         CueConfig
	rate        beep.SampleRate
	initialized bool
}

// NewEdgeCue creates an uninitialized cue
func NewEdgeCue(cfg CueConfig) *EdgeCue {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultCueConfig().SampleRate
	}
	cfg.Volume = math.Max(0, math.Min(1, cfg.Volume))
	return &EdgeCue{
		cfg:  cfg,
		rate: beep.SampleRate(cfg.SampleRate),
	}
}

// Init opens the audio device
func (c *EdgeCue) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	// Initialize speaker with sample rate and buffer size
	if err := speaker.Init(c.rate, c.rate.N(time.Second/10)); err != nil {
		return err
	}
	c.initialized = true
	return nil
}

// Notify plays the cue without blocking
func (c *EdgeCue) Notify() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	s, err := c.stream()
	if err != nil {
		log.Printf("audio: edge cue disabled: %v", err)
		c.initialized = false
		return
	}
	speaker.Play(s)
}

// Close silences pending cues
func (c *EdgeCue) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Clear()
	c.initialized = false
}

// stream returns a fresh finite tone
func (c *EdgeCue) stream() (beep.Streamer, error) {
	sine, err := generators.SineTone(c.rate, c.cfg.Frequency)
	if err != nil {
		return nil, err
	}
	n := c.rate.N(c.cfg.Duration)
	return beep.Take(n, cueVolume(&fadeOut{src: sine, total: n}, c.cfg.Volume)), nil
}

// cueVolume scales linear volume onto the log2 gain effects.Volume expects
func cueVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// fadeOut ramps its source linearly to silence over total samples
// Avoids the click of a hard cut at the end of the cue
type fadeOut struct {
	src   beep.Streamer
	total int
	pos   int
}

func (f *fadeOut) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.src.Stream(samples)
	for i := 0; i < n; i++ {
		env := 0.0
		if f.pos < f.total {
			env = 1 - float64(f.pos)/float64(f.total)
		}
		samples[i][0] *= env
		samples[i][1] *= env
		f.pos++
	}
	return n, ok
}

func (f *fadeOut) Err() error {
	return f.src.Err()
}
