// Package chime plays a short rising arpeggio when a sequence finishes.
package chime

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/SeamusWaldron/virtualcube"
)

// DefaultSampleRate is the speaker rate.
const DefaultSampleRate = beep.SampleRate(44100)

// Major arpeggio, C5 E5 G5 C6.
var DefaultNotes = []float64{523.25, 659.25, 783.99, 1046.50}

const (
	noteDuration = 120 * time.Millisecond
	noteAttack   = 5 * time.Millisecond
	noteRelease  = 80 * time.Millisecond
)

// Chime is a virtualcube.Celebrator that plays through the system speaker.
type Chime struct {
	Rate   beep.SampleRate
	Notes  []float64
	Volume float64 // 0 mutes, 1 is full scale

	once    sync.Once
	initErr error
	play    func(...beep.Streamer)
}

var _ virtualcube.Celebrator = (*Chime)(nil)

// New returns a chime at the default rate and notes.
func New(volume float64) *Chime {
	return &Chime{
		Rate:   DefaultSampleRate,
		Notes:  DefaultNotes,
		Volume: volume,
		play:   speaker.Play,
	}
}

// Init opens the speaker. Play calls it lazily; call it up front to
// surface audio errors early.
func (c *Chime) Init() error {
	c.once.Do(func() {
		if err := speaker.Init(c.Rate, c.Rate.N(time.Second/10)); err != nil {
			c.initErr = fmt.Errorf("failed to init speaker: %w", err)
		}
	})
	return c.initErr
}

// Play starts the arpeggio without waiting for it. The origin and count
// only matter to visual celebrations.
func (c *Chime) Play(_, _ float64, _ int) {
	if c.play == nil {
		c.play = speaker.Play
	}
	if err := c.Init(); err != nil {
		return
	}
	c.play(c.Arpeggio())
}

// Arpeggio returns the chime as a finite streamer.
func (c *Chime) Arpeggio() beep.Streamer {
	notes := make([]beep.Streamer, 0, len(c.Notes))
	for _, freq := range c.Notes {
		notes = append(notes, beep.Take(c.Rate.N(noteDuration),
			newEnvelope(newSine(freq, c.Rate), c.Rate)))
	}
	return newVolume(beep.Seq(notes...), c.Volume)
}

// sine is an endless sine oscillator.
type sine struct {
	step  float64
	phase float64
}

func newSine(freq float64, rate beep.SampleRate) *sine {
	return &sine{step: freq / float64(rate)}
}

func (s *sine) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := math.Sin(2 * math.Pi * s.phase)
		samples[i][0], samples[i][1] = v, v
		s.phase += s.step
		s.phase -= math.Floor(s.phase)
	}
	return len(samples), true
}

func (s *sine) Err() error { return nil }

// envelope fades a note in and out over noteDuration.
type envelope struct {
	streamer beep.Streamer
	pos      int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(noteAttack),
		release:  rate.N(noteRelease),
		total:    rate.N(noteDuration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		switch {
		case e.pos < e.attack:
			vol = float64(e.pos) / float64(e.attack)
		case e.pos >= e.total-e.release:
			vol = math.Max(0, float64(e.total-e.pos)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume is silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
