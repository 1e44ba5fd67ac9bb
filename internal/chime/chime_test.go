package chime

import (
	"math"
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(s beep.Streamer) (n int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		k, ok := s.Stream(buf)
		for i := 0; i < k; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		n += k
		if !ok {
			return n, peak
		}
	}
}

func TestArpeggioLength(t *testing.T) {
	c := New(1)
	n, peak := drain(c.Arpeggio())

	assert.Equal(t, len(DefaultNotes)*c.Rate.N(noteDuration), n)
	assert.Greater(t, peak, 0.5)
	assert.LessOrEqual(t, peak, 1.0)
}

func TestMutedArpeggioIsSilent(t *testing.T) {
	n, peak := drain(New(0).Arpeggio())
	assert.Positive(t, n)
	assert.Zero(t, peak)
}

func TestEnvelopeStartsAndEndsQuiet(t *testing.T) {
	rate := DefaultSampleRate
	s := beep.Take(rate.N(noteDuration), newEnvelope(newSine(440, rate), rate))

	buf := make([][2]float64, rate.N(noteDuration))
	n, _ := s.Stream(buf)
	require.Equal(t, len(buf), n)
	assert.Zero(t, buf[0][0])
	assert.Less(t, math.Abs(buf[n-1][0]), 0.01)
}

func TestPlayUsesSpeaker(t *testing.T) {
	var played []beep.Streamer
	c := New(0.5)
	c.play = func(s ...beep.Streamer) { played = append(played, s...) }
	c.once.Do(func() {}) // pretend the speaker is open

	c.Play(0, 0, 150)
	assert.Len(t, played, 1)
}
