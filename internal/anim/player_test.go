package anim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEasingEndpoints(t *testing.T) {
	for _, name := range EasingNames() {
		e, err := EasingByName(name)
		require.NoError(t, err)
		assert.InDelta(t, 0, e(0), 1e-12, name)
		assert.InDelta(t, 1, e(1), 1e-12, name)
	}
}

func TestElasticOutOvershoots(t *testing.T) {
	peak := 0.0
	for i := 1; i < 100; i++ {
		if v := ElasticOut(float64(i) / 100); v > peak {
			peak = v
		}
	}
	assert.Greater(t, peak, 1.0)
}

func TestEasingByNameUnknown(t *testing.T) {
	_, err := EasingByName("bounce")
	assert.Error(t, err)
}

func TestPlayerRunsTweenToCompletion(t *testing.T) {
	p := NewPlayer()
	var values []float64
	completed := 0

	h := p.Play(Tween{
		Duration: 100 * time.Millisecond,
		Update:   func(v float64) { values = append(values, v) },
		Complete: func() { completed++ },
	})

	p.Advance(40 * time.Millisecond)
	p.Advance(40 * time.Millisecond)
	assert.False(t, h.Finished())
	assert.Equal(t, 1, p.Active())

	p.Advance(40 * time.Millisecond)
	assert.True(t, h.Finished())
	assert.Equal(t, 0, p.Active())
	assert.Equal(t, 1, completed)
	require.Len(t, values, 3)
	assert.InDelta(t, 0.4, values[0], 1e-9)
	assert.InDelta(t, 0.8, values[1], 1e-9)
	assert.Equal(t, 1.0, values[2])

	// further advances do nothing
	p.Advance(time.Second)
	assert.Equal(t, 1, completed)
}

func TestPlayerCancel(t *testing.T) {
	p := NewPlayer()
	completed := false
	h := p.Play(Tween{Duration: 50 * time.Millisecond, Complete: func() { completed = true }})

	p.Advance(10 * time.Millisecond)
	h.Cancel()
	p.Advance(time.Second)

	assert.False(t, completed)
	assert.True(t, h.Finished())
	assert.Equal(t, 0, p.Active())
}

func TestPlayerChainsFromComplete(t *testing.T) {
	p := NewPlayer()
	var order []string

	p.Play(Tween{
		Duration: 10 * time.Millisecond,
		Complete: func() {
			order = append(order, "first")
			p.Play(Tween{
				Duration: 10 * time.Millisecond,
				Complete: func() { order = append(order, "second") },
			})
		},
	})

	p.Advance(10 * time.Millisecond)
	assert.Equal(t, []string{"first"}, order)
	assert.Equal(t, 1, p.Active())

	p.Advance(10 * time.Millisecond)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestZeroDurationCompletesOnFirstAdvance(t *testing.T) {
	p := NewPlayer()
	var got float64
	p.Play(Tween{Update: func(v float64) { got = v }})
	p.Advance(0)
	assert.Equal(t, 1.0, got)
	assert.Equal(t, 0, p.Active())
}
