// Package anim drives eased interpolations from an externally supplied
// clock. Nothing in this package reads wall time: callers advance the
// player by explicit deltas, which keeps animations deterministic in tests.
package anim

import (
	"fmt"
	"math"
	"sort"
)

// Easing maps linear progress in [0,1] to eased progress. It must return
// 0 at 0 and 1 at 1; values in between may overshoot.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 {
	return t
}

// QuadInOut accelerates then decelerates.
func QuadInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// CubicOut decelerates to the end.
func CubicOut(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// ElasticOut overshoots and settles with a damped wobble.
func ElasticOut(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return math.Pow(2, -10*t)*math.Sin((t-0.1)*5*math.Pi) + 1
}

var easings = map[string]Easing{
	"linear":      Linear,
	"quad-in-out": QuadInOut,
	"cubic-out":   CubicOut,
	"elastic-out": ElasticOut,
}

// EasingByName looks up a named easing.
func EasingByName(name string) (Easing, error) {
	e, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q (want one of %v)", name, EasingNames())
	}
	return e, nil
}

// EasingNames lists the names accepted by EasingByName.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for n := range easings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
