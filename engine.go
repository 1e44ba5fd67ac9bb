package virtualcube

import (
	"context"
	"fmt"
	"time"

	"github.com/westphae/quaternion"

	"github.com/SeamusWaldron/virtualcube/internal/anim"
	"github.com/SeamusWaldron/virtualcube/internal/scene"
)

// Default rotation timings. Unless set explicitly, a session's watchdog
// is WatchdogFactor times its rotation duration.
const (
	DefaultDuration = 500 * time.Millisecond
	WatchdogFactor  = 4
	DefaultWatchdog = WatchdogFactor * DefaultDuration
)

// Scene node names.
const (
	assemblyNode = "assembly"
	pivotNode    = "pivot"
)

// CommitReason says how a rotation reached its commit.
type CommitReason int

const (
	CommitFinished CommitReason = iota // animation ran to the end
	CommitForced                       // Finish was called
	CommitWatchdog                     // animation stalled past the watchdog
)

func (r CommitReason) String() string {
	switch r {
	case CommitFinished:
		return "finished"
	case CommitForced:
		return "forced"
	case CommitWatchdog:
		return "watchdog"
	default:
		return "unknown"
	}
}

// Rotation is an in-flight slice turn. Done is closed after the turn is
// committed to both the units and the logical State.
type Rotation struct {
	move       Move
	angle      float64
	axis       Axis
	units      []*CubieUnit
	pivot      *scene.Node
	handle     anim.Handle
	progress   float64
	elapsed    time.Duration
	reason     CommitReason
	done       chan struct{}
	onComplete func(*Rotation)
}

// Move returns the move being animated.
func (r *Rotation) Move() Move {
	return r.move
}

// Progress returns the latest eased progress. It may briefly exceed 1 with
// an overshooting easing.
func (r *Rotation) Progress() float64 {
	return r.progress
}

// Elapsed returns the animation time fed to the rotation so far.
func (r *Rotation) Elapsed() time.Duration {
	return r.elapsed
}

// Units returns the units turning with this rotation.
func (r *Rotation) Units() []*CubieUnit {
	return r.units
}

// Reason reports how the rotation committed. It is only meaningful once
// Done is closed.
func (r *Rotation) Reason() CommitReason {
	return r.reason
}

// Done returns a channel closed when the rotation commits.
func (r *Rotation) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the rotation commits or ctx ends. Someone else must be
// driving the engine's clock.
func (r *Rotation) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// EngineConfig holds the rotation engine's timing and animation settings.
type EngineConfig struct {
	Duration time.Duration
	Easing   anim.Easing
	Watchdog time.Duration // zero disables the watchdog
	Animator anim.Animator
}

// Engine animates slice turns of the 27 units and commits them to the
// logical State. At most one rotation is in flight at a time. The engine
// is not safe for concurrent use; drive it from one goroutine.
type Engine struct {
	root     *scene.Node
	units    []*CubieUnit
	state    *State
	animator anim.Animator
	duration time.Duration
	easing   anim.Easing
	watchdog time.Duration
	current  *Rotation
}

// NewEngine builds the 27 units in their solved arrangement and binds
// them to state. state should be solved.
func NewEngine(state *State, cfg EngineConfig) *Engine {
	if cfg.Easing == nil {
		cfg.Easing = anim.ElasticOut
	}
	if cfg.Animator == nil {
		cfg.Animator = anim.NewPlayer()
	}
	if cfg.Duration < 0 {
		cfg.Duration = 0
	}

	e := &Engine{
		root:     scene.NewNode(assemblyNode),
		units:    buildUnits(),
		state:    state,
		animator: cfg.Animator,
		duration: cfg.Duration,
		easing:   cfg.Easing,
		watchdog: cfg.Watchdog,
	}
	for _, u := range e.units {
		e.root.Add(u.node)
	}
	return e
}

// Units returns the 27 units ordered by id.
func (e *Engine) Units() []*CubieUnit {
	return e.units
}

// State returns the logical state the engine commits into.
func (e *Engine) State() *State {
	return e.state
}

// Busy reports whether a rotation is in flight.
func (e *Engine) Busy() bool {
	return e.current != nil
}

// Current returns the in-flight rotation, or nil.
func (e *Engine) Current() *Rotation {
	return e.current
}

// Rotate starts animating m. While a rotation is in flight it returns
// ErrRotationInFlight and changes nothing. onComplete, if set, runs after
// the turn has been committed and the lock released, so it may start the
// next rotation.
//
// It panics if m.Face is not a valid face.
func (e *Engine) Rotate(m Move, onComplete func(*Rotation)) (*Rotation, error) {
	axis := m.Face.Axis()
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d quarter turns", ErrInvalidNotation, m.QuarterTurns)
	}
	if e.current != nil {
		return nil, ErrRotationInFlight
	}

	r := &Rotation{
		move:       m,
		angle:      m.Angle(),
		axis:       axis,
		units:      SelectUnits(m.Face, e.units),
		pivot:      scene.NewNode(pivotNode),
		done:       make(chan struct{}),
		onComplete: onComplete,
	}

	e.root.Add(r.pivot)
	for _, u := range r.units {
		r.pivot.Attach(u.node)
	}
	e.current = r

	axisVec := axisVector(axis)
	r.handle = e.animator.Play(anim.Tween{
		Duration: e.duration,
		Easing:   e.easing,
		Update: func(v float64) {
			r.progress = v
			r.pivot.Local.Rotation = quaternion.FromAxisAngle(axisVec, r.angle*v)
		},
		Complete: func() {
			e.commit(r, CommitFinished)
		},
	})

	return r, nil
}

// Advance feeds dt of animation time to the engine. A rotation that has
// not committed within the watchdog timeout is committed at its final
// angle.
func (e *Engine) Advance(dt time.Duration) {
	r := e.current
	if r != nil {
		r.elapsed += dt
	}

	e.animator.Advance(dt)

	if r != nil && e.current == r && e.watchdog > 0 && r.elapsed >= e.watchdog {
		e.commit(r, CommitWatchdog)
	}
}

// Finish commits the in-flight rotation immediately at its final angle.
// It does nothing when the engine is idle.
func (e *Engine) Finish() {
	if r := e.current; r != nil {
		e.commit(r, CommitForced)
	}
}

// Reset finishes any in-flight rotation, returns every unit to its home
// pose and resets the State.
func (e *Engine) Reset() {
	e.Finish()
	for _, u := range e.units {
		u.resetPose()
	}
	e.state.Reset()
}

// commit bakes the pivot rotation into the units, re-parents them to the
// assembly, releases the lock, records the move and then notifies.
func (e *Engine) commit(r *Rotation, reason CommitReason) {
	if e.current != r {
		return
	}
	r.handle.Cancel()
	r.reason = reason
	r.progress = 1
	r.pivot.Local.Rotation = quaternion.FromAxisAngle(axisVector(r.axis), r.angle)

	for _, u := range r.units {
		e.root.Attach(u.node)
		u.snap()
	}
	e.root.Remove(r.pivot)
	e.current = nil

	e.state.ApplyMove(r.move)
	close(r.done)

	if r.onComplete != nil {
		r.onComplete(r)
	}
}
