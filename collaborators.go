package virtualcube

import (
	"context"
	"time"

	"github.com/westphae/quaternion"
)

// Solver produces a move sequence that solves a state. It receives a copy
// it may modify. An empty result means the state is already solved.
type Solver interface {
	Solve(ctx context.Context, s *State) ([]Move, error)
}

// SolverFunc adapts a function to the Solver interface.
type SolverFunc func(ctx context.Context, s *State) ([]Move, error)

func (f SolverFunc) Solve(ctx context.Context, s *State) ([]Move, error) {
	return f(ctx, s)
}

// Renderer draws frames. It is called on the session's goroutine after
// every step that changes what is on screen.
type Renderer interface {
	Render(f Frame)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(f Frame)

func (fn RendererFunc) Render(f Frame) {
	fn(f)
}

// Celebrator plays the effect shown when a sequence finishes.
type Celebrator interface {
	Play(originX, originY float64, count int)
}

// CelebratorFunc adapts a function to the Celebrator interface.
type CelebratorFunc func(originX, originY float64, count int)

func (f CelebratorFunc) Play(originX, originY float64, count int) {
	f(originX, originY, count)
}

// MultiCelebrator plays every celebrator in order.
type MultiCelebrator []Celebrator

func (m MultiCelebrator) Play(originX, originY float64, count int) {
	for _, c := range m {
		c.Play(originX, originY, count)
	}
}

// Journal persists finished and aborted playbacks.
type Journal interface {
	Record(ctx context.Context, rec PlaybackRecord) error
}

// PlaybackRecord describes one sequence playback.
type PlaybackRecord struct {
	ID        string
	SessionID string
	Origin    SequenceOrigin
	Moves     []Move
	Played    int  // moves committed before the playback ended
	Completed bool // false when a reset cut it short
	Solved    bool // puzzle state when the playback ended
	StartedAt time.Time
	EndedAt   time.Time
}

// Frame is a snapshot of everything a renderer needs.
type Frame struct {
	Mode     Mode
	State    *State
	Units    []UnitView
	Sequence *Sequence // active sequence, nil in FREE mode
	Rotation *RotationView
	Help     bool
	Clock    time.Duration
}

// UnitView is the rendered pose of one cubie.
type UnitView struct {
	ID          int
	Position    quaternion.Vec3
	Orientation quaternion.Quaternion
	Stickers    []Sticker // home-frame normals; rotate by Orientation
}

// RotationView describes the in-flight rotation.
type RotationView struct {
	Move     Move
	Progress float64
}
