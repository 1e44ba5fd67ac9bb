package virtualcube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Session ties the logical State, the rotation engine and the sequencer
// together. It owns the FREE/SOLVING mode and drives every collaborator.
//
// A Session is single-threaded: call its methods from one goroutine, the
// same one that calls Tick.
type Session struct {
	id       string
	cfg      *config
	state    *State
	engine   *Engine
	mode     Mode
	seq      *Sequence
	last     *Sequence
	help     bool
	dirty    bool
	clock    time.Duration
	handlers []func(Event)
	pending  []Event
	log      *slog.Logger
}

// maxPendingEvents bounds the queue read by Events; the oldest events are
// dropped first.
const maxPendingEvents = 1024

// NewSession creates a session with a solved puzzle in FREE mode.
func NewSession(opts ...Option) *Session {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.watchdogSet {
		cfg.watchdog = WatchdogFactor * cfg.duration
	}

	state := NewState()
	s := &Session{
		id:    uuid.NewString(),
		cfg:   cfg,
		state: state,
		engine: NewEngine(state, EngineConfig{
			Duration: cfg.duration,
			Easing:   cfg.easing,
			Watchdog: cfg.watchdog,
			Animator: cfg.animator,
		}),
		mode:  ModeFree,
		dirty: true,
	}
	s.log = cfg.logger.With("session", s.id)
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Mode returns the current sequencer mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// State returns a copy of the logical state.
func (s *Session) State() *State {
	return s.state.Clone()
}

// Units returns the 27 physical units.
func (s *Session) Units() []*CubieUnit {
	return s.engine.Units()
}

// Sequence returns a copy of the active sequence, or nil in FREE mode.
func (s *Session) Sequence() *Sequence {
	return s.seq.clone()
}

// LastSequence returns a copy of the most recently finished or aborted
// sequence, or nil.
func (s *Session) LastSequence() *Sequence {
	return s.last.clone()
}

// Busy reports whether a rotation is in flight.
func (s *Session) Busy() bool {
	return s.engine.Busy()
}

// HelpVisible reports whether the help overlay is on.
func (s *Session) HelpVisible() bool {
	return s.help
}

// Clock returns the total animation time fed through Tick.
func (s *Session) Clock() time.Duration {
	return s.clock
}

// OnEvent registers a handler called synchronously for every event.
func (s *Session) OnEvent(fn func(Event)) {
	s.handlers = append(s.handlers, fn)
}

// Events returns the events emitted since the last call and clears the
// queue. At most maxPendingEvents are kept between calls.
func (s *Session) Events() []Event {
	out := s.pending
	s.pending = nil
	return out
}

// Turn rotates a face a quarter turn. It is only accepted in FREE mode.
func (s *Session) Turn(face Face, reverse bool) error {
	return s.Apply(Turn(face, reverse).Move())
}

// Apply rotates by an arbitrary move in FREE mode. While another
// rotation is in flight it returns ErrRotationInFlight and nothing changes.
func (s *Session) Apply(m Move) error {
	if s.mode != ModeFree {
		return ErrWrongMode
	}
	if !m.Face.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownFace, int(m.Face))
	}

	if _, err := s.engine.Rotate(m, s.rotationCommitted); err != nil {
		if errors.Is(err, ErrRotationInFlight) {
			s.rejected(m)
		}
		return err
	}
	s.rotationStarted(m)
	s.render()
	return nil
}

// Submit parses notation and starts playing it in SOLVING mode. A
// malformed string changes nothing and returns a *ParseError; an empty
// string is a no-op.
func (s *Session) Submit(notation string) error {
	if s.mode != ModeFree {
		return ErrSequenceActive
	}
	moves, err := ParseMoves(notation)
	if err != nil {
		s.log.Debug("rejected notation", "notation", notation, "error", err)
		return err
	}
	if len(moves) == 0 {
		return nil
	}
	s.begin(moves, FormatMoves(moves), OriginScramble)
	return nil
}

// Solve asks the solver for a solution to the current state and starts
// playing it. A solved puzzle is a no-op. Solving needs the engine idle so
// that the solver sees every committed turn.
func (s *Session) Solve(ctx context.Context) error {
	if s.mode != ModeFree {
		return ErrWrongMode
	}
	if s.engine.Busy() {
		return ErrRotationInFlight
	}
	if s.state.IsSolved() {
		return nil
	}

	start := time.Now()
	moves, err := s.cfg.solver.Solve(ctx, s.state.Clone())
	if err == nil {
		err = VerifySolution(s.state, moves)
	}
	if err != nil {
		if !errors.Is(err, ErrSolveFailure) {
			err = fmt.Errorf("%w: %w", ErrSolveFailure, err)
		}
		s.cfg.metrics.solveFailed()
		s.log.Warn("solve failed", "error", err)
		s.emit(Event{Kind: EventSolveFailed, Err: err})
		return err
	}
	s.log.Info("solution found",
		"moves", len(moves),
		"elapsed", time.Since(start),
	)

	if len(moves) == 0 {
		return nil
	}
	s.begin(moves, FormatMoves(moves), OriginSolve)
	return nil
}

// Next plays the move at the cursor. It is only accepted in SOLVING mode
// and does nothing while a rotation is in flight.
func (s *Session) Next() error {
	if s.mode != ModeSolving {
		return ErrWrongMode
	}
	s.step()
	if s.dirty {
		s.render()
	}
	return nil
}

// Reset commits any in-flight rotation, abandons the active sequence and
// returns the puzzle to solved in FREE mode.
func (s *Session) Reset() {
	aborted := s.seq
	s.seq = nil
	s.mode = ModeFree

	s.engine.Reset()

	if aborted != nil {
		s.last = aborted
		s.log.Info("sequence aborted",
			"sequence", aborted.ID,
			"played", aborted.Cursor,
			"total", aborted.Len(),
		)
		s.cfg.metrics.playbackEnded(aborted.Origin, false)
		s.record(aborted, false)
		s.emit(Event{Kind: EventSequenceAborted, Sequence: aborted.clone()})
	}
	s.log.Info("puzzle reset")
	s.emit(Event{Kind: EventReset})
	s.dirty = true
	s.render()
}

// ToggleHelp flips the help overlay.
func (s *Session) ToggleHelp() {
	s.help = !s.help
	s.emit(Event{Kind: EventHelpToggled})
	s.dirty = true
	s.render()
}

// Tick advances the session by dt of animation time: it runs the
// animation, commits finished rotations, starts the next move of an
// automatic playback and renders.
func (s *Session) Tick(dt time.Duration) {
	s.clock += dt
	busy := s.engine.Busy()

	s.engine.Advance(dt)
	if s.cfg.playback == PlaybackAuto {
		s.step()
	}

	if busy || s.engine.Busy() || s.dirty {
		s.render()
	}
}

// Settle ticks in steps of dt until no rotation is in flight and no
// automatic playback is pending, or maxTicks is reached. It reports
// whether the session went idle.
func (s *Session) Settle(dt time.Duration, maxTicks int) bool {
	for i := 0; i < maxTicks; i++ {
		if s.idle() {
			return true
		}
		s.Tick(dt)
	}
	return s.idle()
}

func (s *Session) idle() bool {
	if s.engine.Busy() {
		return false
	}
	return s.mode == ModeFree || s.cfg.playback == PlaybackStep
}

// Dispatch executes an abstract command. Commands the current mode does
// not accept return ErrWrongMode. Turns that collide with an in-flight
// rotation are dropped silently; a solve request returns
// ErrRotationInFlight so the caller can tell it was not honoured.
func (s *Session) Dispatch(ctx context.Context, cmd Command) error {
	if !s.mode.Accepts(cmd.Kind) {
		if _, known := commandNames[cmd.Kind]; !known {
			return fmt.Errorf("%w: %v", ErrUnknownCommand, cmd.Kind)
		}
		return ErrWrongMode
	}

	var err error
	switch cmd.Kind {
	case CmdTurn:
		err = s.Turn(cmd.Face, cmd.Reverse)
	case CmdNext:
		err = s.Next()
	case CmdReset:
		s.Reset()
	case CmdSolve:
		err = s.Solve(ctx)
	case CmdToggleHelp:
		s.ToggleHelp()
	case CmdQuit:
		// the front end owns shutdown
	}

	if cmd.Kind != CmdSolve && errors.Is(err, ErrRotationInFlight) {
		return nil
	}
	return err
}

// Frame returns a snapshot for rendering.
func (s *Session) Frame() Frame {
	units := s.engine.Units()
	views := make([]UnitView, len(units))
	for i, u := range units {
		world := u.WorldTransform()
		views[i] = UnitView{
			ID:          u.ID(),
			Position:    world.Translation,
			Orientation: world.Rotation,
			Stickers:    u.Stickers(),
		}
	}

	f := Frame{
		Mode:     s.mode,
		State:    s.state.Clone(),
		Units:    views,
		Sequence: s.seq.clone(),
		Help:     s.help,
		Clock:    s.clock,
	}
	if r := s.engine.Current(); r != nil {
		f.Rotation = &RotationView{Move: r.Move(), Progress: r.Progress()}
	}
	return f
}

func (s *Session) begin(moves []Move, notation string, origin SequenceOrigin) {
	seq := &Sequence{
		ID:        uuid.NewString(),
		Moves:     moves,
		Source:    notation,
		Origin:    origin,
		StartedAt: s.cfg.now(),
	}
	s.seq = seq
	s.mode = ModeSolving

	s.log.Info("sequence started",
		"sequence", seq.ID,
		"origin", origin.String(),
		"moves", notation,
	)
	s.emit(Event{Kind: EventSequenceStarted, Sequence: seq.clone()})

	if s.cfg.playback == PlaybackAuto {
		s.step()
	}
	s.dirty = true
	s.render()
}

// step starts the move at the cursor if the engine is free.
func (s *Session) step() {
	seq := s.seq
	if s.mode != ModeSolving || seq == nil || s.engine.Busy() {
		return
	}
	m, ok := seq.Current()
	if !ok {
		return
	}

	_, err := s.engine.Rotate(m, func(r *Rotation) {
		s.rotationCommitted(r)
		s.advance(seq)
	})
	if err != nil {
		s.log.Error("sequence move failed to start", "move", m.Notation(), "error", err)
		return
	}
	s.rotationStarted(m)
}

// advance moves the cursor past a committed move. Moves committed after
// their sequence was abandoned are ignored.
func (s *Session) advance(seq *Sequence) {
	if s.seq != seq {
		return
	}
	seq.Cursor++
	if !seq.Done() {
		return
	}

	s.seq = nil
	s.last = seq
	s.mode = ModeFree

	solved := s.state.IsSolved()
	s.log.Info("sequence done",
		"sequence", seq.ID,
		"origin", seq.Origin.String(),
		"moves", seq.Len(),
		"solved", solved,
	)
	s.cfg.metrics.playbackEnded(seq.Origin, true)
	s.record(seq, true)
	s.emit(Event{Kind: EventSequenceDone, Sequence: seq.clone()})

	if s.cfg.celebrator != nil {
		s.cfg.celebrator.Play(s.cfg.originX, s.cfg.originY, s.cfg.confettiCount)
	}
}

func (s *Session) rotationStarted(m Move) {
	s.log.Debug("rotation started", "move", m.Notation())
	s.emit(Event{Kind: EventRotationStarted, Move: m})
	s.dirty = true
}

func (s *Session) rotationCommitted(r *Rotation) {
	m := r.Move()
	s.cfg.metrics.rotationCommitted(m.Face, r.Reason(), r.Elapsed())
	if r.Reason() == CommitWatchdog {
		s.log.Warn("rotation forced by watchdog",
			"move", m.Notation(),
			"elapsed", r.Elapsed(),
		)
		s.emit(Event{Kind: EventWatchdog, Move: m})
	}
	s.log.Debug("rotation committed",
		"move", m.Notation(),
		"reason", r.Reason().String(),
		"move_count", s.state.MoveCount(),
	)
	s.emit(Event{Kind: EventRotationCommitted, Move: m})
	s.dirty = true
}

func (s *Session) rejected(m Move) {
	s.cfg.metrics.rotationRejected()
	s.log.Debug("rotation rejected: engine busy", "move", m.Notation())
	s.emit(Event{Kind: EventRotationRejected, Move: m})
}

func (s *Session) record(seq *Sequence, completed bool) {
	if s.cfg.journal == nil {
		return
	}
	rec := PlaybackRecord{
		ID:        seq.ID,
		SessionID: s.id,
		Origin:    seq.Origin,
		Moves:     append([]Move(nil), seq.Moves...),
		Played:    seq.Cursor,
		Completed: completed,
		Solved:    s.state.IsSolved(),
		StartedAt: seq.StartedAt,
		EndedAt:   s.cfg.now(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.cfg.journal.Record(ctx, rec); err != nil {
		s.log.Warn("failed to record playback", "sequence", seq.ID, "error", err)
	}
}

func (s *Session) emit(e Event) {
	e.At = s.clock
	if len(s.pending) == maxPendingEvents {
		s.pending = append(s.pending[:0], s.pending[1:]...)
	}
	s.pending = append(s.pending, e)
	for _, h := range s.handlers {
		h(e)
	}
}

func (s *Session) render() {
	if s.cfg.renderer == nil {
		s.dirty = false
		return
	}
	s.dirty = false
	s.cfg.renderer.Render(s.Frame())
}
