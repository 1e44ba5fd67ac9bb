package virtualcube

import (
	"strings"
	"time"
)

// SequenceOrigin says where a move sequence came from.
type SequenceOrigin int

const (
	OriginScramble SequenceOrigin = iota // user-submitted notation
	OriginSolve                          // produced by the solver
)

func (o SequenceOrigin) String() string {
	switch o {
	case OriginScramble:
		return "scramble"
	case OriginSolve:
		return "solve"
	default:
		return "unknown"
	}
}

// ParseOrigin is the inverse of SequenceOrigin.String.
func ParseOrigin(s string) (SequenceOrigin, bool) {
	switch s {
	case "scramble":
		return OriginScramble, true
	case "solve":
		return OriginSolve, true
	default:
		return 0, false
	}
}

// Sequence is a list of moves being played back. Cursor counts the moves
// already committed; the move at Cursor is the one playing or up next.
type Sequence struct {
	ID        string
	Moves     []Move
	Cursor    int
	Source    string // notation the sequence was built from
	Origin    SequenceOrigin
	StartedAt time.Time
}

// Len returns the number of moves.
func (q *Sequence) Len() int {
	return len(q.Moves)
}

// Done reports whether every move has been committed.
func (q *Sequence) Done() bool {
	return q.Cursor >= len(q.Moves)
}

// Current returns the move at the cursor.
func (q *Sequence) Current() (Move, bool) {
	if q.Done() {
		return Move{}, false
	}
	return q.Moves[q.Cursor], true
}

// Remaining returns the moves not yet committed.
func (q *Sequence) Remaining() []Move {
	if q.Done() {
		return nil
	}
	return q.Moves[q.Cursor:]
}

// Highlight formats the sequence with the move at the cursor wrapped in
// open and close. Highlight("[", "]") gives "R U [R'] U'".
func (q *Sequence) Highlight(open, close string) string {
	parts := make([]string, len(q.Moves))
	for i, m := range q.Moves {
		if i == q.Cursor {
			parts[i] = open + m.Notation() + close
		} else {
			parts[i] = m.Notation()
		}
	}
	return strings.Join(parts, " ")
}

func (q *Sequence) clone() *Sequence {
	if q == nil {
		return nil
	}
	c := *q
	c.Moves = append([]Move(nil), q.Moves...)
	return &c
}
