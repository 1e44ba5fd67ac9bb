package virtualcube

import (
	"fmt"
	"math"
	"strings"
)

// Axis is one of the three world axes. X points right, Y up and Z toward
// the viewer.
type Axis int

const (
	AxisX Axis = 0
	AxisY Axis = 1
	AxisZ Axis = 2
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "?"
	}
}

// Face identifies one of the six outer layers of the puzzle.
// The numeric order matches the facelet layout of State.
type Face int

const (
	Up    Face = 0 // White
	Down  Face = 1 // Yellow
	Front Face = 2 // Green
	Back  Face = 3 // Blue
	Right Face = 4 // Red
	Left  Face = 5 // Orange
)

type faceInfo struct {
	letter byte
	name   string
	axis   Axis
	sign   int
}

var faceTable = [...]faceInfo{
	Up:    {'U', "Up", AxisY, +1},
	Down:  {'D', "Down", AxisY, -1},
	Front: {'F', "Front", AxisZ, +1},
	Back:  {'B', "Back", AxisZ, -1},
	Right: {'R', "Right", AxisX, +1},
	Left:  {'L', "Left", AxisX, -1},
}

// Faces returns the six faces in layout order.
func Faces() []Face {
	return []Face{Up, Down, Front, Back, Right, Left}
}

// Valid reports whether f names one of the six faces.
func (f Face) Valid() bool {
	return f >= 0 && int(f) < len(faceTable)
}

func (f Face) info() faceInfo {
	if !f.Valid() {
		panic(fmt.Errorf("%w: %d", ErrUnknownFace, int(f)))
	}
	return faceTable[f]
}

// Axis returns the world axis the face is perpendicular to.
// It panics if f is not a valid face.
func (f Face) Axis() Axis {
	return f.info().axis
}

// Sign returns +1 or -1: the side of the axis the face layer sits on.
// It panics if f is not a valid face.
func (f Face) Sign() int {
	return f.info().sign
}

// Letter returns the notation letter (U, D, F, B, R or L).
func (f Face) Letter() string {
	if !f.Valid() {
		return "?"
	}
	return string(faceTable[f].letter)
}

func (f Face) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Face(%d)", int(f))
	}
	return faceTable[f].name
}

// Opposite returns the face on the other end of the same axis.
func (f Face) Opposite() Face {
	return f ^ 1
}

// Color returns the sticker color of the face in the solved state.
func (f Face) Color() Color {
	return Color(f)
}

// FaceFromLetter maps a notation letter to its face. Lowercase letters
// are not accepted.
func FaceFromLetter(c byte) (Face, bool) {
	for f, info := range faceTable {
		if info.letter == c {
			return Face(f), true
		}
	}
	return 0, false
}

// Move is a turn of one face layer by a number of clockwise quarter turns,
// clockwise as seen looking at that face from outside the puzzle.
type Move struct {
	Face         Face
	QuarterTurns int // 1, 2 or 3; 3 is the prime turn
}

// NewMove returns a move with quarterTurns reduced modulo 4. Negative
// values count counter-clockwise, so NewMove(Right, -1) is R'.
func NewMove(face Face, quarterTurns int) Move {
	q := ((quarterTurns % 4) + 4) % 4
	return Move{Face: face, QuarterTurns: q}
}

// Valid reports whether m has a known face and a non-zero turn count.
func (m Move) Valid() bool {
	return m.Face.Valid() && m.QuarterTurns >= 1 && m.QuarterTurns <= 3
}

// Notation returns the standard notation for the move.
// Examples: R, R', R2, U, U', U2
func (m Move) Notation() string {
	if !m.Valid() {
		return "?"
	}
	switch m.QuarterTurns {
	case 2:
		return m.Face.Letter() + "2"
	case 3:
		return m.Face.Letter() + "'"
	default:
		return m.Face.Letter()
	}
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// IsPrime reports whether the move is a counter-clockwise quarter turn.
func (m Move) IsPrime() bool {
	return m.QuarterTurns == 3
}

// Inverse returns the move that undoes m.
// R becomes R', R' becomes R, R2 stays R2.
func (m Move) Inverse() Move {
	return NewMove(m.Face, 4-m.QuarterTurns)
}

// Merge combines m with a following turn of the same face. It reports
// false when the faces differ or when the two turns cancel out.
// R.Merge(R) is R2; R.Merge(R') cancels.
func (m Move) Merge(next Move) (Move, bool) {
	if m.Face != next.Face {
		return m, false
	}
	merged := NewMove(m.Face, m.QuarterTurns+next.QuarterTurns)
	if merged.QuarterTurns == 0 {
		return Move{}, false
	}
	return merged, true
}

// SignedTurns returns the shortest signed turn count: 1, 2 or -1.
func (m Move) SignedTurns() int {
	if m.QuarterTurns == 3 {
		return -1
	}
	return m.QuarterTurns
}

// Angle returns the rotation in radians about the face's world axis,
// using the right-hand rule. A clockwise turn of a face on the positive
// end of its axis is a negative angle. Prime turns rotate a quarter turn
// the other way rather than three quarters.
func (m Move) Angle() float64 {
	return -float64(m.Face.Sign()) * float64(m.SignedTurns()) * math.Pi / 2
}

// ParseMove parses a single token of the form [UDLRFB]('|2)?.
func ParseMove(s string) (Move, error) {
	if len(s) == 0 || len(s) > 2 {
		return Move{}, &ParseError{Token: s}
	}

	face, ok := FaceFromLetter(s[0])
	if !ok {
		return Move{}, &ParseError{Token: s}
	}

	turns := 1
	if len(s) == 2 {
		switch s[1] {
		case '\'':
			turns = 3
		case '2':
			turns = 2
		default:
			return Move{}, &ParseError{Token: s}
		}
	}

	return Move{Face: face, QuarterTurns: turns}, nil
}

// ParseMoves parses a whitespace-separated move string.
// Example: "R U R' U'"
// Parsing is all-or-nothing: the first bad token fails the whole string
// with a *ParseError. Empty input yields an empty sequence.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for i, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, &ParseError{Token: part, Index: i}
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// InvertMoves returns the sequence that undoes moves.
func InvertMoves(moves []Move) []Move {
	inv := make([]Move, len(moves))
	for i, m := range moves {
		inv[len(moves)-1-i] = m.Inverse()
	}
	return inv
}

// SimplifyMoves merges consecutive turns of the same face and drops turns
// that cancel out. R R becomes R2, R R' disappears, and a cancellation
// may expose a further merge (R U U' R' simplifies to nothing).
func SimplifyMoves(moves []Move) []Move {
	result := make([]Move, 0, len(moves))

	for _, m := range moves {
		n := len(result)
		if n > 0 && result[n-1].Face == m.Face {
			if merged, ok := result[n-1].Merge(m); ok {
				result[n-1] = merged
			} else {
				result = result[:n-1]
			}
			continue
		}
		result = append(result, m)
	}

	return result
}
