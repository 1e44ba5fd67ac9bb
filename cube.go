package virtualcube

import (
	"fmt"
	"strings"
)

// Color represents a sticker color.
type Color byte

const (
	White  Color = 0 // Up face when solved
	Yellow Color = 1 // Down face when solved
	Green  Color = 2 // Front face when solved
	Blue   Color = 3 // Back face when solved
	Red    Color = 4 // Right face when solved
	Orange Color = 5 // Left face when solved
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	default:
		return "?"
	}
}

// Name returns the lowercase color name.
func (c Color) Name() string {
	switch c {
	case White:
		return "white"
	case Yellow:
		return "yellow"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Red:
		return "red"
	case Orange:
		return "orange"
	default:
		return "unknown"
	}
}

// State is the logical model of the puzzle: 54 stickers plus the list of
// moves committed since the last reset. Each face has 9 facelets indexed as:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// Centers (index 4) never move. The zero value is not usable; call NewState.
type State struct {
	facelets [54]Color
	history  []Move
}

// NewState returns a solved state: white on top, green in front.
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset restores the solved arrangement and clears the move history.
func (s *State) Reset() {
	for i := range s.facelets {
		s.facelets[i] = Face(i / 9).Color()
	}
	s.history = s.history[:0]
}

// ApplyMove applies one move and appends it to the history.
// It panics if m is not a valid move.
func (s *State) ApplyMove(m Move) {
	if !m.Valid() {
		panic(fmt.Errorf("%w: cannot apply %+v", ErrInvalidNotation, m))
	}
	table := &moveTables[m.Face][m.QuarterTurns]
	var next [54]Color
	for dst, src := range table {
		next[dst] = s.facelets[src]
	}
	s.facelets = next
	s.history = append(s.history, m)
}

// Apply applies moves in order.
func (s *State) Apply(moves ...Move) {
	for _, m := range moves {
		s.ApplyMove(m)
	}
}

// ApplyNotation parses and applies a move string. Nothing is applied if
// any token is malformed.
func (s *State) ApplyNotation(notation string) error {
	moves, err := ParseMoves(notation)
	if err != nil {
		return err
	}
	s.Apply(moves...)
	return nil
}

// IsSolved returns true if every face shows a single color.
func (s *State) IsSolved() bool {
	for f := 0; f < 6; f++ {
		center := s.facelets[f*9+4]
		for i := 0; i < 9; i++ {
			if s.facelets[f*9+i] != center {
				return false
			}
		}
	}
	return true
}

// MoveCount returns the number of moves committed since the last reset.
func (s *State) MoveCount() int {
	return len(s.history)
}

// History returns a copy of the moves committed since the last reset.
func (s *State) History() []Move {
	out := make([]Move, len(s.history))
	copy(out, s.history)
	return out
}

// Facelet returns the color at index i (0-8) of face f.
func (s *State) Facelet(f Face, i int) Color {
	return s.facelets[int(f)*9+i]
}

// Facelets returns the sticker colors grouped by face.
func (s *State) Facelets() [6][9]Color {
	var out [6][9]Color
	for f := 0; f < 6; f++ {
		copy(out[f][:], s.facelets[f*9:f*9+9])
	}
	return out
}

// Clone creates a deep copy of the state, history included.
func (s *State) Clone() *State {
	return &State{
		facelets: s.facelets,
		history:  s.History(),
	}
}

// Equal reports whether both states show the same stickers.
// History is not compared.
func (s *State) Equal(o *State) bool {
	return s.facelets == o.facelets
}

// FaceletString returns the 54-character definition string read in
// U R F D L B face order, each sticker written as the letter of the face
// whose center has its color. This is the input format of two-phase
// solvers.
func (s *State) FaceletString() string {
	var sb strings.Builder
	sb.Grow(54)
	for _, f := range []Face{Up, Right, Front, Down, Left, Back} {
		for i := 0; i < 9; i++ {
			sb.WriteString(Face(s.Facelet(f, i)).Letter())
		}
	}
	return sb.String()
}

// String returns an unfolded net of the state.
func (s *State) String() string {
	var sb strings.Builder

	// U face (indented)
	for row := 0; row < 3; row++ {
		sb.WriteString("      ")
		for col := 0; col < 3; col++ {
			sb.WriteString(s.Facelet(Up, row*3+col).String() + " ")
		}
		sb.WriteString("\n")
	}

	// L, F, R, B faces (side by side)
	for row := 0; row < 3; row++ {
		for _, face := range []Face{Left, Front, Right, Back} {
			for col := 0; col < 3; col++ {
				sb.WriteString(s.Facelet(face, row*3+col).String() + " ")
			}
		}
		sb.WriteString("\n")
	}

	// D face (indented)
	for row := 0; row < 3; row++ {
		sb.WriteString("      ")
		for col := 0; col < 3; col++ {
			sb.WriteString(s.Facelet(Down, row*3+col).String() + " ")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
