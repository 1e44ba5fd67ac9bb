package virtualcube

import (
	"testing"
)

func TestNewStateIsSolved(t *testing.T) {
	s := NewState()
	if !s.IsSolved() {
		t.Error("New state should be solved")
	}
	if s.MoveCount() != 0 {
		t.Errorf("New state move count = %d, want 0", s.MoveCount())
	}
}

func TestSingleMoveBreaksSolved(t *testing.T) {
	s := NewState()
	s.ApplyMove(R)
	if s.IsSolved() {
		t.Error("State should not be solved after R move")
	}
}

func TestQuarterTurnsX4_ReturnToSolved_AllFaces(t *testing.T) {
	for _, face := range Faces() {
		s := NewState()
		m := NewMove(face, 1)
		s.Apply(m, m, m, m)
		if !s.IsSolved() {
			t.Errorf("%v x 4 should return to solved", m)
			t.Log(s.String())
		}
		if s.MoveCount() != 4 {
			t.Errorf("%v x 4 move count = %d, want 4", m, s.MoveCount())
		}
	}
}

func TestDoubleTurnTwice_ReturnsToSolved(t *testing.T) {
	for _, face := range Faces() {
		s := NewState()
		s.Apply(NewMove(face, 2), NewMove(face, 2))
		if !s.IsSolved() {
			t.Errorf("%s2 %s2 should return to solved", face.Letter(), face.Letter())
			t.Log(s.String())
		}
	}
}

func TestMoveThenInverse_ReturnsToSolved(t *testing.T) {
	for _, face := range Faces() {
		for q := 1; q <= 3; q++ {
			s := NewState()
			m := NewMove(face, q)
			s.Apply(m, m.Inverse())
			if !s.IsSolved() {
				t.Errorf("%v %v should return to solved", m, m.Inverse())
			}
		}
	}
}

func TestDoubleTurnEqualsTwoQuarterTurns(t *testing.T) {
	for _, face := range Faces() {
		a, b := NewState(), NewState()
		a.ApplyMove(NewMove(face, 2))
		b.Apply(NewMove(face, 1), NewMove(face, 1))
		if !a.Equal(b) {
			t.Errorf("%s2 differs from %s %s", face.Letter(), face.Letter(), face.Letter())
		}
	}
}

func TestSexyMove_6Times_ReturnsToSolved(t *testing.T) {
	// (R U R' U') x 6 = identity
	s := NewState()
	for i := 0; i < 6; i++ {
		s.Apply(SexyMove...)
	}
	if !s.IsSolved() {
		t.Error("Sexy move x 6 should return to solved")
		t.Log(s.String())
	}
}

func TestTPermTwice_ReturnsToSolved(t *testing.T) {
	s := NewState()
	s.Apply(TPerm...)
	if s.IsSolved() {
		t.Error("T-perm should scramble the top layer")
	}
	s.Apply(TPerm...)
	if !s.IsSolved() {
		t.Error("T-perm x 2 should return to solved")
		t.Log(s.String())
	}
}

func TestFaceletString(t *testing.T) {
	tests := []struct {
		moves string
		want  string
	}{
		{"", "UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB"},
		{"R", "UUFUUFUUFRRRRRRRRRFFDFFDFFDDDBDDBDDBLLLLLLLLLUBBUBBUBB"},
		{"U", "UUUUUUUUUBBBRRRRRRRRRFFFFFFDDDDDDDDDFFFLLLLLLLLLBBBBBB"},
		{"F", "UUUUUULLLURRURRURRFFFFFFFFFRRRDDDDDDLLDLLDLLDBBBBBBBBB"},
		{"D", "UUUUUUUUURRRRRRFFFFFFFFFLLLDDDDDDDDDLLLLLLBBBBBBBBBRRR"},
		{"L", "BUUBUUBUURRRRRRRRRUFFUFFUFFFDDFDDFDDLLLLLLLLLBBDBBDBBD"},
		{"B", "RRRUUUUUURRDRRDRRDFFFFFFFFFDDDDDDLLLULLULLULLBBBBBBBBB"},
		{"R U R' U'", "UULUUFUUFRRUBRRURRFFDFFUFFFDDRDDDDDDBLLLLLLLLBRRBBBBBB"},
		{"D2 B' R' B L' B", "BRLFUBBUBUUDRRDRRRDFLDFUDBUFDFBDFLLBLLRLLRFLRFBDFBDUUU"},
	}

	for _, tt := range tests {
		s := NewState()
		if err := s.ApplyNotation(tt.moves); err != nil {
			t.Fatalf("ApplyNotation(%q): %v", tt.moves, err)
		}
		if got := s.FaceletString(); got != tt.want {
			t.Errorf("%q: FaceletString() = %s, want %s", tt.moves, got, tt.want)
		}
	}
}

func TestApplyNotationIsAllOrNothing(t *testing.T) {
	s := NewState()
	if err := s.ApplyNotation("R U X"); err == nil {
		t.Fatal("expected error for bad token")
	}
	if !s.IsSolved() || s.MoveCount() != 0 {
		t.Error("a rejected string must not change the state")
	}
}

func TestResetClearsHistory(t *testing.T) {
	s := NewState()
	s.Apply(R, U, FPrime)
	s.Reset()
	if !s.IsSolved() {
		t.Error("Reset should solve the state")
	}
	if s.MoveCount() != 0 {
		t.Errorf("move count after reset = %d, want 0", s.MoveCount())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewState()
	s.ApplyMove(R)
	c := s.Clone()
	c.ApplyMove(U)

	if s.MoveCount() != 1 || c.MoveCount() != 2 {
		t.Errorf("move counts = %d/%d, want 1/2", s.MoveCount(), c.MoveCount())
	}
	if s.Equal(c) {
		t.Error("clone should diverge after an extra move")
	}
}

func TestCentersNeverMove(t *testing.T) {
	s := NewState()
	_ = s.ApplyNotation("R U F' L2 D B' R2 U' F2")
	for _, f := range Faces() {
		if got := s.Facelet(f, 4); got != f.Color() {
			t.Errorf("center of %v = %v, want %v", f, got, f.Color())
		}
	}
}

func TestStateString(t *testing.T) {
	s := NewState()
	out := s.String()
	if len(out) == 0 {
		t.Fatal("String() returned empty output")
	}
	t.Log("\n" + out)
}
