package virtualcube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in   string
		want Command
	}{
		{"turn R", Turn(Right, false)},
		{"turn R'", Turn(Right, true)},
		{"turn B", Turn(Back, false)},
		{"next", Command{Kind: CmdNext}},
		{"reset", Command{Kind: CmdReset}},
		{"solve", Command{Kind: CmdSolve}},
		{"help", Command{Kind: CmdToggleHelp}},
		{"quit", Command{Kind: CmdQuit}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCommand(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestParseCommandRejects(t *testing.T) {
	for _, in := range []string{"", "spin", "turn", "turn R2", "turn X", "next now"} {
		_, err := ParseCommand(in)
		assert.Error(t, err, in)
	}
}

func TestModeAccepts(t *testing.T) {
	assert.True(t, ModeFree.Accepts(CmdTurn))
	assert.True(t, ModeFree.Accepts(CmdSolve))
	assert.False(t, ModeFree.Accepts(CmdNext))
	assert.True(t, ModeSolving.Accepts(CmdNext))
	assert.False(t, ModeSolving.Accepts(CmdTurn))
	assert.False(t, ModeSolving.Accepts(CmdSolve))
	for _, m := range []Mode{ModeFree, ModeSolving} {
		assert.True(t, m.Accepts(CmdReset))
		assert.True(t, m.Accepts(CmdToggleHelp))
		assert.True(t, m.Accepts(CmdQuit))
	}
}

func TestSequenceHighlight(t *testing.T) {
	moves, err := ParseMoves("R U R' U'")
	require.NoError(t, err)
	seq := &Sequence{Moves: moves, Cursor: 2}

	assert.Equal(t, "R U [R'] U'", seq.Highlight("[", "]"))
	cur, ok := seq.Current()
	require.True(t, ok)
	assert.Equal(t, RPrime, cur)
	assert.Equal(t, []Move{RPrime, UPrime}, seq.Remaining())
	assert.False(t, seq.Done())

	seq.Cursor = 4
	assert.True(t, seq.Done())
	assert.Nil(t, seq.Remaining())
	assert.Equal(t, "R U R' U'", seq.Highlight("[", "]"))
}

func TestHistorySolver(t *testing.T) {
	s := NewState()
	require.NoError(t, s.ApplyNotation("R R U F' F' B"))

	moves, err := HistorySolver{}.Solve(t.Context(), s.Clone())
	require.NoError(t, err)
	assert.Equal(t, "B' F2 U' R2", FormatMoves(moves))
	require.NoError(t, VerifySolution(s, moves))
	assert.Equal(t, 6, s.MoveCount(), "verification must not touch the input")
}

func TestHistorySolverSolved(t *testing.T) {
	moves, err := HistorySolver{}.Solve(t.Context(), NewState())
	require.NoError(t, err)
	assert.Empty(t, moves)
}

func TestVerifySolutionRejects(t *testing.T) {
	s := NewState()
	s.ApplyMove(R)
	assert.ErrorIs(t, VerifySolution(s, []Move{U}), ErrSolveFailure)
	assert.ErrorIs(t, VerifySolution(s, []Move{{Face: Right}}), ErrSolveFailure)
}

func TestMultiCelebratorPlaysInOrder(t *testing.T) {
	var calls []string
	record := func(name string) Celebrator {
		return CelebratorFunc(func(x, y float64, n int) {
			assert.Equal(t, 12.0, x)
			assert.Equal(t, 0.0, y)
			assert.Equal(t, 300, n)
			calls = append(calls, name)
		})
	}

	MultiCelebrator{record("confetti"), record("chime")}.Play(12, 0, 300)
	assert.Equal(t, []string{"confetti", "chime"}, calls)
}
