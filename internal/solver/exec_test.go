package solver

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/virtualcube"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}
	path := filepath.Join(t.TempDir(), "solver.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func scrambled(t *testing.T, notation string) *virtualcube.State {
	t.Helper()
	s := virtualcube.NewState()
	require.NoError(t, s.ApplyNotation(notation))
	return s
}

func TestParseOutput(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want string
	}{
		{"standard", "R U' F2\n", "R U' F2"},
		{"numeric", "R1 U3 F2", "R U' F2"},
		{"length marker", "D2 L3 (2f)", "D2 L'"},
		{"double prime", "B2' R1'", "B2 R'"},
		{"empty", "  \n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moves, err := ParseOutput(tt.out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, virtualcube.FormatMoves(moves))
		})
	}
}

func TestParseOutputErrors(t *testing.T) {
	for _, out := range []string{"Error 8", "R X2", "R4"} {
		_, err := ParseOutput(out)
		assert.ErrorIs(t, err, virtualcube.ErrSolveFailure, out)
	}
}

func TestExecSolves(t *testing.T) {
	// "R U" is undone by "U' R'"; the script also checks it received the
	// facelet string.
	state := scrambled(t, "R U")
	script := writeScript(t, `[ ${#1} -eq 54 ] || exit 3
echo "U3 R3 (2f)"`)

	e := &Exec{Path: script}
	moves, err := e.Solve(t.Context(), state.Clone())
	require.NoError(t, err)
	assert.Equal(t, "U' R'", virtualcube.FormatMoves(moves))
}

func TestExecSolvedStateSkipsBinary(t *testing.T) {
	e := &Exec{Path: "/nonexistent/solver"}
	moves, err := e.Solve(t.Context(), virtualcube.NewState())
	require.NoError(t, err)
	assert.Empty(t, moves)
}

func TestExecFailures(t *testing.T) {
	state := scrambled(t, "R U")

	tests := []struct {
		name    string
		script  string
		timeout time.Duration
	}{
		{"wrong answer", `echo "R"`, 0},
		{"error output", `echo "Error 2"`, 0},
		{"exit status", `echo boom >&2; exit 1`, 0},
		{"timeout", `exec sleep 5`, 100 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Exec{Path: writeScript(t, tt.script), Timeout: tt.timeout}
			_, err := e.Solve(t.Context(), state.Clone())
			assert.ErrorIs(t, err, virtualcube.ErrSolveFailure)
		})
	}
}

func TestExecWithoutPath(t *testing.T) {
	_, err := (&Exec{}).Solve(t.Context(), scrambled(t, "F"))
	assert.ErrorIs(t, err, virtualcube.ErrSolveFailure)
}
