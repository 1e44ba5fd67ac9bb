// Package solver provides Solver implementations that run outside the
// session, such as an external two-phase solver binary.
package solver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/SeamusWaldron/virtualcube"
)

// DefaultTimeout bounds a single solver run.
const DefaultTimeout = 10 * time.Second

// Exec runs an external solver. The facelet string (URFDLB order) is
// passed as the last argument and the solution is read from stdout as
// whitespace-separated moves. Tokens in the "R1 R3 R2" style some
// two-phase solvers print are accepted alongside standard notation, and a
// trailing "(Nf)" length marker is ignored.
type Exec struct {
	Path    string
	Args    []string
	Timeout time.Duration
	Logger  *slog.Logger
}

var _ virtualcube.Solver = (*Exec)(nil)

// Solve runs the solver on s and checks that its answer solves s.
func (e *Exec) Solve(ctx context.Context, s *virtualcube.State) ([]virtualcube.Move, error) {
	if s.IsSolved() {
		return nil, nil
	}
	if e.Path == "" {
		return nil, fmt.Errorf("%w: no solver binary configured", virtualcube.ErrSolveFailure)
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	facelets := s.FaceletString()
	args := append(append([]string(nil), e.Args...), facelets)
	cmd := exec.CommandContext(ctx, e.Path, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	start := time.Now()
	err := cmd.Run()
	if e.Logger != nil {
		e.Logger.Debug("solver finished",
			"path", e.Path,
			"facelets", facelets,
			"elapsed", time.Since(start),
			"error", err,
		)
	}
	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %w", virtualcube.ErrSolveFailure, ctx.Err())
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: solver exited with %d: %s",
				virtualcube.ErrSolveFailure, exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("%w: %w", virtualcube.ErrSolveFailure, err)
	}

	moves, err := ParseOutput(stdout.String())
	if err != nil {
		return nil, err
	}
	if err := virtualcube.VerifySolution(s, moves); err != nil {
		return nil, err
	}
	return moves, nil
}

// ParseOutput reads a solver's answer. Output that starts with "Error"
// is reported as a solve failure.
func ParseOutput(out string) ([]virtualcube.Move, error) {
	out = strings.TrimSpace(out)
	if strings.HasPrefix(strings.ToLower(out), "error") {
		return nil, fmt.Errorf("%w: %s", virtualcube.ErrSolveFailure, out)
	}
	if i := strings.LastIndexByte(out, '('); i >= 0 && strings.HasSuffix(out, ")") {
		out = out[:i]
	}

	fields := strings.Fields(out)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, normalizeToken(f))
	}
	moves, err := virtualcube.ParseMoves(strings.Join(tokens, " "))
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable solver output %q: %w", virtualcube.ErrSolveFailure, out, err)
	}
	return moves, nil
}

// normalizeToken maps "R1" to "R", "R3" to "R'" and "R2'" to "R2".
func normalizeToken(tok string) string {
	if len(tok) < 2 {
		return tok
	}
	face, rest := tok[:1], tok[1:]
	switch rest {
	case "1":
		return face
	case "3", "3'":
		return face + "'"
	case "2'", "2":
		return face + "2"
	case "1'":
		return face + "'"
	}
	return tok
}
