package virtualcube

import (
	"context"
	"fmt"
)

// HistorySolver solves a state by undoing its move history, merging
// adjacent turns of the same face. It needs no search and always succeeds
// for states built by applying moves from solved.
type HistorySolver struct{}

// Solve returns the simplified inverse of s's history.
func (HistorySolver) Solve(ctx context.Context, s *State) ([]Move, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.IsSolved() {
		return nil, nil
	}

	moves := SimplifyMoves(InvertMoves(s.History()))

	if err := VerifySolution(s, moves); err != nil {
		return nil, err
	}
	return moves, nil
}

// VerifySolution checks that moves take s to the solved state. s is not
// modified.
func VerifySolution(s *State, moves []Move) error {
	check := s.Clone()
	for i, m := range moves {
		if !m.Valid() {
			return fmt.Errorf("%w: move %d is invalid", ErrSolveFailure, i)
		}
		check.ApplyMove(m)
	}
	if !check.IsSolved() {
		return fmt.Errorf("%w: %d moves leave the puzzle unsolved", ErrSolveFailure, len(moves))
	}
	return nil
}
