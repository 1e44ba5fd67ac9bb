package virtualcube

import (
	"errors"
	"fmt"
)

// Sentinel errors for the virtualcube package.
var (
	// Parsing errors
	ErrInvalidNotation = errors.New("virtualcube: invalid move notation")
	ErrUnknownCommand  = errors.New("virtualcube: unknown command")

	// Rotation errors
	ErrRotationInFlight = errors.New("virtualcube: rotation already in flight")
	ErrUnknownFace      = errors.New("virtualcube: unknown face")

	// Sequencer errors
	ErrSolveFailure   = errors.New("virtualcube: solver could not produce a solution")
	ErrWrongMode      = errors.New("virtualcube: command not accepted in current mode")
	ErrSequenceActive = errors.New("virtualcube: a move sequence is already playing")
)

// ParseError reports the first malformed token in a move string.
// It unwraps to ErrInvalidNotation.
type ParseError struct {
	Token string // offending token
	Index int    // zero-based token position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("virtualcube: invalid move %q at position %d", e.Token, e.Index)
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidNotation
}
