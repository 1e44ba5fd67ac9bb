package virtualcube

import (
	"fmt"
	"strings"
)

// Mode is the sequencer mode.
type Mode int

const (
	ModeFree    Mode = iota // direct face turns accepted
	ModeSolving             // a sequence is playing; only step and reset
)

func (m Mode) String() string {
	switch m {
	case ModeFree:
		return "free"
	case ModeSolving:
		return "solving"
	default:
		return "unknown"
	}
}

// CommandKind enumerates the abstract input commands.
type CommandKind int

const (
	CmdTurn CommandKind = iota + 1
	CmdNext
	CmdReset
	CmdSolve
	CmdToggleHelp
	CmdQuit
)

var commandNames = map[CommandKind]string{
	CmdTurn:       "turn",
	CmdNext:       "next",
	CmdReset:      "reset",
	CmdSolve:      "solve",
	CmdToggleHelp: "help",
	CmdQuit:       "quit",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return fmt.Sprintf("CommandKind(%d)", int(k))
}

// Command is an abstract input, independent of the key that produced it.
type Command struct {
	Kind    CommandKind
	Face    Face // CmdTurn only
	Reverse bool // CmdTurn only: counter-clockwise
}

// Turn returns the command turning face a quarter turn.
func Turn(face Face, reverse bool) Command {
	return Command{Kind: CmdTurn, Face: face, Reverse: reverse}
}

// Move returns the move a turn command performs.
func (c Command) Move() Move {
	if c.Reverse {
		return NewMove(c.Face, -1)
	}
	return NewMove(c.Face, 1)
}

// String formats the command in the syntax ParseCommand accepts.
func (c Command) String() string {
	if c.Kind == CmdTurn {
		return "turn " + c.Move().Notation()
	}
	return c.Kind.String()
}

// ParseCommand parses "turn R", "turn R'", "next", "reset", "solve",
// "help" or "quit".
func ParseCommand(s string) (Command, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty", ErrUnknownCommand)
	}

	if fields[0] == "turn" {
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("%w: %q wants one quarter-turn move", ErrUnknownCommand, s)
		}
		m, err := ParseMove(fields[1])
		if err != nil {
			return Command{}, err
		}
		if m.QuarterTurns == 2 {
			return Command{}, fmt.Errorf("%w: %q turns are quarter turns", ErrUnknownCommand, s)
		}
		return Turn(m.Face, m.IsPrime()), nil
	}

	if len(fields) == 1 {
		for kind, name := range commandNames {
			if kind != CmdTurn && name == fields[0] {
				return Command{Kind: kind}, nil
			}
		}
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}

// Accepts reports whether mode takes commands of the given kind.
// FREE takes turns, reset, solve, help and quit; SOLVING takes next,
// reset, help and quit.
func (m Mode) Accepts(kind CommandKind) bool {
	switch kind {
	case CmdReset, CmdToggleHelp, CmdQuit:
		return true
	case CmdTurn, CmdSolve:
		return m == ModeFree
	case CmdNext:
		return m == ModeSolving
	default:
		return false
	}
}
