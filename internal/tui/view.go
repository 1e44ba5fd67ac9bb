package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/virtualcube"
	"github.com/SeamusWaldron/virtualcube/internal/render"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	modeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	currentMoveStyle = lipgloss.NewStyle().
				Bold(true).
				Reverse(true).
				Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const (
	freeLegend    = "f b l r u d / 1-6: turn (shift reverses)  s: solve  0: reset  h: help  q: quit"
	solvingLegend = "right/n: next move  0: reset  h: help  q: quit"
)

func (m *Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	f := m.frame
	var b strings.Builder

	b.WriteString(titleStyle.Render("Virtual Cube"))
	b.WriteString("  ")
	b.WriteString(modeStyle.Render(strings.ToUpper(f.Mode.String())))
	if m.device != "" {
		b.WriteString("  ")
		b.WriteString(statusStyle.Render("Smart cube: " + m.device))
	}
	b.WriteString("\n\n")

	c := m.projector.Render(f.Units)
	m.confetti.Draw(c)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		c.Styled(),
		"  ",
		render.Net(f.State).Styled(),
	))
	b.WriteString("\n")

	b.WriteString(sequenceLine(f))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(statusLine(f)))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if f.Help {
		b.WriteString(helpStyle.Render(m.keys.Describe(f.Mode)))
	} else if f.Mode == virtualcube.ModeSolving {
		b.WriteString(helpStyle.Render(solvingLegend))
	} else {
		b.WriteString(helpStyle.Render(freeLegend))
	}
	b.WriteString("\n")

	return b.String()
}

// sequenceLine shows the playing sequence with the current move marked.
func sequenceLine(f virtualcube.Frame) string {
	seq := f.Sequence
	if seq == nil {
		if f.State != nil && f.State.IsSolved() {
			return moveStyle.Render("Solved!")
		}
		return ""
	}

	parts := make([]string, len(seq.Moves))
	for i, mv := range seq.Moves {
		if i == seq.Cursor {
			parts[i] = currentMoveStyle.Render(mv.Notation())
		} else {
			parts[i] = moveStyle.Render(mv.Notation())
		}
	}
	return fmt.Sprintf("%s (%d/%d): %s", seq.Origin, seq.Cursor, seq.Len(), strings.Join(parts, " "))
}

func statusLine(f virtualcube.Frame) string {
	s := fmt.Sprintf("Moves: %d", f.State.MoveCount())
	if f.Rotation != nil {
		s += fmt.Sprintf("  Turning: %s %3.0f%%", f.Rotation.Move.Notation(), f.Rotation.Progress*100)
	}
	return s
}
