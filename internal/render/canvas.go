// Package render draws the puzzle as terminal text: an unfolded net of the
// logical state and an isometric view of the 27 units.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/virtualcube"
)

// Cell is one character of a canvas. Color is a lipgloss color; when set
// the cell is drawn with that background.
type Cell struct {
	Rune  rune
	Color string
}

// Canvas is a fixed-size grid of cells.
type Canvas struct {
	W, H  int
	cells []Cell
}

// NewCanvas returns a blank canvas.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{W: w, H: h, cells: make([]Cell, w*h)}
	c.Clear()
	return c
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = Cell{Rune: ' '}
	}
}

// Set writes a cell. Out-of-bounds writes are dropped.
func (c *Canvas) Set(x, y int, r rune, color string) {
	if x < 0 || y < 0 || x >= c.W || y >= c.H {
		return
	}
	c.cells[y*c.W+x] = Cell{Rune: r, Color: color}
}

// At returns the cell at x, y.
func (c *Canvas) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= c.W || y >= c.H {
		return Cell{Rune: ' '}
	}
	return c.cells[y*c.W+x]
}

// Text writes s starting at x, y.
func (c *Canvas) Text(x, y int, s, color string) {
	for i, r := range []rune(s) {
		c.Set(x+i, y, r, color)
	}
}

// Plain returns the runes only, with trailing spaces trimmed.
func (c *Canvas) Plain() string {
	var sb strings.Builder
	line := make([]rune, c.W)
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			line[x] = c.cells[y*c.W+x].Rune
		}
		sb.WriteString(strings.TrimRight(string(line), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Styled renders the canvas with colored backgrounds. Runs of cells
// sharing a color are styled together.
func (c *Canvas) Styled() string {
	var sb strings.Builder
	for y := 0; y < c.H; y++ {
		row := c.cells[y*c.W : (y+1)*c.W]
		for x := 0; x < len(row); {
			color := row[x].Color
			var run []rune
			for ; x < len(row) && row[x].Color == color; x++ {
				run = append(run, row[x].Rune)
			}
			if color == "" {
				sb.WriteString(string(run))
				continue
			}
			sb.WriteString(lipgloss.NewStyle().
				Background(lipgloss.Color(color)).
				Foreground(lipgloss.Color("#000000")).
				Render(string(run)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Palette maps sticker colors to terminal colors.
var Palette = map[virtualcube.Color]string{
	virtualcube.White:  "#ffffff",
	virtualcube.Yellow: "#ffeb3b",
	virtualcube.Green:  "#4caf50",
	virtualcube.Blue:   "#2196f3",
	virtualcube.Red:    "#f44336",
	virtualcube.Orange: "#ff9800",
}

// BodyColor is the plastic between stickers.
const BodyColor = "#202020"
