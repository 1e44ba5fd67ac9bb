package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/virtualcube"
)

type recordingCelebrator struct{ plays int }

func (r *recordingCelebrator) Play(_, _ float64, _ int) { r.plays++ }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// tick feeds n frames of 50ms.
func tick(m *Model, start time.Time, n int) time.Time {
	for i := 0; i < n; i++ {
		start = start.Add(50 * time.Millisecond)
		m.Update(tickMsg(start))
	}
	return start
}

func newTestModel(opts Options) *Model {
	return New(opts, virtualcube.WithDuration(100*time.Millisecond))
}

func TestKeyTurnsFace(t *testing.T) {
	m := newTestModel(Options{})
	now := time.Unix(0, 0)

	m.Update(runes("r"))
	require.True(t, m.Session().Busy())
	now = tick(m, now, 5)
	m.Update(runes("U"))
	tick(m, now, 5)

	assert.False(t, m.Session().Busy())
	assert.Equal(t, "R U'", virtualcube.FormatMoves(m.Session().State().History()))
}

func TestKeysIgnoredInWrongMode(t *testing.T) {
	m := newTestModel(Options{})

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.False(t, m.Session().Busy())
	assert.Nil(t, m.err)
}

func TestDemoPlaysInStepMode(t *testing.T) {
	m := New(Options{Demo: "R U"},
		virtualcube.WithDuration(100*time.Millisecond),
		virtualcube.WithPlayback(virtualcube.PlaybackStep),
	)
	now := time.Unix(0, 0)

	m.Update(demoMsg{})
	require.Equal(t, virtualcube.ModeSolving, m.Session().Mode())
	assert.Contains(t, m.View(), "SOLVING")

	// Turn keys do nothing while solving.
	m.Update(runes("f"))
	assert.False(t, m.Session().Busy())

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	now = tick(m, now, 5)
	m.Update(runes("n"))
	tick(m, now, 5)

	assert.Equal(t, virtualcube.ModeFree, m.Session().Mode())
	assert.Equal(t, 2, m.Session().State().MoveCount())
}

func TestSolveCelebrates(t *testing.T) {
	cel := &recordingCelebrator{}
	m := newTestModel(Options{Celebrators: []virtualcube.Celebrator{cel}})
	now := time.Unix(0, 0)

	m.Update(runes("f"))
	now = tick(m, now, 5)
	m.Update(runes("s"))
	require.Equal(t, virtualcube.ModeSolving, m.Session().Mode())
	tick(m, now, 10)

	assert.Equal(t, virtualcube.ModeFree, m.Session().Mode())
	assert.True(t, m.Session().State().IsSolved())
	assert.Equal(t, 1, cel.plays)
	assert.True(t, m.confetti.Active())
	assert.Contains(t, m.View(), "Solved!")
}

func TestSolveWhenSolved(t *testing.T) {
	m := newTestModel(Options{})
	m.Update(runes("s"))
	assert.Equal(t, "Already solved", m.status)
}

func TestSolveDuringTurnReportsBusy(t *testing.T) {
	m := newTestModel(Options{})
	now := time.Unix(0, 0)

	m.Update(runes("r"))
	now = tick(m, now, 5)
	m.Update(runes("u"))
	require.True(t, m.Session().Busy())

	m.Update(runes("s"))
	assert.NotEqual(t, "Already solved", m.status)
	assert.Contains(t, m.status, "Busy")
	assert.Equal(t, virtualcube.ModeFree, m.Session().Mode())
	assert.Nil(t, m.err)

	tick(m, now, 5)
	assert.False(t, m.Session().State().IsSolved())
}

func TestSmartCubeTurns(t *testing.T) {
	turns := make(chan virtualcube.Command, 1)
	m := newTestModel(Options{Turns: turns, Device: "GoCube_1"})
	turns <- virtualcube.Turn(virtualcube.Left, true)

	msg := m.listenForTurns()()
	_, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	assert.True(t, m.Session().Busy())
	assert.Contains(t, m.View(), "GoCube_1")

	close(turns)
	assert.Nil(t, m.listenForTurns()())
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(Options{})
	assert.Contains(t, m.View(), freeLegend)

	m.Update(runes("h"))
	view := m.View()
	assert.NotContains(t, view, freeLegend)
	assert.True(t, strings.Contains(view, "turn R'"))
}

func TestQuit(t *testing.T) {
	m := newTestModel(Options{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, "Goodbye!\n", m.View())
}

func TestTickClampsLongFrames(t *testing.T) {
	m := newTestModel(Options{})
	start := time.Unix(0, 0)
	m.Update(tickMsg(start))
	m.Update(tickMsg(start.Add(time.Hour)))
	assert.Equal(t, DefaultFrameRate+maxFrame, m.Session().Clock())
}
