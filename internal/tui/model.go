// Package tui hosts a Session in a bubbletea program: frame ticks drive the
// animation, key presses and smart cube turns become commands.
package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SeamusWaldron/virtualcube"
	"github.com/SeamusWaldron/virtualcube/internal/confetti"
	"github.com/SeamusWaldron/virtualcube/internal/keymap"
	"github.com/SeamusWaldron/virtualcube/internal/render"
)

// DefaultFrameRate is the tick interval.
const DefaultFrameRate = time.Second / 30

// maxFrame caps the time fed to the session in one tick, so a stalled
// terminal does not skip a whole animation.
const maxFrame = 100 * time.Millisecond

// Options configures the model.
type Options struct {
	Context     context.Context
	Keymap      *keymap.Keymap
	Demo        string                     // notation played at startup
	Turns       <-chan virtualcube.Command // smart cube turns, may be nil
	Device      string                     // smart cube name for the status line
	Celebrators []virtualcube.Celebrator   // played alongside the confetti
	Scale       float64
	FrameRate   time.Duration
	Logger      *slog.Logger
}

// Messages
type tickMsg time.Time
type turnMsg struct{ cmd virtualcube.Command }
type demoMsg struct{}

// Model is the bubbletea model. It is also the session's Renderer: the
// session pushes a Frame whenever the picture changes and View draws the
// latest one.
type Model struct {
	ctx       context.Context
	session   *virtualcube.Session
	keys      *keymap.Keymap
	projector *render.Projector
	confetti  *confetti.Field
	turns     <-chan virtualcube.Command
	device    string
	demo      string
	frameRate time.Duration
	log       *slog.Logger

	frame    virtualcube.Frame
	last     time.Time
	status   string
	err      error
	width    int
	height   int
	quitting bool
}

var _ virtualcube.Renderer = (*Model)(nil)

// New builds the model and the session it hosts. sessionOpts are applied
// before the model installs itself as renderer and celebrator.
func New(opts Options, sessionOpts ...virtualcube.Option) *Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Keymap == nil {
		opts.Keymap = keymap.Default()
	}
	if opts.FrameRate <= 0 {
		opts.FrameRate = DefaultFrameRate
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	p := render.NewProjector(opts.Scale)
	w, h := p.Size()
	m := &Model{
		ctx:       opts.Context,
		keys:      opts.Keymap,
		projector: p,
		confetti:  confetti.NewField(float64(w), float64(h), nil),
		turns:     opts.Turns,
		device:    opts.Device,
		demo:      opts.Demo,
		frameRate: opts.FrameRate,
		log:       opts.Logger,
	}

	celebrators := append(virtualcube.MultiCelebrator{m.confetti}, opts.Celebrators...)
	all := append(append([]virtualcube.Option(nil), sessionOpts...),
		virtualcube.WithRenderer(m),
		virtualcube.WithCelebrator(celebrators),
		virtualcube.WithCelebrationOrigin(float64(w)/2, 0),
	)
	m.session = virtualcube.NewSession(all...)
	m.frame = m.session.Frame()
	return m
}

// Session returns the hosted session.
func (m *Model) Session() *virtualcube.Session {
	return m.session
}

// Render stores the latest frame.
func (m *Model) Render(f virtualcube.Frame) {
	m.frame = f
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tickCmd()}
	if m.turns != nil {
		cmds = append(cmds, m.listenForTurns())
	}
	if m.demo != "" {
		cmds = append(cmds, func() tea.Msg { return demoMsg{} })
	}
	return tea.Batch(cmds...)
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.frameRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) listenForTurns() tea.Cmd {
	return func() tea.Msg {
		cmd, ok := <-m.turns
		if !ok {
			return nil
		}
		return turnMsg{cmd: cmd}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, ok := m.keys.Lookup(m.session.Mode(), msg.String())
		if !ok {
			return m, nil
		}
		if cmd.Kind == virtualcube.CmdQuit {
			m.quitting = true
			return m, tea.Quit
		}
		m.dispatch(cmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		now := time.Time(msg)
		dt := m.frameRate
		if !m.last.IsZero() {
			dt = min(now.Sub(m.last), maxFrame)
		}
		m.last = now
		if dt > 0 {
			m.session.Tick(dt)
			m.confetti.Step(dt)
		}
		return m, m.tickCmd()

	case turnMsg:
		if err := m.session.Dispatch(m.ctx, msg.cmd); err != nil {
			m.log.Debug("smart cube turn ignored", "command", msg.cmd.String(), "error", err)
			m.status = "Smart cube turn ignored while a sequence plays"
		}
		return m, m.listenForTurns()

	case demoMsg:
		if err := m.session.Submit(m.demo); err != nil {
			m.err = err
		}
	}

	return m, nil
}

func (m *Model) dispatch(cmd virtualcube.Command) {
	m.err = nil
	m.status = ""
	err := m.session.Dispatch(m.ctx, cmd)
	switch {
	case err == nil:
		if cmd.Kind == virtualcube.CmdSolve && m.session.Mode() == virtualcube.ModeFree && m.session.State().IsSolved() {
			m.status = "Already solved"
		}
	case errors.Is(err, virtualcube.ErrRotationInFlight):
		m.status = "Busy: wait for the turn to finish"
	case errors.Is(err, virtualcube.ErrWrongMode):
		// keymaps are per mode, so this only happens on a mode race
	default:
		m.log.Warn("command failed", "command", cmd.String(), "error", err)
		m.err = err
	}
}
