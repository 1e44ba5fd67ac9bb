package virtualcube

import (
	"io"
	"log/slog"
	"time"

	"github.com/SeamusWaldron/virtualcube/internal/anim"
)

// Playback selects how a SOLVING sequence advances.
type Playback int

const (
	// PlaybackAuto starts each move as soon as the previous one commits.
	PlaybackAuto Playback = iota
	// PlaybackStep waits for an explicit Next before every move.
	PlaybackStep
)

func (p Playback) String() string {
	if p == PlaybackStep {
		return "step"
	}
	return "auto"
}

// ParsePlayback parses "auto" or "step".
func ParsePlayback(s string) (Playback, bool) {
	switch s {
	case "auto":
		return PlaybackAuto, true
	case "step":
		return PlaybackStep, true
	default:
		return 0, false
	}
}

// DefaultConfettiCount is the particle count passed to the celebrator.
const DefaultConfettiCount = 150

// Option configures a Session.
type Option func(*config)

type config struct {
	duration      time.Duration
	easing        anim.Easing
	watchdog      time.Duration
	watchdogSet   bool
	animator      anim.Animator
	playback      Playback
	solver        Solver
	renderer      Renderer
	celebrator    Celebrator
	journal       Journal
	logger        *slog.Logger
	metrics       *Metrics
	confettiCount int
	originX       float64
	originY       float64
	now           func() time.Time
}

func defaultConfig() *config {
	return &config{
		duration:      DefaultDuration,
		easing:        anim.ElasticOut,
		playback:      PlaybackAuto,
		solver:        HistorySolver{},
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		confettiCount: DefaultConfettiCount,
		now:           time.Now,
	}
}

// WithDuration sets how long one rotation animates. Double turns use the
// same duration as quarter turns.
func WithDuration(d time.Duration) Option {
	return func(c *config) {
		c.duration = d
	}
}

// WithEasing sets the rotation easing. The default overshoots slightly
// before settling.
func WithEasing(e anim.Easing) Option {
	return func(c *config) {
		if e != nil {
			c.easing = e
		}
	}
}

// WithWatchdog sets how long a rotation may animate before it is
// committed regardless. Zero disables the watchdog. Without this option
// the watchdog follows the rotation duration.
func WithWatchdog(d time.Duration) Option {
	return func(c *config) {
		c.watchdog = d
		c.watchdogSet = true
	}
}

// WithAnimator replaces the tween player.
func WithAnimator(a anim.Animator) Option {
	return func(c *config) {
		c.animator = a
	}
}

// WithPlayback selects automatic or stepwise sequence playback.
func WithPlayback(p Playback) Option {
	return func(c *config) {
		c.playback = p
	}
}

// WithSolver replaces the default history-based solver.
func WithSolver(s Solver) Option {
	return func(c *config) {
		if s != nil {
			c.solver = s
		}
	}
}

// WithRenderer sets the frame sink.
func WithRenderer(r Renderer) Option {
	return func(c *config) {
		c.renderer = r
	}
}

// WithCelebrator sets the effect played when a sequence finishes.
func WithCelebrator(cel Celebrator) Option {
	return func(c *config) {
		c.celebrator = cel
	}
}

// WithCelebrationOrigin sets where the celebration starts, in renderer
// coordinates.
func WithCelebrationOrigin(x, y float64) Option {
	return func(c *config) {
		c.originX, c.originY = x, y
	}
}

// WithConfettiCount sets the particle count passed to the celebrator.
func WithConfettiCount(n int) Option {
	return func(c *config) {
		c.confettiCount = n
	}
}

// WithJournal records every playback.
func WithJournal(j Journal) Option {
	return func(c *config) {
		c.journal = j
	}
}

// WithLogger sets the structured logger. Sessions log nothing by default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithClock sets the wall clock used for journal timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}
