package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SeamusWaldron/virtualcube"
	"github.com/SeamusWaldron/virtualcube/internal/anim"
	"github.com/SeamusWaldron/virtualcube/internal/keymap"
	"github.com/SeamusWaldron/virtualcube/internal/solver"
	"github.com/SeamusWaldron/virtualcube/internal/storage"
)

// Config holds settings read from VCUBE_* environment variables. Command
// line flags override them.
type Config struct {
	DBPath        string        `env:"VCUBE_DB"`
	Journal       bool          `env:"VCUBE_JOURNAL" envDefault:"true"`
	Verbose       bool          `env:"VCUBE_VERBOSE"`
	LogFile       string        `env:"VCUBE_LOG_FILE"`
	Keymap        string        `env:"VCUBE_KEYMAP"`
	Duration      time.Duration `env:"VCUBE_DURATION" envDefault:"500ms"`
	Easing        string        `env:"VCUBE_EASING" envDefault:"elastic-out"`
	Playback      string        `env:"VCUBE_PLAYBACK" envDefault:"auto"`
	Solver        string        `env:"VCUBE_SOLVER"`
	SolverTimeout time.Duration `env:"VCUBE_SOLVER_TIMEOUT" envDefault:"10s"`
	Sound         bool          `env:"VCUBE_SOUND"`
	Volume        float64       `env:"VCUBE_VOLUME" envDefault:"0.5"`
	SmartCube     bool          `env:"VCUBE_SMARTCUBE"`
	MetricsAddr   string        `env:"VCUBE_METRICS_ADDR"`
}

// LoadConfig parses the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// newLogger writes text logs to the log file, or to w when none is set.
// The returned closer releases the file.
func (c *Config) newLogger(w io.Writer) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	closer := func() error { return nil }

	if c.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(c.LogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closer = f.Close
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closer, nil
}

// dbPath returns the database path from config or the default.
func (c *Config) dbPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	return storage.DefaultDBPath()
}

// openDB opens the journal and applies migrations.
func (c *Config) openDB() (*storage.DB, error) {
	path, err := c.dbPath()
	if err != nil {
		return nil, err
	}
	db, err := storage.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

func (c *Config) loadKeymap() (*keymap.Keymap, error) {
	if c.Keymap == "" {
		return keymap.Default(), nil
	}
	return keymap.Load(c.Keymap)
}

func (c *Config) newSolver(logger *slog.Logger) virtualcube.Solver {
	if c.Solver == "" {
		return virtualcube.HistorySolver{}
	}
	return &solver.Exec{Path: c.Solver, Timeout: c.SolverTimeout, Logger: logger}
}

// sessionOptions turns the config into session options.
func (c *Config) sessionOptions(logger *slog.Logger) ([]virtualcube.Option, error) {
	easing, err := anim.EasingByName(c.Easing)
	if err != nil {
		return nil, err
	}
	playback, ok := virtualcube.ParsePlayback(c.Playback)
	if !ok {
		return nil, fmt.Errorf("unknown playback %q (want auto or step)", c.Playback)
	}
	if c.Duration < 0 {
		return nil, fmt.Errorf("duration must not be negative")
	}
	return []virtualcube.Option{
		virtualcube.WithDuration(c.Duration),
		virtualcube.WithEasing(easing),
		virtualcube.WithPlayback(playback),
		virtualcube.WithSolver(c.newSolver(logger)),
		virtualcube.WithLogger(logger),
	}, nil
}

// startMetrics registers session metrics and serves them on addr. It
// returns nil metrics when addr is empty.
func startMetrics(addr string, logger *slog.Logger) (*virtualcube.Metrics, func(), error) {
	if addr == "" {
		return nil, func() {}, nil
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to listen for metrics: %w", err)
	}

	reg := prometheus.NewRegistry()
	metrics := virtualcube.NewMetrics(reg)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "addr", addr, "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", ln.Addr().String())
	return metrics, func() { srv.Close() }, nil
}
