package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/virtualcube"
	"github.com/SeamusWaldron/virtualcube/internal/storage"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		DBPath:        filepath.Join(t.TempDir(), "vcube.db"),
		Duration:      virtualcube.DefaultDuration,
		Easing:        "elastic-out",
		Playback:      "auto",
		SolverTimeout: time.Second,
	}
}

func run(t *testing.T, cfg *Config, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd(cfg)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("VCUBE_DURATION", "250ms")
	t.Setenv("VCUBE_PLAYBACK", "step")
	t.Setenv("VCUBE_SOUND", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Duration)
	assert.Equal(t, "step", cfg.Playback)
	assert.True(t, cfg.Sound)
	assert.True(t, cfg.Journal)
	assert.Equal(t, "elastic-out", cfg.Easing)
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	t.Setenv("VCUBE_DURATION", "soon")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestFlagsOverrideConfig(t *testing.T) {
	cfg := testConfig(t)
	cmd := NewRootCmd(cfg)
	require.NoError(t, cmd.PersistentFlags().Parse([]string{"--duration", "1s", "--playback", "step"}))
	assert.Equal(t, time.Second, cfg.Duration)
	assert.Equal(t, "step", cfg.Playback)
}

func TestApply(t *testing.T) {
	out, err := run(t, testConfig(t), "apply", "R U R' U'")
	require.NoError(t, err)

	assert.Contains(t, out, "Facelets: UULUUFUUFRRUBRRURRFFDFFUFFFDDRDDDDDDBLLLLLLLLBRRBBBBBB")
	assert.Contains(t, out, "Moves:    4")
	assert.Contains(t, out, "Solved:   no")
	assert.True(t, strings.HasPrefix(out, "      W W O\n"))
}

func TestApplyRejectsBadNotation(t *testing.T) {
	_, err := run(t, testConfig(t), "apply", "R X U")
	assert.ErrorIs(t, err, virtualcube.ErrInvalidNotation)
}

func TestSolveWithHistorySolver(t *testing.T) {
	out, err := run(t, testConfig(t), "solve", "--verify", virtualcube.DemoScramble)
	require.NoError(t, err)

	assert.Contains(t, out, "Solution (6 moves): B' L B' R B D2")
	assert.Contains(t, out, "Verified: puzzle solved")
}

func TestSolveAlreadySolved(t *testing.T) {
	out, err := run(t, testConfig(t), "solve", "R R'")
	require.NoError(t, err)
	assert.Contains(t, out, "Already solved")
}

func TestSolveWithExternalSolver(t *testing.T) {
	script := filepath.Join(t.TempDir(), "solver.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho 'U3 R3'\n"), 0o755))

	cfg := testConfig(t)
	out, err := run(t, cfg, "--solver", script, "solve", "--verify", "R U")
	require.NoError(t, err)
	assert.Contains(t, out, "Solution (2 moves): U' R'")
}

func TestSolveFailureFromExternalSolver(t *testing.T) {
	script := filepath.Join(t.TempDir(), "solver.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho 'Error 1'\n"), 0o755))

	_, err := run(t, testConfig(t), "--solver", script, "solve", "R U")
	assert.ErrorIs(t, err, virtualcube.ErrSolveFailure)
}

func TestHistory(t *testing.T) {
	cfg := testConfig(t)

	out, err := run(t, cfg, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No playbacks recorded yet")

	db, err := storage.Open(cfg.DBPath)
	require.NoError(t, err)
	require.NoError(t, db.MigrateUp())
	moves, err := virtualcube.ParseMoves("R U")
	require.NoError(t, err)
	require.NoError(t, storage.NewPlaybackRepository(db).Record(t.Context(), virtualcube.PlaybackRecord{
		ID:        "0123456789abcdef",
		Origin:    virtualcube.OriginSolve,
		Moves:     moves,
		Played:    2,
		Completed: true,
		Solved:    true,
		StartedAt: time.Now(),
	}))
	require.NoError(t, db.Close())

	out, err = run(t, cfg, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "01234567")
	assert.Contains(t, out, "solved")
	assert.Contains(t, out, "2/2")
	assert.Contains(t, out, "Total: 1 playbacks, 1 completed, 1 ended solved, 2 moves played")
}

func TestKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.yaml")
	require.NoError(t, os.WriteFile(path, []byte("solving:\n  \" \": next\n"), 0o644))

	out, err := run(t, testConfig(t), "--keymap", path, "keys")
	require.NoError(t, err)
	assert.Contains(t, out, "free mode:")
	assert.Contains(t, out, "solving mode:")
	assert.Contains(t, out, "next         n right")
}

func TestBadPlaybackFlag(t *testing.T) {
	_, err := run(t, testConfig(t), "--playback", "fast", "apply", "R")
	assert.Error(t, err)
}

func TestStartMetrics(t *testing.T) {
	cfg := testConfig(t)
	logger, closeLog, err := cfg.newLogger(&bytes.Buffer{})
	require.NoError(t, err)
	defer closeLog()

	metrics, stop, err := startMetrics("", logger)
	require.NoError(t, err)
	assert.Nil(t, metrics)
	stop()

	metrics, stop, err = startMetrics("127.0.0.1:0", logger)
	require.NoError(t, err)
	assert.NotNil(t, metrics)
	stop()
}
