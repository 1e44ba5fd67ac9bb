package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/virtualcube"
	"github.com/SeamusWaldron/virtualcube/internal/chime"
	"github.com/SeamusWaldron/virtualcube/internal/smartcube"
	"github.com/SeamusWaldron/virtualcube/internal/storage"
	"github.com/SeamusWaldron/virtualcube/internal/tui"
)

const scanTimeout = 10 * time.Second

func newPlayCmd(cfg *Config) *cobra.Command {
	var demo bool

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play with the puzzle in the terminal",
		Long: `Start the interactive puzzle.

Keyboard (defaults, see 'vcube keys'):
  f b l r u d   - Turn a face clockwise (shift: counter-clockwise)
  1-6           - Turn F B L R U D (shift: counter-clockwise)
  s             - Solve: play the solution move by move
  right / n     - Next move of a step-by-step playback
  0             - Reset to solved
  h             - Toggle help
  q / ctrl+c    - Quit

With --smartcube the first GoCube found is connected and its turns are
mirrored on screen.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), cfg, demo)
		},
	}

	cmd.Flags().BoolVar(&demo, "demo", false, "Play the demo scramble on start")
	cmd.Flags().BoolVar(&cfg.Sound, "sound", cfg.Sound, "Play a chime when a sequence finishes")
	cmd.Flags().Float64Var(&cfg.Volume, "volume", cfg.Volume, "Chime volume, 0 to 1")
	cmd.Flags().BoolVar(&cfg.SmartCube, "smartcube", cfg.SmartCube, "Connect a GoCube smart cube over Bluetooth")
	cmd.Flags().BoolVar(&cfg.Journal, "journal", cfg.Journal, "Record playbacks in the journal database")
	return cmd
}

func runPlay(ctx context.Context, cfg *Config, demo bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// The TUI owns the terminal, so logs go to a file.
	if cfg.LogFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.LogFile = filepath.Join(home, ".vcube", "vcube.log")
	}
	logger, closeLog, err := cfg.newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	keys, err := cfg.loadKeymap()
	if err != nil {
		return err
	}
	opts, err := cfg.sessionOptions(logger)
	if err != nil {
		return err
	}

	metrics, stopMetrics, err := startMetrics(cfg.MetricsAddr, logger)
	if err != nil {
		return err
	}
	defer stopMetrics()
	if metrics != nil {
		opts = append(opts, virtualcube.WithMetrics(metrics))
	}

	if cfg.Journal {
		db, err := cfg.openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		opts = append(opts, virtualcube.WithJournal(storage.NewPlaybackRepository(db)))
	}

	var celebrators []virtualcube.Celebrator
	if cfg.Sound {
		c := chime.New(cfg.Volume)
		if err := c.Init(); err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			celebrators = append(celebrators, c)
		}
	}

	tuiOpts := tui.Options{
		Context: ctx,
		Keymap:  keys,
		Logger:  logger,
	}
	if demo {
		tuiOpts.Demo = virtualcube.DemoScramble
	}

	if cfg.SmartCube {
		client, err := connectSmartCube(ctx, logger)
		if err != nil {
			return err
		}
		defer client.Disconnect()

		turns := make(chan virtualcube.Command, 64)
		client.OnTurn(func(c virtualcube.Command) {
			select {
			case turns <- c:
			default:
				logger.Warn("smart cube turn dropped", "command", c.String())
			}
		})
		tuiOpts.Turns = turns
		tuiOpts.Device = client.Name()
		celebrators = append(celebrators, smartcube.NewBacklight(client, logger))
	}
	tuiOpts.Celebrators = celebrators

	model := tui.New(tuiOpts, opts...)
	logger.Info("session started", "session", model.Session().ID())

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func connectSmartCube(ctx context.Context, logger *slog.Logger) (*smartcube.Client, error) {
	client, err := smartcube.NewClient(logger)
	if err != nil {
		return nil, err
	}
	fmt.Println("Scanning for GoCube devices...")
	if err := client.ConnectFirst(ctx, scanTimeout); err != nil {
		return nil, fmt.Errorf("failed to connect smart cube: %w", err)
	}
	fmt.Printf("Connected to %s\n", client.Name())
	return client, nil
}
