// Package cli implements the command-line interface for vcube.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// NewRootCmd builds the command tree. cfg supplies the flag defaults.
func NewRootCmd(cfg *Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vcube",
		Short: "Virtual 3x3x3 twisty puzzle",
		Long: `vcube - A virtual Rubik's Cube for the terminal.

Turn faces from the keyboard or a GoCube smart cube, play back scrambles
and let a solver walk the puzzle home, one animated turn at a time.

Every flag can also be set through a VCUBE_* environment variable.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Journal database path (default: ~/.vcube/vcube.db)")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Enable debug logging")
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs to this file")
	flags.StringVar(&cfg.Keymap, "keymap", cfg.Keymap, "YAML key binding file")
	flags.DurationVar(&cfg.Duration, "duration", cfg.Duration, "Animation time per turn")
	flags.StringVar(&cfg.Easing, "easing", cfg.Easing, "Turn easing curve")
	flags.StringVar(&cfg.Playback, "playback", cfg.Playback, "Sequence playback: auto or step")
	flags.StringVar(&cfg.Solver, "solver", cfg.Solver, "External solver binary (default: undo the turn history)")
	flags.DurationVar(&cfg.SolverTimeout, "solver-timeout", cfg.SolverTimeout, "Time limit for the external solver")
	flags.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Serve Prometheus metrics on this address")

	rootCmd.AddCommand(
		newPlayCmd(cfg),
		newApplyCmd(cfg),
		newSolveCmd(cfg),
		newHistoryCmd(cfg),
		newKeysCmd(cfg),
	)
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := NewRootCmd(&cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
