package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/virtualcube"
	"github.com/SeamusWaldron/virtualcube/internal/render"
)

// settleFrame is the tick used to run headless sessions to completion.
const (
	settleFrame    = 10 * time.Millisecond
	maxSettleTicks = 100000
)

func newApplyCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <moves>",
		Short: "Apply a move sequence and print the result",
		Long: `Parse a move sequence, play it on a solved puzzle and print the
unfolded net and the facelet string.

Moves are face letters U D L R F B, optionally followed by ' (counter-
clockwise) or 2 (half turn), separated by spaces.`,
		Example: `  vcube apply "R U R' U'"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := cfg.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			s, err := headlessSession(cfg, logger)
			if err != nil {
				return err
			}
			if err := playNotation(s, args[0]); err != nil {
				return err
			}
			printState(cmd.OutOrStdout(), s.State())
			return nil
		},
	}
}

// headlessSession builds a session that animates instantly.
func headlessSession(cfg *Config, logger *slog.Logger) (*virtualcube.Session, error) {
	opts, err := cfg.sessionOptions(logger)
	if err != nil {
		return nil, err
	}
	opts = append(opts, virtualcube.WithDuration(0))
	return virtualcube.NewSession(opts...), nil
}

// playNotation submits notation and ticks until it has played.
func playNotation(s *virtualcube.Session, notation string) error {
	if err := s.Submit(notation); err != nil {
		return err
	}
	if !s.Settle(settleFrame, maxSettleTicks) {
		return fmt.Errorf("playback did not finish")
	}
	return nil
}

func printState(w io.Writer, st *virtualcube.State) {
	fmt.Fprint(w, render.Net(st).Plain())
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Facelets: %s\n", st.FaceletString())
	fmt.Fprintf(w, "Moves:    %d\n", st.MoveCount())
	if st.IsSolved() {
		fmt.Fprintln(w, "Solved:   yes")
	} else {
		fmt.Fprintln(w, "Solved:   no")
	}
}
