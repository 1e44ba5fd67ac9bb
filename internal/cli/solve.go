package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/virtualcube"
)

func newSolveCmd(cfg *Config) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "solve <scramble>",
		Short: "Find a solution for a scramble",
		Long: `Apply a scramble to a solved puzzle, ask the solver for a solution and
print it. Without --solver the solution undoes the scramble.

With --verify the solution is played back and the result checked.`,
		Example: `  vcube solve "D2 B' R' B L' B"
  vcube solve --solver ./kociemba --verify "R U F"`,
		Args: cobra.ExactArgs(1),
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

			out := cmd.OutOrStdout()
			if err := s.Solve(cmd.Context()); err != nil {
				return err
			}
			seq := s.Sequence()
			if seq == nil {
				fmt.Fprintln(out, "Already solved")
				return nil
			}
			fmt.Fprintf(out, "Solution (%d moves): %s\n", seq.Len(), virtualcube.FormatMoves(seq.Moves))

			if !verify {
				return nil
			}
			if !s.Settle(settleFrame, maxSettleTicks) {
				return fmt.Errorf("playback did not finish")
			}
			if !s.State().IsSolved() {
				return fmt.Errorf("%w: solution left the puzzle unsolved", virtualcube.ErrSolveFailure)
			}
			fmt.Fprintln(out, "Verified: puzzle solved")
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "Play the solution back and check the result")
	return cmd
}
