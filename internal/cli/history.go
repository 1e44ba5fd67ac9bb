package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/virtualcube/internal/storage"
)

func newHistoryCmd(cfg *Config) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List journaled playbacks",
		Long:  `Display the most recent scramble and solve playbacks recorded by 'vcube play'.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := cfg.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			repo := storage.NewPlaybackRepository(db)
			playbacks, err := repo.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(playbacks) == 0 {
				fmt.Fprintln(out, "No playbacks recorded yet")
				fmt.Fprintln(out, "Start one with: vcube play")
				return nil
			}

			fmt.Fprintf(out, "Recent playbacks (showing %d):\n\n", len(playbacks))
			fmt.Fprintf(out, "%-8s  %-19s  %-8s  %-7s  %-8s  %s\n", "ID", "Started", "Origin", "Played", "Result", "Moves")
			fmt.Fprintln(out, "--------  -------------------  --------  -------  --------  -----")
			for _, p := range playbacks {
				result := "aborted"
				switch {
				case p.Completed && p.Solved:
					result = "solved"
				case p.Completed:
					result = "done"
				}
				fmt.Fprintf(out, "%-8s  %-19s  %-8s  %-7s  %-8s  %s\n",
					shortID(p.PlaybackID),
					p.StartedAt.Local().Format(time.DateTime),
					p.Origin,
					fmt.Sprintf("%d/%d", p.Played, p.MoveCount),
					result,
					p.Notation,
				)
			}

			stats, err := repo.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nTotal: %d playbacks, %d completed, %d ended solved, %d moves played\n",
				stats.Playbacks, stats.Completed, stats.Solved, stats.Moves)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of playbacks to show (0 for all)")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
