package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/virtualcube"
)

func newKeysCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Print the active key bindings",
		Long: `Print the key bindings for both modes, after applying --keymap.

A keymap file overrides the defaults:

  free:
    x: turn R'
    "1": none
  solving:
    " ": next`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := cfg.loadKeymap()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, mode := range []virtualcube.Mode{virtualcube.ModeFree, virtualcube.ModeSolving} {
				fmt.Fprintf(out, "%s mode:\n%s\n", mode, keys.Describe(mode))
			}
			return nil
		},
	}
}
