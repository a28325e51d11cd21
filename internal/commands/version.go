package commands

import (
	"fmt"

	"github.com/simonhull/firebird-suite/wren"
	"github.com/simonhull/firebird-suite/wren/internal/fetch"
	"github.com/spf13/cobra"
)

// VersionCmd prints the wren version and the flatc release it downloads
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the wren version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wren %s (flatc %s)\n", wren.Version, fetch.FlatcVersion)
		},
	}
}
