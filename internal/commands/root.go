package commands

import (
	"github.com/simonhull/firebird-suite/wren"
	"github.com/simonhull/firebird-suite/wren/internal/exec"
	"github.com/simonhull/firebird-suite/wren/internal/fetch"
	"github.com/simonhull/firebird-suite/wren/internal/flatc"
	"github.com/simonhull/firebird-suite/wren/internal/logger"
	"github.com/simonhull/firebird-suite/wren/internal/output"
	"github.com/spf13/cobra"
)

// Constructors for the external collaborators; tests swap them for fakes.
var (
	newCompiler = func(path string) flatc.Compiler {
		return flatc.New(path, exec.NewExecutor(&exec.Options{ShowCommand: output.IsVerbose()}))
	}

	newFetcher = func(url string) *fetch.Fetcher {
		var opts []fetch.Option
		if url != "" {
			opts = append(opts, fetch.WithURL(url))
		}
		return fetch.NewFetcher(opts...)
	}
)

// RootCmd creates and returns the root command for the wren CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "wren",
		Short: "FlatBuffers schema build orchestrator",
		Long: `Wren prepares FlatBuffers schemas and drives flatc over them.

For every schema tree it:
• Finds all .fbs files under the input directory
• Optionally PascalCases file names, includes and namespaces
• Compiles the staged copies with flatc
• Flattens namespace directories out of C# output

Run a single tree with 'wren compile', or describe your project in
wren.yml ('wren init') and run 'wren build'.`,
		Version: wren.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
			if verbose {
				logger.Default().SetLevel(logger.LevelDebug)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	return cmd
}
