package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/simonhull/firebird-suite/wren/internal/config"
	"github.com/simonhull/firebird-suite/wren/internal/fetch"
	"github.com/simonhull/firebird-suite/wren/internal/flatc"
	"github.com/simonhull/firebird-suite/wren/internal/logger"
	"github.com/simonhull/firebird-suite/wren/internal/output"
	"github.com/simonhull/firebird-suite/wren/internal/pipeline"
	"github.com/spf13/cobra"
)

type buildOptions struct {
	configPath string
	dryRun     bool
}

// BuildCmd creates the build command, which runs every target in wren.yml
func BuildCmd() *cobra.Command {
	var opts buildOptions

	cmd := &cobra.Command{
		Use:   "build [target...]",
		Short: "Build the schema targets declared in wren.yml",
		Long: `Builds every target declared in wren.yml, or only the named ones.

flatc is downloaded first when flatc.download is set and the binary is
missing. Settings can be overridden from the environment, for example
WREN_FLATC_PATH=/usr/local/bin/flatc.

Examples:
  wren build                  # Build all targets
  wren build packet           # Build one target
  wren build --config ci.yml  # Use another config file`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := runBuild(cmd.Context(), opts, args); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "Path to the build configuration")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Show what would be done without writing or compiling")

	return cmd
}

func runBuild(ctx context.Context, opts buildOptions, names []string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	if !output.IsVerbose() {
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("log_level: %w", err)
		}
		logger.Default().SetLevel(level)
	}

	targets, err := cfg.Select(names...)
	if err != nil {
		return err
	}

	registry := flatc.DefaultRegistry()
	for _, t := range targets {
		if _, err := registry.Lookup(t.Lang); err != nil {
			return fmt.Errorf("target %q: %w", t.Name, err)
		}
	}

	if cfg.Flatc.Download {
		platform, err := fetch.ParsePlatform(cfg.Flatc.Platform)
		if err != nil {
			return fmt.Errorf("flatc.platform: %w", err)
		}

		if opts.dryRun {
			output.Info(fmt.Sprintf("Would ensure flatc (%s) at %s", platform, cfg.Flatc.Path))
		} else if err := ensure(ctx, newFetcher(cfg.Flatc.URL), platform, cfg.Flatc.Path); err != nil {
			return err
		}
	}

	compiler := newCompiler(cfg.Flatc.Path)
	for _, t := range targets {
		output.Info(fmt.Sprintf("Building %s (%s)", t.Name, t.Lang))

		// Each target stages into its own subtree so batches never mix
		_, err := pipeline.Run(ctx, pipeline.Request{
			Input:      t.Input,
			Output:     t.Output,
			Staging:    filepath.Join(cfg.Staging, t.Name),
			Language:   t.Lang,
			PascalCase: t.PascalCase,
			Flatten:    t.Flatten,
			DryRun:     opts.dryRun,
		}, compiler)
		if err != nil {
			return fmt.Errorf("target %q: %w", t.Name, err)
		}
	}

	output.Success(fmt.Sprintf("Built %d target(s)", len(targets)))
	return nil
}
