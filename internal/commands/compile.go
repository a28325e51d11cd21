package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/simonhull/firebird-suite/wren/internal/fetch"
	"github.com/simonhull/firebird-suite/wren/internal/flatc"
	"github.com/simonhull/firebird-suite/wren/internal/output"
	"github.com/simonhull/firebird-suite/wren/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type compileOptions struct {
	input         string
	output        string
	lang          string
	pascalCase    bool
	downloadFlatc bool
	platform      string
	flatcPath     string
	staging       string
	flatten       bool
	dryRun        bool
}

// CompileCmd creates the compile command, one pipeline run driven by flags
func CompileCmd() *cobra.Command {
	var opts compileOptions

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Stage and compile one schema tree",
		Long: `Stages every .fbs file under --input into the staging directory and
compiles the staged copies with flatc into --output.

With --pascalcase, file names, include paths and namespaces are rewritten
into PascalCase while staging. For C#, files flatc nests under namespace
directories are moved up into --output unless --flatten=false.

Examples:
  wren compile -i Schemas/packet -o Network/bin/packet_schemas --lang csharp --pascalcase
  wren compile -i schemas -o include --download-flatc --platform windows
  wren compile -i schemas -o include --dry-run`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := runCompile(cmd.Context(), opts); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
		},
	}

	bindCompileFlags(cmd.Flags(), &opts)
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func bindCompileFlags(fs *pflag.FlagSet, opts *compileOptions) {
	fs.StringVarP(&opts.input, "input", "i", "", "Directory searched recursively for .fbs schemas")
	fs.StringVarP(&opts.output, "output", "o", "", "Directory flatc writes generated code to")
	fs.StringVar(&opts.lang, "lang", "cpp", "Target language (cpp, csharp)")
	fs.BoolVar(&opts.pascalCase, "pascalcase", false, "Set filenames and namespaces as PascalCase")
	fs.BoolVar(&opts.downloadFlatc, "download-flatc", false, "Download flatc to --flatc before compiling")
	fs.StringVar(&opts.platform, "platform", string(fetch.Linux), "Platform of the downloaded flatc (linux, windows)")
	fs.StringVar(&opts.flatcPath, "flatc", flatc.DefaultPath, "Path to the flatc binary")
	fs.StringVar(&opts.staging, "staging", pipeline.DefaultStaging, "Directory the staged schemas are written to")
	fs.BoolVar(&opts.flatten, "flatten", true, "Move C# output out of namespace directories")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "Show what would be done without writing or compiling")
}

func runCompile(ctx context.Context, opts compileOptions) error {
	// Configuration errors surface before anything touches disk
	if _, err := flatc.DefaultRegistry().Lookup(opts.lang); err != nil {
		return err
	}

	if opts.downloadFlatc {
		platform, err := fetch.ParsePlatform(opts.platform)
		if err != nil {
			return err
		}

		if opts.dryRun {
			output.Info(fmt.Sprintf("Would download flatc (%s) to %s", platform, opts.flatcPath))
		} else if err := download(ctx, newFetcher(""), platform, opts.flatcPath); err != nil {
			return err
		}
	}

	_, err := pipeline.Run(ctx, pipeline.Request{
		Input:      opts.input,
		Output:     opts.output,
		Staging:    opts.staging,
		Language:   opts.lang,
		PascalCase: opts.pascalCase,
		Flatten:    opts.flatten,
		DryRun:     opts.dryRun,
	}, newCompiler(opts.flatcPath))
	return err
}
