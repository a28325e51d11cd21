package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/simonhull/firebird-suite/wren/internal/fetch"
	"github.com/simonhull/firebird-suite/wren/internal/flatc"
	"github.com/simonhull/firebird-suite/wren/internal/output"
	"github.com/spf13/cobra"
)

type fetchOptions struct {
	platform string
	dest     string
	url      string
}

// FetchCmd creates the fetch command, which downloads flatc
func FetchCmd() *cobra.Command {
	var opts fetchOptions

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the flatc compiler",
		Long: fmt.Sprintf(`Downloads the flatc %s release archive for a platform and extracts
the compiler to --dest, replacing any existing binary.

Examples:
  wren fetch
  wren fetch --platform windows --dest bin/flatc.exe
  wren fetch --url https://mirror.example.com/flatc.zip`, fetch.FlatcVersion),
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := runFetch(cmd.Context(), opts); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVar(&opts.platform, "platform", string(fetch.DefaultPlatform()), "Platform to download for (linux, windows)")
	cmd.Flags().StringVar(&opts.dest, "dest", flatc.DefaultPath, "Where to write the flatc binary")
	cmd.Flags().StringVar(&opts.url, "url", "", "Download the archive from this URL instead of the release")

	return cmd
}

func runFetch(ctx context.Context, opts fetchOptions) error {
	platform, err := fetch.ParsePlatform(opts.platform)
	if err != nil {
		return err
	}
	return download(ctx, newFetcher(opts.url), platform, opts.dest)
}

// download replaces dest with a fresh flatc, behind a spinner.
func download(ctx context.Context, f *fetch.Fetcher, p fetch.Platform, dest string) error {
	err := output.Spin(fmt.Sprintf("Downloading flatc %s for %s", fetch.FlatcVersion, p), func() error {
		return f.Download(ctx, p, dest)
	})
	if err != nil {
		return fmt.Errorf("downloading flatc: %w", err)
	}

	output.Success(fmt.Sprintf("Installed flatc to %s", dest))
	return nil
}

// ensure downloads flatc to dest only when nothing is there yet.
func ensure(ctx context.Context, f *fetch.Fetcher, p fetch.Platform, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		output.Verbose(fmt.Sprintf("Using existing %s", dest))
		return nil
	}

	output.Info(fmt.Sprintf("%s not found", dest))

	var downloaded bool
	err := output.Spin(fmt.Sprintf("Downloading flatc %s for %s", fetch.FlatcVersion, p), func() error {
		var err error
		downloaded, err = f.Ensure(ctx, p, dest)
		return err
	})
	if err != nil {
		return fmt.Errorf("downloading flatc: %w", err)
	}

	if downloaded {
		output.Success(fmt.Sprintf("Installed flatc to %s", dest))
	}
	return nil
}
