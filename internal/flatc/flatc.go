// Package flatc invokes the FlatBuffers schema compiler.
//
// The compiler is an opaque external binary. Callers depend on the Compiler
// interface so tests can substitute a fake; Flatc is the real implementation.
package flatc

import (
	"context"
	"fmt"

	"github.com/simonhull/firebird-suite/wren/internal/exec"
	"github.com/simonhull/firebird-suite/wren/internal/logger"
)

var _ Compiler = (*Flatc)(nil)

// DefaultPath is where the compile command expects flatc by default.
const DefaultPath = "./flatc"

// Options configures a single compilation batch.
type Options struct {
	Language   string // registered language name, e.g. "csharp"
	OutputDir  string // passed as -o
	IncludeDir string // passed as -I
}

// Compiler compiles a batch of schema files.
type Compiler interface {
	Compile(ctx context.Context, files []string, opts Options) error
}

// Flatc runs a flatc binary through an executor.
type Flatc struct {
	path      string
	executor  *exec.Executor
	languages *Registry
}

// New returns a compiler for the flatc binary at path. A nil executor uses
// exec.NewExecutor(nil).
func New(path string, executor *exec.Executor) *Flatc {
	if path == "" {
		path = DefaultPath
	}
	if executor == nil {
		executor = exec.NewExecutor(nil)
	}
	return &Flatc{
		path:      path,
		executor:  executor,
		languages: DefaultRegistry(),
	}
}

// Path returns the binary this compiler runs.
func (f *Flatc) Path() string {
	return f.path
}

// Compile runs flatc over files. Nothing is interpreted from flatc's output:
// a non-zero exit status is returned as an error.
func (f *Flatc) Compile(ctx context.Context, files []string, opts Options) error {
	args, err := Args(f.languages, files, opts)
	if err != nil {
		return err
	}

	logger.Default().Debug("invoking flatc",
		logger.F("path", f.path),
		logger.F("language", opts.Language),
		logger.F("files", len(files)),
	)

	if err := f.executor.Run(ctx, f.path, args...); err != nil {
		return fmt.Errorf("compiling %d schema(s): %w", len(files), err)
	}
	return nil
}

// Args assembles the flatc command line (without the binary) for files.
func Args(languages *Registry, files []string, opts Options) ([]string, error) {
	lang, err := languages.Lookup(opts.Language)
	if err != nil {
		return nil, err
	}
	if opts.OutputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}

	args := lang.Flags()
	args = append(args, "-o", opts.OutputDir)
	if opts.IncludeDir != "" {
		args = append(args, "-I", opts.IncludeDir)
	}
	args = append(args, files...)
	return args, nil
}
