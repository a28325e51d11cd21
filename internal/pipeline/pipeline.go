// Package pipeline runs one schema target end to end: discover, stage,
// compile and relocate.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/simonhull/firebird-suite/wren/internal/flatc"
	"github.com/simonhull/firebird-suite/wren/internal/generator"
	"github.com/simonhull/firebird-suite/wren/internal/logger"
	"github.com/simonhull/firebird-suite/wren/internal/output"
	"github.com/simonhull/firebird-suite/wren/internal/relocate"
	"github.com/simonhull/firebird-suite/wren/internal/staging"
)

// DefaultStaging is the staging root used when a request names none.
const DefaultStaging = "temp"

// ErrStagingIsInput is returned when the staging root and the input root are
// the same directory.
var ErrStagingIsInput = errors.New("staging root must differ from the input root")

// Request describes one pipeline run.
type Request struct {
	Input      string // root searched for schemas
	Output     string // flatc output directory
	Staging    string // root of the mirrored staging tree
	Language   string // registered flatc language
	PascalCase bool   // normalise file names, includes and namespaces
	Flatten    bool   // move namespace-nested output into Output
	DryRun     bool   // report what would happen; touch nothing
}

// Report summarises a pipeline run.
type Report struct {
	Staged     []staging.StagedFile
	Namespaces []string
	Relocated  []string // destination of every moved file
	Compiled   bool
}

// Run executes req with compiler. The language is resolved before anything
// is written, so an unknown language leaves the file system untouched.
func Run(ctx context.Context, req Request, compiler flatc.Compiler) (*Report, error) {
	if req.Input == "" || req.Output == "" {
		return nil, fmt.Errorf("input and output directories are required")
	}
	if req.Staging == "" {
		req.Staging = DefaultStaging
	}
	if err := checkStaging(req.Input, req.Staging); err != nil {
		return nil, err
	}

	lang, err := flatc.DefaultRegistry().Lookup(req.Language)
	if err != nil {
		return nil, err
	}

	log := logger.Default().WithFields(
		logger.F("input", req.Input),
		logger.F("language", lang.Name()),
	)

	// Stage
	sources, err := staging.Discover(req.Input, req.Staging)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		output.Info(fmt.Sprintf("No %s files found in %s", staging.Extension, req.Input))
		return &Report{}, nil
	}

	staged, ops, err := staging.Plan(sources, req.Staging, req.PascalCase)
	if err != nil {
		return nil, err
	}

	for _, f := range staged {
		output.Verbose(fmt.Sprintf("%s -> %s", f.Source.Path, f.Path))
	}

	if err := generator.Execute(ctx, ops, generator.ExecuteOptions{
		DryRun: req.DryRun,
		Force:  true,
		Writer: opWriter(req.DryRun),
	}); err != nil {
		return nil, fmt.Errorf("staging schemas: %w", err)
	}

	report := &Report{
		Staged:     staged,
		Namespaces: staging.Namespaces(staged),
	}
	log.Debug("staged schemas", logger.F("count", len(staged)))

	// Compile
	opts := flatc.Options{
		Language:   lang.Name(),
		OutputDir:  req.Output,
		IncludeDir: req.Staging,
	}
	if req.DryRun {
		output.Info(fmt.Sprintf("Would compile %d schema(s) into %s", len(staged), req.Output))
		return report, nil
	}

	if err := compiler.Compile(ctx, staging.Paths(staged), opts); err != nil {
		return nil, err
	}
	report.Compiled = true
	output.Success(fmt.Sprintf("Compiled %d schema(s) into %s", len(staged), req.Output))

	// Relocate
	if !lang.NestsNamespaces() || !req.Flatten {
		return report, nil
	}

	moves, err := relocate.Plan(req.Output, report.Namespaces)
	if err != nil {
		return nil, err
	}
	if len(moves) == 0 {
		log.Debug("nothing to relocate")
		return report, nil
	}

	if err := generator.Execute(ctx, moves, generator.ExecuteOptions{
		Force:  true,
		Writer: opWriter(false),
	}); err != nil {
		return nil, fmt.Errorf("relocating output: %w", err)
	}

	for _, op := range moves {
		if m, ok := op.(*generator.MoveFileOp); ok {
			report.Relocated = append(report.Relocated, m.To)
		}
	}
	output.Info(fmt.Sprintf("Flattened %d file(s) into %s", len(report.Relocated), req.Output))

	return report, nil
}

// checkStaging rejects a staging root that is the input root itself.
func checkStaging(input, stagingRoot string) error {
	in, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("resolving input root: %w", err)
	}
	st, err := filepath.Abs(stagingRoot)
	if err != nil {
		return fmt.Errorf("resolving staging root: %w", err)
	}
	if in == st {
		return fmt.Errorf("%w: %s", ErrStagingIsInput, input)
	}
	return nil
}

// opWriter returns where per-operation lines go. They are only shown in
// verbose mode and for dry runs.
func opWriter(dryRun bool) io.Writer {
	if dryRun || output.IsVerbose() {
		return output.Writer()
	}
	return io.Discard
}
