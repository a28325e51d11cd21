package generator

import (
	"context"
	"fmt"
	"io"
	"os"
)

// ExecuteOptions configures execution behavior
type ExecuteOptions struct {
	DryRun bool
	Force  bool      // Overwrite existing destinations
	Writer io.Writer // Receives one "✓ ..." line per operation (defaults to os.Stdout)
}

// Execute validates every operation before running any of them, so a batch
// that would fail part way leaves the file system untouched. In dry-run mode
// operations are validated and described but never executed.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}

	for _, op := range ops {
		if err := op.Validate(ctx, opts.Force); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	prefix := "✓"
	if opts.DryRun {
		prefix = "✓ [DRY RUN]"
	}

	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !opts.DryRun {
			if err := op.Execute(ctx); err != nil {
				return fmt.Errorf("%s: %w", op.Description(), err)
			}
		}
		fmt.Fprintf(w, "%s %s\n", prefix, op.Description())
	}

	return nil
}
