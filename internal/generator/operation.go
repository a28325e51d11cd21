package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it. It must
// not touch the file system, so dry runs leave no trace.
// force=true skips conflict checks (e.g., file already exists).
//
// Execute performs the actual operation. This should only be called after Validate succeeds.
//
// Description returns a human-readable description for output (e.g., "Stage temp/Monster.fbs (234 bytes)").
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// WriteFileOp writes a file, creating parent directories as needed.
type WriteFileOp struct {
	Path    string      // File path to create
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions (e.g., 0644)
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	if !force {
		if _, err := os.Stat(op.Path); err == nil {
			return fmt.Errorf("file already exists: %s", op.Path)
		}
	}

	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	dir := filepath.Dir(op.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}
	return os.WriteFile(op.Path, op.Content, op.Mode)
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Stage %s (%d bytes)", op.Path, len(op.Content))
}

// MoveFileOp moves a file to a new path. An existing destination is removed
// first; a missing one is simply created.
type MoveFileOp struct {
	From string
	To   string
}

func (op *MoveFileOp) Validate(ctx context.Context, force bool) error {
	info, err := os.Stat(op.From)
	if err != nil {
		return fmt.Errorf("cannot move %s: %w", op.From, err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot move %s: is a directory", op.From)
	}

	if !force {
		if _, err := os.Stat(op.To); err == nil {
			return fmt.Errorf("file already exists: %s", op.To)
		}
	}

	return nil
}

func (op *MoveFileOp) Execute(ctx context.Context) error {
	if err := os.Remove(op.To); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", op.To, err)
	}

	if err := os.MkdirAll(filepath.Dir(op.To), 0755); err != nil {
		return err
	}

	return os.Rename(op.From, op.To)
}

func (op *MoveFileOp) Description() string {
	return fmt.Sprintf("Move %s -> %s", op.From, op.To)
}
