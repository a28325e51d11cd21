// Package staging mirrors a schema tree into a staging directory, rewriting
// names into PascalCase on the way when asked to.
package staging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/simonhull/firebird-suite/wren/internal/casing"
	"github.com/simonhull/firebird-suite/wren/internal/filesystem"
	"github.com/simonhull/firebird-suite/wren/internal/generator"
)

// Extension identifies schema source files.
const Extension = ".fbs"

// ErrStagingCollision is returned when two sources map to the same staged path.
var ErrStagingCollision = errors.New("staged paths collide")

// SourceFile is a schema read from the input tree.
type SourceFile struct {
	Path    string // path as found on disk
	RelPath string // path relative to the input root
	Content string
}

// StagedFile is a schema ready to be written under the staging root.
type StagedFile struct {
	Source    SourceFile
	Path      string // destination under the staging root
	Content   string
	Namespace string // namespace declared by Content, empty if none
}

// Discover reads every schema under root. Paths listed in skip (typically the
// staging root when it lives inside the input tree) are not searched.
func Discover(root string, skip ...string) ([]SourceFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading input root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input root %s is not a directory", root)
	}

	paths, err := filesystem.FindByExtension(root, Extension, skip...)
	if err != nil {
		return nil, fmt.Errorf("discovering schemas in %s: %w", root, err)
	}

	sources := make([]SourceFile, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil, err
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading schema: %w", err)
		}

		sources = append(sources, SourceFile{
			Path:    p,
			RelPath: rel,
			Content: string(data),
		})
	}

	return sources, nil
}

// DestPath returns where rel is staged under stagingRoot. Only the file name
// is normalised; directories keep their names.
func DestPath(stagingRoot, rel string, normalize bool) string {
	dir, name := filepath.Split(rel)
	if normalize {
		name = casing.Filename(name)
	}
	return filepath.Join(stagingRoot, dir, name)
}

// Transform computes the staged form of every source. Exactly one staged
// file is produced per source, in the same order.
func Transform(sources []SourceFile, stagingRoot string, normalize bool) ([]StagedFile, error) {
	staged := make([]StagedFile, 0, len(sources))
	seen := make(map[string]string, len(sources))

	for _, src := range sources {
		dest := DestPath(stagingRoot, src.RelPath, normalize)
		if prev, ok := seen[dest]; ok {
			return nil, fmt.Errorf("%w: %s and %s both stage to %s", ErrStagingCollision, prev, src.Path, dest)
		}
		seen[dest] = src.Path

		res := casing.Rewrite(src.Content, normalize)
		staged = append(staged, StagedFile{
			Source:    src,
			Path:      dest,
			Content:   res.Content,
			Namespace: res.Namespace,
		})
	}

	return staged, nil
}

// Operations turns staged files into write operations for generator.Execute.
func Operations(staged []StagedFile) []generator.Operation {
	ops := make([]generator.Operation, 0, len(staged))
	for _, f := range staged {
		ops = append(ops, &generator.WriteFileOp{
			Path:    f.Path,
			Content: []byte(f.Content),
			Mode:    0644,
		})
	}
	return ops
}

// Plan transforms sources and returns the staged files together with the
// operations that write them.
func Plan(sources []SourceFile, stagingRoot string, normalize bool) ([]StagedFile, []generator.Operation, error) {
	staged, err := Transform(sources, stagingRoot, normalize)
	if err != nil {
		return nil, nil, err
	}
	return staged, Operations(staged), nil
}

// Paths returns the staged destination paths in forward-slash form, the
// shape flatc expects on every platform.
func Paths(staged []StagedFile) []string {
	paths := make([]string, len(staged))
	for i, f := range staged {
		paths[i] = filepath.ToSlash(f.Path)
	}
	return paths
}

// Namespaces returns the distinct namespaces declared across staged files,
// sorted.
func Namespaces(staged []StagedFile) []string {
	set := make(map[string]struct{})
	for _, f := range staged {
		if f.Namespace != "" {
			set[f.Namespace] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for ns := range set {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}
