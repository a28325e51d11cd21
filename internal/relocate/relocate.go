// Package relocate flattens flatc output.
//
// For languages such as C#, flatc writes generated sources into one
// directory per namespace segment (Game/World/Monster.cs). Projects that
// expect a flat output directory get those files moved up into it.
package relocate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/simonhull/firebird-suite/wren/internal/generator"
)

// NamespaceDir returns the directory flatc nests output for namespace ns
// under outputDir.
func NamespaceDir(outputDir, ns string) string {
	parts := append([]string{outputDir}, strings.Split(ns, ".")...)
	return filepath.Join(parts...)
}

// Plan returns one move operation per regular file directly inside the
// namespace directory of each namespace. A namespace directory that does not
// exist contributes nothing.
func Plan(outputDir string, namespaces []string) ([]generator.Operation, error) {
	var ops []generator.Operation

	for _, ns := range namespaces {
		if ns == "" {
			continue
		}

		dir := NamespaceDir(outputDir, ns)
		entries, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", dir, err)
		}

		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.Type().IsRegular() {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)

		for _, name := range names {
			ops = append(ops, &generator.MoveFileOp{
				From: filepath.Join(dir, name),
				To:   filepath.Join(outputDir, name),
			})
		}
	}

	return ops, nil
}
