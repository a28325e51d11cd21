package filesystem

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultIgnoreDirs are version control directories skipped during schema discovery
var DefaultIgnoreDirs = []string{".git", ".svn", ".hg"}

// WalkOptions configures directory traversal behavior
type WalkOptions struct {
	IgnoreDirs     []string // Directory names to skip (nil: DefaultIgnoreDirs, empty: none)
	IgnorePatterns []string // File patterns to skip (e.g., "*.tmp")
	SkipPaths      []string // Directories to skip by path, e.g. a staging tree nested in the input
	IncludeHidden  bool     // Include hidden files/dirs (default: false)
}

// Walk traverses a directory tree with configurable ignore patterns.
// The visitor function is called for each file and directory.
// Return filepath.SkipDir from visitor to skip a directory.
func Walk(rootPath string, opts WalkOptions, visitor func(path string, info os.FileInfo) error) error {
	ignoreDirs := opts.IgnoreDirs
	if ignoreDirs == nil {
		ignoreDirs = DefaultIgnoreDirs
	}

	skip := make(map[string]bool, len(opts.SkipPaths))
	for _, p := range opts.SkipPaths {
		if abs, err := filepath.Abs(p); err == nil {
			skip[abs] = true
		}
	}

	return filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// The root itself is never filtered
		if path == rootPath {
			return visitor(path, info)
		}

		if !opts.IncludeHidden && strings.HasPrefix(info.Name(), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			for _, ignore := range ignoreDirs {
				if info.Name() == ignore {
					return filepath.SkipDir
				}
			}
			if len(skip) > 0 {
				if abs, err := filepath.Abs(path); err == nil && skip[abs] {
					return filepath.SkipDir
				}
			}
		}

		if !info.IsDir() {
			for _, pattern := range opts.IgnorePatterns {
				if matched, _ := filepath.Match(pattern, info.Name()); matched {
					return nil
				}
			}
		}

		return visitor(path, info)
	})
}

// FindByExtension returns every regular file under rootPath whose name ends
// in ext, sorted lexically. Hidden directories are searched; only the
// DefaultIgnoreDirs and opts.SkipPaths are pruned.
func FindByExtension(rootPath, ext string, skipPaths ...string) ([]string, error) {
	var files []string

	err := Walk(rootPath, WalkOptions{
		IncludeHidden: true,
		SkipPaths:     skipPaths,
	}, func(path string, info os.FileInfo) error {
		if info.Mode().IsRegular() && strings.HasSuffix(info.Name(), ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
