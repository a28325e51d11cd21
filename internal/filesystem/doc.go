// Package filesystem locates schema sources on disk.
//
// # Usage
//
// Find every schema under a root, leaving a staging tree alone:
//
//	files, err := filesystem.FindByExtension("Schemas/packet", ".fbs", "temp")
//
// Custom walk with ignore patterns:
//
//	err := filesystem.Walk(".", filesystem.WalkOptions{
//	    IgnoreDirs:     []string{".git", "temp"},
//	    IgnorePatterns: []string{"*.bak"},
//	}, func(path string, info os.FileInfo) error {
//	    // Process file
//	    return nil
//	})
package filesystem
