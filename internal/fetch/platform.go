package fetch

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrUnknownPlatform is returned for a platform selector with no release.
var ErrUnknownPlatform = errors.New("unknown platform")

// Platform selects which flatc release archive to download.
type Platform string

const (
	Linux   Platform = "linux"
	Windows Platform = "windows"
)

// FlatcVersion is the flatbuffers release wren downloads.
const FlatcVersion = "24.3.25"

// Release locates the flatc binary for one platform.
type Release struct {
	URL   string // zip archive
	Entry string // archive member holding the binary
}

var releases = map[Platform]Release{
	Linux: {
		URL:   "https://github.com/google/flatbuffers/releases/download/v" + FlatcVersion + "/Linux.flatc.binary.g++-13.zip",
		Entry: "flatc",
	},
	Windows: {
		URL:   "https://github.com/google/flatbuffers/releases/download/v" + FlatcVersion + "/Windows.flatc.binary.zip",
		Entry: "flatc.exe",
	},
}

// ParsePlatform validates a platform selector.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := releases[p]; !ok {
		return "", fmt.Errorf("%w %q (supported: linux, windows)", ErrUnknownPlatform, s)
	}
	return p, nil
}

// DefaultPlatform returns the platform matching the running OS, falling
// back to linux.
func DefaultPlatform() Platform {
	if runtime.GOOS == "windows" {
		return Windows
	}
	return Linux
}

// Release returns the archive for p.
func (p Platform) Release() (Release, error) {
	r, ok := releases[p]
	if !ok {
		return Release{}, fmt.Errorf("%w %q", ErrUnknownPlatform, string(p))
	}
	return r, nil
}
