// Package casing rewrites FlatBuffers schema identifiers into PascalCase.
//
// The rewrite is line-oriented and deliberately shallow: it recognises only
// include and namespace directives that start at column zero and leaves every
// other line exactly as it was, terminators included. Nothing here parses the
// schema grammar.
package casing

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	includePattern   = regexp.MustCompile(`^include "([^"]*)";`)
	namespacePattern = regexp.MustCompile(`^namespace ([^";]*);`)
)

// Word upper-cases the first rune of s and leaves the rest untouched.
//
// Only the first rune is changed so that normalising an already PascalCased
// word is a no-op.
func Word(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	upper := unicode.ToUpper(r)
	if upper == r {
		return s
	}
	return string(upper) + s[size:]
}

// Filename converts an underscore separated file name into PascalCase.
//
//	player_state.fbs -> PlayerState.fbs
//	monster.fbs      -> Monster.fbs
func Filename(name string) string {
	words := strings.Split(name, "_")
	var b strings.Builder
	b.Grow(len(name))
	for _, w := range words {
		b.WriteString(Word(w))
	}
	return b.String()
}

// Namespace capitalises every segment of a dotted namespace.
//
//	game.world -> Game.World
func Namespace(ns string) string {
	segments := strings.Split(ns, ".")
	for i, seg := range segments {
		segments[i] = Word(seg)
	}
	return strings.Join(segments, ".")
}

// IncludePath normalises the file name of an include path. The directory
// prefix, separators included, is preserved byte for byte.
//
//	common/types/base_type.fbs -> common/types/BaseType.fbs
func IncludePath(p string) string {
	i := strings.LastIndexAny(p, `/\`)
	return p[:i+1] + Filename(p[i+1:])
}

// Line rewrites a single schema line. The line may carry its terminator;
// anything after the directive's semicolon is kept as is. The second return
// value reports whether the line was an include or namespace directive.
func Line(line string) (string, bool) {
	if m := includePattern.FindStringSubmatchIndex(line); m != nil {
		path := line[m[2]:m[3]]
		return `include "` + IncludePath(path) + `";` + line[m[1]:], true
	}

	if m := namespacePattern.FindStringSubmatchIndex(line); m != nil {
		ns := line[m[2]:m[3]]
		return "namespace " + Namespace(ns) + ";" + line[m[1]:], true
	}

	return line, false
}

// Result is the outcome of rewriting one schema file.
type Result struct {
	Content   string
	Namespace string // namespace declared by Content, empty if none
	Rewritten int    // number of directive lines rewritten
}

// Rewrite applies Line to every line of content when enabled is true. When
// enabled is false the content is returned unchanged, although the declared
// namespace is still reported.
func Rewrite(content string, enabled bool) Result {
	if !enabled {
		return Result{Content: content, Namespace: DeclaredNamespace(content)}
	}

	lines := strings.SplitAfter(content, "\n")

	var (
		b   strings.Builder
		res Result
	)
	b.Grow(len(content))

	for _, line := range lines {
		rewritten, ok := Line(line)
		if ok {
			res.Rewritten++
		}
		b.WriteString(rewritten)
	}

	res.Content = b.String()
	res.Namespace = DeclaredNamespace(res.Content)
	return res
}

// DeclaredNamespace returns the namespace declared in content, or "" when
// there is no namespace directive. Only the first declaration counts.
func DeclaredNamespace(content string) string {
	for _, line := range strings.SplitAfter(content, "\n") {
		if m := namespacePattern.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return ""
}
