// Package logger provides leveled, structured logging for wren's
// non-interactive output: HTTP retries, subprocess arguments and the like.
// User-facing progress messages go through package output instead.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelSilent
)

var levelLabels = [...]struct{ name, icon string }{
	LevelDebug:  {"DEBUG", "🔍"},
	LevelInfo:   {"INFO", "ℹ️"},
	LevelWarn:   {"WARN", "⚠️"},
	LevelError:  {"ERROR", "❌"},
	LevelSilent: {"SILENT", ""},
}

var levelNames = map[string]Level{
	"debug":   LevelDebug,
	"":        LevelInfo,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
	"silent":  LevelSilent,
	"off":     LevelSilent,
}

// String returns the upper-case name of the level
func (l Level) String() string {
	if l < 0 || int(l) >= len(levelLabels) {
		return "UNKNOWN"
	}
	return levelLabels[l].name
}

// ParseLevel converts a level name such as "debug" or "WARN", as written in
// wren.yml's log_level, into a Level. An empty name means info.
func ParseLevel(s string) (Level, error) {
	if level, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return level, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q (supported: debug, info, warn, error, silent)", s)
}

// Logger provides structured logging with configurable levels
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	WithFields(fields ...Field) Logger
	SetLevel(level Level)
}

// Field is one key=value pair appended to a log line
type Field struct {
	Key   string
	Value any
}

// F builds a Field
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// sink is shared by a logger and every logger derived from it.
type sink struct {
	mu    sync.Mutex
	level Level
	out   io.Writer
}

type textLogger struct {
	sink   *sink
	fields []Field
}

// NewLogger returns a logger writing lines at or above level to out.
// A nil out writes to stderr.
func NewLogger(level Level, out io.Writer) Logger {
	if out == nil {
		out = os.Stderr
	}
	return &textLogger{sink: &sink{level: level, out: out}}
}

// NewSilentLogger creates a logger that outputs nothing
func NewSilentLogger() Logger {
	return NewLogger(LevelSilent, io.Discard)
}

// SetLevel changes the minimum level for this logger, its parent and all of
// their WithFields children.
func (l *textLogger) SetLevel(level Level) {
	l.sink.mu.Lock()
	l.sink.level = level
	l.sink.mu.Unlock()
}

func (l *textLogger) WithFields(fields ...Field) Logger {
	return &textLogger{sink: l.sink, fields: appendFields(l.fields, fields)}
}

func (l *textLogger) Debug(msg string, fields ...Field) { l.write(LevelDebug, msg, fields) }
func (l *textLogger) Info(msg string, fields ...Field)  { l.write(LevelInfo, msg, fields) }
func (l *textLogger) Warn(msg string, fields ...Field)  { l.write(LevelWarn, msg, fields) }
func (l *textLogger) Error(msg string, fields ...Field) { l.write(LevelError, msg, fields) }

// write renders "2006-01-02 15:04:05 [LEVEL] icon msg | k=v k=v".
func (l *textLogger) write(level Level, msg string, fields []Field) {
	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()

	if level < s.level {
		return
	}

	label := levelLabels[level]
	line := fmt.Sprintf("%s [%s] %s %s", time.Now().Format(time.DateTime), label.name, label.icon, msg)

	if all := appendFields(l.fields, fields); len(all) > 0 {
		pairs := make([]string, len(all))
		for i, f := range all {
			pairs[i] = fmt.Sprintf("%s=%v", f.Key, f.Value)
		}
		line += " | " + strings.Join(pairs, " ")
	}

	fmt.Fprintln(s.out, line)
}

// appendFields never writes into base's backing array.
func appendFields(base, extra []Field) []Field {
	return append(base[:len(base):len(base)], extra...)
}

var defaultLogger = NewLogger(LevelWarn, os.Stderr)

// SetDefault replaces the process-wide logger
func SetDefault(l Logger) {
	defaultLogger = l
}

// Default returns the process-wide logger. It writes warnings and errors to
// stderr until the CLI raises or lowers its level.
func Default() Logger {
	return defaultLogger
}
