// Package logger provides the application's leveled logger. Three
// levels: off (silent), normal (info and above), verbose (adds debug).
// Safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Level controls verbosity.
type Level int

const (
	// LevelOff disables all output.
	LevelOff Level = iota
	// LevelNormal enables info, warn, and error output.
	LevelNormal
	// LevelVerbose enables everything including debug.
	LevelVerbose
)

// Logger writes leveled, timestamped lines to a single output.
type Logger struct {
	mu    sync.Mutex
	level Level
	out   *log.Logger
}

// New creates a logger at the given level. A nil out writes to stderr.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		level: level,
		out:   log.New(out, "", log.Ltime),
	}
}

// SetLevel changes the level at runtime.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) write(min Level, tag, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.level < min {
		return
	}
	l.out.Output(3, tag+" "+fmt.Sprintf(format, args...))
}

// Debug logs at debug level, visible only in verbose mode.
func (l *Logger) Debug(format string, args ...any) {
	l.write(LevelVerbose, "[DBG]", format, args...)
}

// Info logs at info level.
func (l *Logger) Info(format string, args ...any) {
	l.write(LevelNormal, "[INF]", format, args...)
}

// Warn logs at warn level.
func (l *Logger) Warn(format string, args ...any) {
	l.write(LevelNormal, "[WRN]", format, args...)
}

// Error logs at error level.
func (l *Logger) Error(format string, args ...any) {
	l.write(LevelNormal, "[ERR]", format, args...)
}
