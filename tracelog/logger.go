// Package tracelog is a minimal wrapper around an io.Writer, carried over
// from the teacher's log package so the policy engine can emit the same
// kind of POOL_DEBUG(SOLV_DEBUG_POLICY, ...) trace lines the original C
// implementation uses, without pulling in a structured-logging library
// this domain never reaches for.
package tracelog

import (
	"fmt"
	"io"
)

// Level mirrors libsolv's debug mask bits, restricted to what the policy
// engine itself ever logs.
type Level uint8

const (
	// LevelPolicy traces pruner/reorderer decisions (SOLV_DEBUG_POLICY).
	LevelPolicy Level = 1 << iota
	// LevelStats traces one-off index-build summaries (SOLV_DEBUG_STATS).
	LevelStats
)

// Logger is a minimal wrapper around an io.Writer.
type Logger struct {
	io.Writer
	level Level
}

// New returns a new logger which writes to w, enabled for the given levels.
// A nil w disables all output.
func New(w io.Writer, level Level) *Logger {
	return &Logger{Writer: w, level: level}
}

// Enabled reports whether lvl is turned on for this logger.
func (l *Logger) Enabled(lvl Level) bool {
	return l != nil && l.Writer != nil && l.level&lvl != 0
}

// Logln logs a line if lvl is enabled.
func (l *Logger) Logln(lvl Level, args ...interface{}) {
	if !l.Enabled(lvl) {
		return
	}
	fmt.Fprintln(l, args...)
}

// Logf logs a formatted string if lvl is enabled.
func (l *Logger) Logf(lvl Level, f string, args ...interface{}) {
	if !l.Enabled(lvl) {
		return
	}
	fmt.Fprintf(l, f, args...)
}
