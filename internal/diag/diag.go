// Package diag carries the error-handling design's sticky corrupt-data
// counter and the two logging channels a file goes through: the
// teacher's leveled line logger for user-facing diagnostics, and an
// optional structured trace channel for the container parser's
// per-tag decisions.
package diag

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/tacusci/logging"
)

// Counters is the per-file sticky corrupt-data state. It lives on the
// pipeline.FileContext, never at package scope, so two files processed
// in sequence never leak state into each other.
type Counters struct {
	Corrupt      int
	warnedOnce   map[string]bool
	Trace        *slog.Logger
}

// NewCounters returns a zeroed Counters with trace logging disabled.
func NewCounters() *Counters {
	return &Counters{warnedOnce: make(map[string]bool)}
}

// EnableTrace attaches a tint-backed structured logger for per-tag /
// per-maker-note parse decisions. No CLI flag calls it; tracing stays
// off unless a caller enables it.
func (c *Counters) EnableTrace(level slog.Level) {
	c.Trace = slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
}

// MarkCorrupt increments the corrupt-data counter and, the first time
// a given offset and detail string pair is seen for this file, writes one diagnostic
// line — "a diagnostic is written once" per the error handling design.
func (c *Counters) MarkCorrupt(offset int64, detail string) {
	c.Corrupt++
	key := fmt.Sprintf("%d:%s", offset, detail)
	if c.warnedOnce[key] {
		return
	}
	c.warnedOnce[key] = true
	logging.Error(fmt.Sprintf("corrupt data at offset %d: %s", offset, detail))
}

// Debugf writes a debug line through the teacher's logger.
func Debugf(format string, args ...interface{}) { logging.Debug(fmt.Sprintf(format, args...)) }

// Infof writes an info line through the teacher's logger.
func Infof(format string, args ...interface{}) { logging.Info(fmt.Sprintf(format, args...)) }

// Errorf writes an error line through the teacher's logger.
func Errorf(format string, args ...interface{}) { logging.Error(fmt.Sprintf(format, args...)) }

// SetLevel forwards to the teacher's logger, mirroring
// cltools' setLoggingLevel() in main.go.
func SetLevel(debug bool) {
	if debug {
		logging.SetLevel(logging.DebugLevel)
		return
	}
	logging.SetLevel(logging.InfoLevel)
}
