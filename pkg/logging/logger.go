// Package logging provides the default core.Logger implementation. The
// teacher keeps logging behind a narrow core.Logger interface (see its
// web/server/console.go WebLogger, which adapts that interface to a
// websocket channel); we keep the same interface shape but back the CLI's
// default implementation with log/slog instead of the teacher's bare
// fmt.Printf, since structured logging is the idiomatic choice for a new
// command-line tool.
package logging

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/avandyke/spectrace/pkg/core"
)

// SlogLogger adapts a *slog.Logger to core.Logger.
type SlogLogger struct {
	logger *slog.Logger
}

// New wraps logger as a core.Logger.
func New(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: logger}
}

// Default returns a SlogLogger writing to stderr in text form.
func Default() *SlogLogger {
	return New(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

// Printf implements core.Logger.
func (l *SlogLogger) Printf(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

var _ core.Logger = (*SlogLogger)(nil)
