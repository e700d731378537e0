// File: internal/logger/logger.go
// Author: momentics <momentics@gmail.com>
//
// Package logger wraps zerolog.Logger with the constructors used by the
// runtime. Logger embeds zerolog.Logger so the full zerolog API is available.
package logger

import (
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// New constructs a JSON logger on stderr tagged with role, a timestamp and
// the calling function name.
func New(role string) *Logger {
	return NewWithWriter(os.Stderr, role)
}

// NewWithWriter is New writing to w.
func NewWithWriter(w io.Writer, role string) *Logger {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	l := zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()
	return &Logger{l}
}

// Nop returns a Logger that discards all output.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// WithLevel returns a copy logging at level and above. Unknown levels keep
// the current level.
func (l *Logger) WithLevel(level string) *Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return l
	}
	return &Logger{l.Level(lvl)}
}

// Child returns a logger carrying key=value on every entry.
func (l *Logger) Child(key, value string) *Logger {
	return &Logger{l.With().Str(key, value).Logger()}
}
