// Package logger builds the diagnostic stream for a batch run.
package logger

import (
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// New returns a console logger writing to w. Verbose runs log every per-file
// decision at debug level; otherwise only warnings and errors are shown.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// WithRun tags every event of l with a fresh run id.
func WithRun(l zerolog.Logger) zerolog.Logger {
	return l.With().Str("run", uuid.NewString()[:8]).Logger()
}
