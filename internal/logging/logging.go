package logging

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New returns a file-backed structured logger.
//
// The TUI owns the terminal, so logs always go to a file. Failures here are
// non-fatal: the app must stay interactive even when it can't log, so we
// fall back to a no-op logger instead of returning an error.
func New(path string, debug bool) zerolog.Logger {
	if path == "" {
		return Nop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Nop()
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return Nop()
	}
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(f).Level(level).With().Timestamp().Logger()
}

func Nop() zerolog.Logger {
	return zerolog.Nop()
}
