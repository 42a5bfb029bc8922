// Package logging provides the application's file-backed logger.
//
// The TUI owns stdout and stderr, so diagnostics go to a rotated log file
// instead. Anything user-facing is rendered by the screens, never logged.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger writing to the log file at path, rotated by size.
func New(path string) *slog.Logger {
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 2,
		MaxAge:     14, // days
	}
	return slog.New(slog.NewTextHandler(w, nil))
}

// Discard returns a logger that drops everything. Used in tests and as the
// default when no logger is injected.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// DefaultLogPath resolves the log file path in priority order:
// 1. MATHMYSTERY_LOG environment variable
// 2. $XDG_STATE_HOME/mathmystery/mathmystery.log
// 3. ~/.local/state/mathmystery/mathmystery.log
func DefaultLogPath() (string, error) {
	if p := os.Getenv("MATHMYSTERY_LOG"); p != "" {
		return p, ensureDir(p)
	}

	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateHome = filepath.Join(home, ".local", "state")
	}

	p := filepath.Join(stateHome, "mathmystery", "mathmystery.log")
	return p, ensureDir(p)
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
