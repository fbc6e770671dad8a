package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nmehta/noggin/internal/config"
)

// New builds a file-backed zap logger. The TUI owns the terminal, so log
// output must never reach stdout/stderr; when the log file cannot be
// opened a Nop logger is returned instead of an error.
func New(cfg config.Config) *zap.Logger {
	path := cfg.LogPath
	if path == "" {
		var err error
		path, err = defaultLogPath()
		if err != nil {
			return zap.NewNop()
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zap.NewNop()
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zap.NewNop()
	}

	level := zapcore.InfoLevel
	if parsed, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		level = parsed
	}

	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(enc),
		zapcore.AddSync(f),
		level,
	)
	return zap.New(core)
}

// defaultLogPath resolves $XDG_STATE_HOME/noggin/noggin.log, falling back
// to ~/.local/state/noggin/noggin.log.
func defaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "noggin", "noggin.log"), nil
}
