// Package iologger sets up the default slog logger.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gnmatch/pkg/config"
)

// LogFile is the name of the log file inside the log directory.
const LogFile = "gnmatch.log"

// Init sets the default slog logger according to the configuration.
// With the "file" destination the log goes to LogFile in logDir, the file
// is truncated on every start.
func Init(logDir string, cfg config.LogConfig) (io.Closer, error) {
	var writer io.Writer
	var closer io.Closer = nopCloser{}

	switch cfg.Destination {
	case "stdout":
		writer = os.Stdout
	case "file":
		logPath := filepath.Join(logDir, LogFile)
		file, err := os.Create(logPath)
		if err != nil {
			return nil, CreateLogFileError(logPath, err)
		}
		writer = file
		closer = file
	default:
		writer = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	switch cfg.Format {
	case "text", "tint":
		handler = slog.NewTextHandler(writer, opts)
	default:
		handler = slog.NewJSONHandler(writer, opts)
	}

	slog.SetDefault(slog.New(handler))
	return closer, nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
