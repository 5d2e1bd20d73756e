// Package logging configures the process logger. The terminal belongs to the
// UI, so entries go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

type Options struct {
	Path  string
	Level string
	Debug bool
}

// Setup returns a logger writing JSON lines to opts.Path and a closer for
// the file. An empty path discards output.
func Setup(opts Options) (*log.Logger, io.Closer, error) {
	logger := log.New()
	logger.SetFormatter(&log.JSONFormatter{})

	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
		level = parsed
	}
	if opts.Debug {
		level = log.DebugLevel
	}
	logger.SetLevel(level)

	if opts.Path == "" {
		logger.SetOutput(io.Discard)
		return logger, io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: create log dir: %w", err)
	}
	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open %s: %w", opts.Path, err)
	}
	logger.SetOutput(f)
	return logger, f, nil
}
