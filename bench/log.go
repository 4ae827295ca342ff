package bench

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type LogConfig struct {
	// Type is either "console" or "json".
	Type string
	// File receives the log output. Empty means stderr.
	File  string
	Level string
}

// NewLogger builds the logger described by cfg. The returned closer releases the log
// file, if one was opened.
func NewLogger(cfg LogConfig) (zerolog.Logger, io.Closer, error) {
	var (
		out    io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("error opening log file: %w", err)
		}
		out, closer = f, f
	}

	switch cfg.Type {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly, NoColor: cfg.File != ""}
	case "json":
	default:
		_ = closer.Close()
		return zerolog.Nop(), nil, fmt.Errorf("unknown log type %q (console|json)", cfg.Type)
	}

	level := zerolog.InfoLevel
	if cfg.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(cfg.Level)
		if err != nil {
			_ = closer.Close()
			return zerolog.Nop(), nil, fmt.Errorf("error parsing log level: %w", err)
		}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
