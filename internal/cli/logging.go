package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// envLogLevel overrides the default log level when --log-level is not given.
const envLogLevel = "FSEQ_LOG_LEVEL"

func levelFromEnv(fallback string) string {
	if v := os.Getenv(envLogLevel); v != "" {
		return v
	}

	return fallback
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q, want text or json", format)
	}
}
