package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// newLogger builds the stderr logger from the verbose, debug and log_format
// settings. Every record carries the id of this invocation.
func newLogger(w io.Writer) (*slog.Logger, error) {
	level := slog.LevelWarn
	switch {
	case viper.GetBool("debug"):
		level = slog.LevelDebug
	case viper.GetBool("verbose"):
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format := viper.GetString("log_format"); format {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", format)
	}
	return slog.New(handler).With("run", uuid.NewString()), nil
}
