package cmd

import (
	"fmt"
	"log/slog"
	"os"
)

// initLogger configures the default slog logger from the CLI flags.
func initLogger(flags *cmdFlags) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(flags.LogLevel)); err != nil {
		return fmt.Errorf("failed to parse log level %q: %w", flags.LogLevel, err)
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if flags.TextFormat {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler.WithAttrs([]slog.Attr{
		slog.String("app", flags.appName),
		slog.String("version", flags.version),
	}))

	slog.SetDefault(logger)

	return nil
}
