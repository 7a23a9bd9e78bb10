package internal

import (
	"log/slog"
	"os"
	"strings"
)

// GetLoggingHandler initializes a slog.Handler based on the provided logging
// level and format options.
func GetLoggingHandler(level string, pretty, json bool) slog.Handler {
	var logLevel = new(slog.LevelVar)

	switch strings.ToLower(level) {
	case "trace", "debug":
		logLevel.Set(slog.LevelDebug)
	case "info", "information":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	// logs belong on stderr, stdout stays available for program output
	output := os.Stderr

	var handler slog.Handler
	switch {
	case json:
		handler = slog.NewJSONHandler(output, opts)
	case pretty:
		handler = slog.NewTextHandler(output, &slog.HandlerOptions{
			Level: logLevel,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey && len(groups) == 0 {
					a.Value = slog.StringValue(a.Value.Time().Format("2006/01/02 15:04:05"))
				}
				return a
			},
		})
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	return handler
}

// SetupLogging initializes the global logger with the given level and format.
func SetupLogging(level string, pretty, json bool) {
	slog.SetDefault(slog.New(GetLoggingHandler(level, pretty, json)))
}
