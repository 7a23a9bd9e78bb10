package logging

import "context"

// LogLevel is an enumeration of the different log levels.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// options is a struct that contains options for the logging middleware.
// It uses the functional options pattern for flexible configuration.
type options struct {
	level  LogLevel
	prefix string

	requestIdFromContext func(ctx context.Context) string
}

// Option is a type that is used to set options for the logging middleware.
// It implements the functional options pattern.
type Option func(*options)

// WithLevel is a method that sets the log level for the logging middleware.
// Possible values are LogLevelDebug, LogLevelInfo, LogLevelWarn, and LogLevelError.
// The default value is LogLevelInfo.
func WithLevel(level LogLevel) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithPrefix is a method that sets the prefix for the logging middleware.
// If a prefix is set, it will be prepended to each log message.
// The default value is an empty string.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithContextRequestId is a method that sets a function which extracts the
// request ID from the request context. If a function is set, the logging
// middleware will attach the request ID to each log message.
// By default, no request ID is logged.
func WithContextRequestId(fn func(ctx context.Context) string) Option {
	return func(o *options) {
		o.requestIdFromContext = fn
	}
}

// newOptions is a function that returns a new options struct with sane default values.
func newOptions(opts ...Option) options {
	o := options{
		level:  LogLevelInfo,
		prefix: "",
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
