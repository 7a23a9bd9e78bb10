// Package logging contains a middleware that logs information about each
// handled HTTP request.
package logging

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Middleware is a type that creates a new logging middleware. The logging
// middleware logs information about each request once it has completed.
type Middleware struct {
	o options
}

// New returns a new logging middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	return &Middleware{
		o: o,
	}
}

// Handler returns the logging middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := newWriterWrapper(w)
		start := time.Now()

		defer func() {
			args := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.StatusCode,
				"dataLength", ww.WrittenBytes,
				"duration", time.Since(start).String(),
				"clientIP", clientIP(r),
			}
			if m.o.requestIdFromContext != nil {
				if reqId := m.o.requestIdFromContext(r.Context()); reqId != "" {
					args = append(args, "requestId", reqId)
				}
			}

			m.log(args)
		}()

		next.ServeHTTP(ww, r)
	})
}

func (m *Middleware) log(args []any) {
	msg := "request finished"
	if m.o.prefix != "" {
		msg = m.o.prefix + " " + msg
	}

	switch m.o.level {
	case LogLevelDebug:
		slog.Debug(msg, args...)
	case LogLevelInfo:
		slog.Info(msg, args...)
	case LogLevelWarn:
		slog.Warn(msg, args...)
	default:
		slog.Error(msg, args...)
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}

	// remote address without the port number
	if idx := strings.LastIndex(r.RemoteAddr, ":"); idx != -1 {
		return r.RemoteAddr[:idx]
	}
	return r.RemoteAddr
}
