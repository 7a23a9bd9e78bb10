// Package recovery contains a middleware that recovers from panics in
// downstream handlers and converts them into error responses.
package recovery

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"
)

// Middleware is a type that creates a new recovery middleware. The recovery middleware
// recovers from panics and returns an Internal Server Error response. This middleware should
// be the first middleware in the middleware chain, so that it can recover from panics in other
// middlewares.
type Middleware struct {
	o options
}

// New returns a new recovery middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	m := &Middleware{
		o: o,
	}

	return m
}

// Handler returns the recovery middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				stack := debug.Stack()

				realErr, ok := err.(error)
				if !ok {
					realErr = fmt.Errorf("%v", err)
				}

				// Check for a broken connection, as it is not really a
				// condition that warrants a panic stack trace.
				brokenPipe := isBrokenPipeError(realErr)

				if m.o.logCallback != nil {
					m.o.logCallback(realErr, stack, brokenPipe)
				}

				switch {
				case brokenPipe && m.o.brokenPipeCallback != nil:
					m.o.brokenPipeCallback(realErr, stack, w, r)
				case !brokenPipe && m.o.errCallback != nil:
					m.o.errCallback(realErr, stack, w, r)
				default:
					// no callback set, simply recover and do nothing...
				}
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func addPrefix(o options, message string) string {
	if o.logPrefix != "" {
		return o.logPrefix + " " + message
	}
	return message
}

// getDefaultErrCallback returns the default error callback function for the recovery
// middleware. It writes a JSON error envelope with an Internal Server Error status code.
// If the exposeStackTrace option is enabled, the stack trace is included in the details.
func getDefaultErrCallback(o options) func(err error, stack []byte, w http.ResponseWriter, r *http.Request) {
	return func(err error, stack []byte, w http.ResponseWriter, r *http.Request) {
		details := []map[string]any{}
		if o.exposeStackTrace && len(stack) > 0 {
			details = append(details, map[string]any{"stack": string(stack)})
		}

		requestId := "N/A"
		if o.requestIdFromContext != nil {
			if reqId := o.requestIdFromContext(r.Context()); reqId != "" {
				requestId = reqId
			}
		}

		responseBody := map[string]any{
			"success": false,
			"error": map[string]any{
				"code":    "INTERNAL_ERROR",
				"message": "something went wrong",
				"details": details,
			},
			"meta": map[string]any{
				"requestId": requestId,
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			},
		}

		jsonBody, _ := json.Marshal(responseBody)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(jsonBody)
	}
}

// getDefaultLogCallback returns the default log callback function for the recovery
// middleware. It logs the error and stack trace with slog in Error level.
func getDefaultLogCallback(o options) func(error, []byte, bool) {
	return func(err error, stack []byte, brokenPipe bool) {
		if brokenPipe {
			return // by default, ignore broken pipe errors
		}

		slog.Error(addPrefix(o, err.Error()), "stack", string(stack))
	}
}

func isBrokenPipeError(err error) bool {
	var syscallErr *os.SyscallError
	if errors.As(err, &syscallErr) {
		errMsg := strings.ToLower(syscallErr.Err.Error())
		if strings.Contains(errMsg, "broken pipe") ||
			strings.Contains(errMsg, "connection reset by peer") {
			return true
		}
	}

	return false
}
