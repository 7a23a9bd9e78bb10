// Package tracing contains a middleware that attaches a unique request ID
// to each incoming request.
package tracing

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ctxKey int

const ctxRequestId ctxKey = iota

// Middleware is a type that creates a new tracing middleware. The tracing
// middleware tags each request with a request ID that can be used to
// correlate log lines and error responses.
type Middleware struct {
	o options
}

// New returns a new tracing middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	return &Middleware{
		o: o,
	}
}

// Handler returns the tracing middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqId string

		// re-use the upstream request id if one was sent
		if m.o.upstreamReqIdHeader != "" {
			reqId = r.Header.Get(m.o.upstreamReqIdHeader)
		}

		if reqId == "" {
			reqId = m.o.generator()
		}

		if m.o.headerIdentifier != "" {
			w.Header().Set(m.o.headerIdentifier, reqId)
		}

		r = r.WithContext(context.WithValue(r.Context(), ctxRequestId, reqId))

		next.ServeHTTP(w, r)
	})
}

// RequestId returns the request ID that the middleware stored in the given
// context, or an empty string if the context carries none.
func RequestId(ctx context.Context) string {
	id, _ := ctx.Value(ctxRequestId).(string)
	return id
}

func defaultGenerator() string {
	return uuid.New().String()
}
