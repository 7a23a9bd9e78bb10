// Package cors contains a middleware that adds Cross-Origin Resource Sharing
// headers to responses and answers preflight requests.
package cors

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// Middleware is a type that creates a new CORS middleware. The CORS middleware
// adds Cross-Origin Resource Sharing headers to the response. This middleware should
// be used to allow cross-origin requests to your server.
type Middleware struct {
	o options

	allOrigins bool // all origins are allowed
}

// New returns a new CORS middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	m := &Middleware{
		o: o,
	}

	if len(m.o.allowedOrigins) == 1 && m.o.allowedOrigins[0] == "*" {
		m.allOrigins = true
	}

	return m
}

// Handler returns the CORS middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Handle preflight requests and stop the chain as some other
		// middleware may not handle OPTIONS requests correctly.
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			m.handlePreflight(w, r)
			w.WriteHeader(http.StatusNoContent) // always return 204 No Content
			return
		}

		m.handleNormal(w, r)
		next.ServeHTTP(w, r)
	})
}

// handlePreflight handles preflight requests. If the request is not a valid CORS
// request, no CORS headers are added to the response.
func (m *Middleware) handlePreflight(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Vary", "Origin, Access-Control-Request-Method, Access-Control-Request-Headers")

	origin := r.Header.Get("Origin")
	if origin == "" {
		return // not a valid CORS request
	}

	if !m.originAllowed(origin) {
		return
	}

	reqMethod := r.Header.Get("Access-Control-Request-Method")
	if !m.methodAllowed(reqMethod) {
		return
	}

	reqHeaders := r.Header.Get("Access-Control-Request-Headers")
	if !m.headersAllowed(reqHeaders) {
		return
	}

	if m.allOrigins {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	} else {
		w.Header().Set("Access-Control-Allow-Origin", origin)
	}
	w.Header().Set("Access-Control-Allow-Methods", reqMethod)
	if reqHeaders != "" {
		// Echoing the requested headers is sufficient, the list of
		// supported headers can be unbounded.
		w.Header().Set("Access-Control-Allow-Headers", reqHeaders)
	}
	if m.o.allowCredentials {
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	if m.o.maxAge > 0 {
		w.Header().Set("Access-Control-Max-Age", strconv.Itoa(m.o.maxAge))
	}
}

// handleNormal handles normal CORS requests. If the request is not a valid CORS
// request, no CORS headers are added to the response.
func (m *Middleware) handleNormal(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Vary", "Origin")

	origin := r.Header.Get("Origin")
	if origin == "" {
		return // not a valid CORS request
	}

	if !m.originAllowed(origin) {
		return
	}

	if !m.methodAllowed(r.Method) {
		return
	}

	if m.allOrigins {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	} else {
		w.Header().Set("Access-Control-Allow-Origin", origin)
	}
	if len(m.o.exposedHeaders) > 0 {
		w.Header().Set("Access-Control-Expose-Headers", strings.Join(m.o.exposedHeaders, ", "))
	}
	if m.o.allowCredentials {
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
}

func (m *Middleware) originAllowed(origin string) bool {
	if m.allOrigins {
		return true
	}

	return slices.Contains(m.o.allowedOrigins, origin)
}

func (m *Middleware) methodAllowed(method string) bool {
	if method == http.MethodOptions {
		return true // preflight request is always allowed
	}

	if len(m.o.allowedMethods) == 1 && m.o.allowedMethods[0] == "*" {
		return true
	}

	return slices.Contains(m.o.allowedMethods, method)
}

func (m *Middleware) headersAllowed(headers string) bool {
	if headers == "" {
		return true // no headers are requested
	}

	if len(m.o.allowedHeaders) == 0 {
		return false
	}

	if _, ok := m.o.allowedHeaders["*"]; ok {
		return true
	}

	// requested headers arrive comma separated and in lowercase
	for header := range strings.SplitSeq(headers, ",") {
		if _, ok := m.o.allowedHeaders[strings.TrimSpace(header)]; !ok {
			return false
		}
	}

	return true
}
