package tracing

// options is a struct that contains options for the tracing middleware.
// It uses the functional options pattern for flexible configuration.
type options struct {
	headerIdentifier    string
	upstreamReqIdHeader string
	generator           func() string
}

// Option is a type that is used to set options for the tracing middleware.
type Option func(*options)

// WithHeaderIdentifier sets the header name that the middleware uses to
// report the request ID back to the client. An empty name disables the
// response header.
func WithHeaderIdentifier(name string) Option {
	return func(o *options) {
		o.headerIdentifier = name
	}
}

// WithUpstreamHeader sets the header name that the middleware checks for an
// existing request ID, for example one set by a reverse proxy.
// An empty name disables the lookup.
func WithUpstreamHeader(name string) Option {
	return func(o *options) {
		o.upstreamReqIdHeader = name
	}
}

// WithGenerator sets the function that generates new request IDs.
// The default generator produces random UUIDs.
func WithGenerator(fn func() string) Option {
	return func(o *options) {
		o.generator = fn
	}
}

// newOptions is a function that returns a new options struct with sane default values.
func newOptions(opts ...Option) options {
	o := options{
		headerIdentifier:    "X-Request-ID",
		upstreamReqIdHeader: "X-Request-ID",
		generator:           defaultGenerator,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
