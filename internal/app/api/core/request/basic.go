// Package request provides functions to extract parameters from the request.
package request

import (
	"encoding/json"
	"net/http"
	"strings"
)

// PathRaw returns the value of the named path parameter.
func PathRaw(r *http.Request, name string) string {
	return r.PathValue(name)
}

// Path returns the value of the named path parameter.
// The return value is trimmed of leading and trailing whitespace.
func Path(r *http.Request, name string) string {
	return strings.TrimSpace(PathRaw(r, name))
}

// PathDefault returns the value of the named path parameter.
// If the parameter is empty, it returns the default value.
// The return value is trimmed of leading and trailing whitespace.
func PathDefault(r *http.Request, name string, defaultValue string) string {
	value := r.PathValue(name)
	if value == "" {
		return defaultValue
	}

	return Path(r, name)
}

// QueryRaw returns the value of the named query parameter.
func QueryRaw(r *http.Request, name string) string {
	return r.URL.Query().Get(name)
}

// Query returns the value of the named query parameter.
// The return value is trimmed of leading and trailing whitespace.
func Query(r *http.Request, name string) string {
	return strings.TrimSpace(QueryRaw(r, name))
}

// QueryDefault returns the value of the named query parameter.
// If the parameter is empty, it returns the default value.
// The return value is trimmed of leading and trailing whitespace.
func QueryDefault(r *http.Request, name string, defaultValue string) string {
	if !r.URL.Query().Has(name) {
		return defaultValue
	}

	return Query(r, name)
}

// HeaderRaw returns the value of the named header.
func HeaderRaw(r *http.Request, name string) string {
	return r.Header.Get(name)
}

// Header returns the value of the named header.
// The return value is trimmed of leading and trailing whitespace.
func Header(r *http.Request, name string) string {
	return strings.TrimSpace(HeaderRaw(r, name))
}

// HeaderDefault returns the value of the named header.
// If the header is not set, it returns the default value.
// The return value is trimmed of leading and trailing whitespace.
func HeaderDefault(r *http.Request, name, defaultValue string) string {
	if r.Header.Get(name) == "" {
		return defaultValue
	}

	return Header(r, name)
}

// BodyJson decodes the JSON value from the request body into the target.
// The target must be a pointer to a struct or slice.
// The function returns an error if the JSON value could not be decoded.
// The body reader is closed after reading.
func BodyJson(r *http.Request, target any) error {
	defer func() {
		_ = r.Body.Close()
	}()
	return json.NewDecoder(r.Body).Decode(target)
}
