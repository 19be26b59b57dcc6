// Package transport defines the HTTP boundary consumed by the request
// dispatcher. The dispatcher only ever sees the normalized Request and
// Response value types, so any HTTP client can sit behind the interface.
package transport

import (
	"context"
	"net/textproto"
)

// Request is a fully built outgoing HTTP request.
type Request struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    []byte
}

// Response is a flattened HTTP response. Headers hold the first value
// for each key, canonicalized.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// Header returns the named header or "".
func (r *Response) Header(key string) string {
	if r == nil || r.Headers == nil {
		return ""
	}
	return r.Headers[textproto.CanonicalMIMEHeaderKey(key)]
}

// Transport sends one HTTP request. Implementations return an error only
// for transport-level failures; HTTP error statuses come back as a
// Response.
type Transport interface {
	Send(ctx context.Context, req Request) (*Response, error)
}
