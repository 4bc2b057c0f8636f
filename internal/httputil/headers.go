// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for the MCP transport.
package httputil

import (
	"net/http"
)

// Header names the TweekIT service reads the credentials from.
const (
	HeaderAPIKey    = "ApiKey"
	HeaderAPISecret = "ApiSecret"
)

// HeaderTransport is an http.RoundTripper that sets a fixed set of headers
// on every outgoing request before delegating to Base. Headers already
// present on the request are overwritten.
type HeaderTransport struct {
	Base    http.RoundTripper
	Headers http.Header
}

// NewHeaderTransport wraps base (http.DefaultTransport when nil) so every
// request carries headers.
func NewHeaderTransport(base http.RoundTripper, headers http.Header) *HeaderTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &HeaderTransport{Base: base, Headers: headers.Clone()}
}

// RoundTrip implements http.RoundTripper. The caller's request is cloned,
// never modified.
func (t *HeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	for name, values := range t.Headers {
		r.Header.Del(name)
		for _, v := range values {
			r.Header.Add(name, v)
		}
	}
	return t.Base.RoundTrip(r)
}

// AuthHeaders builds the credential headers plus an optional User-Agent.
func AuthHeaders(apiKey, apiSecret, userAgent string) http.Header {
	h := make(http.Header)
	h.Set(HeaderAPIKey, apiKey)
	h.Set(HeaderAPISecret, apiSecret)
	if userAgent != "" {
		h.Set("User-Agent", userAgent)
	}
	return h
}

// NewClient returns an http.Client whose requests carry headers and go out
// through base (http.DefaultTransport when nil).
func NewClient(base http.RoundTripper, headers http.Header) *http.Client {
	return &http.Client{Transport: NewHeaderTransport(base, headers)}
}
