// Package api is the typed request layer over the transport.
//
// Each verb helper sends a JSON body, decodes the standard response envelope
// into types.Envelope[T] and passes transport errors through unchanged.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/google/go-querystring/query"

	"github.com/felixgeelhaar/cleanaid/internal/errors"
	"github.com/felixgeelhaar/cleanaid/internal/transport"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

// Doer is the part of the transport the façade needs.
type Doer interface {
	Send(ctx context.Context, req *transport.Request) (*transport.Response, error)
	Stream(ctx context.Context, req *transport.Request) (*http.Response, error)
}

// Client issues typed requests through a Doer.
type Client struct {
	doer Doer
}

// New wraps d.
func New(d Doer) *Client {
	return &Client{doer: d}
}

// Doer returns the underlying transport, for callers that normalize responses themselves.
func (c *Client) Doer() Doer {
	return c.doer
}

// RequestOption adjusts an outgoing request.
type RequestOption func(*transport.Request)

// WithHeader sets a request header.
func WithHeader(key, value string) RequestOption {
	return func(r *transport.Request) {
		if r.Header == nil {
			r.Header = http.Header{}
		}
		r.Header.Set(key, value)
	}
}

// WithQuery merges extra query parameters.
func WithQuery(values url.Values) RequestOption {
	return func(r *transport.Request) {
		if len(values) == 0 {
			return
		}
		if r.Query == nil {
			r.Query = url.Values{}
		}
		for k, vs := range values {
			r.Query[k] = append(r.Query[k], vs...)
		}
	}
}

// WithRetries marks the request as already retried n times.
func WithRetries(n int) RequestOption {
	return func(r *transport.Request) { r.Retries = n }
}

// EncodeQuery turns a filter into query parameters. Structs are encoded by
// their url tags. Nil, or a filter with every field empty, yields nil.
func EncodeQuery(v any) (url.Values, error) {
	switch q := v.(type) {
	case nil:
		return nil, nil
	case url.Values:
		if len(q) == 0 {
			return nil, nil
		}
		return q, nil
	}

	values, err := query.Values(v)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeClient, "failed to encode query parameters", err)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}

// NewRequest builds a transport request with a JSON body.
func NewRequest(method, path string, body any, opts ...RequestOption) (*transport.Request, error) {
	req := &transport.Request{Method: method, Path: path}

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeClient, "failed to encode request body", err).WithRequest(method, path)
		}
		req.Body = bytes.NewReader(data)
	}

	for _, opt := range opts {
		opt(req)
	}
	return req, nil
}

// Do sends req and decodes the envelope.
func Do[T any](ctx context.Context, c *Client, req *transport.Request) (types.Envelope[T], error) {
	resp, err := c.doer.Send(ctx, req)
	if err != nil {
		return types.Envelope[T]{}, err
	}

	env, _, err := Normalize[T](resp.Body, "")
	if err != nil {
		if e, ok := errors.As(err); ok {
			e.WithRequest(req.Method, req.Path)
		}
		return types.Envelope[T]{}, err
	}
	return env, nil
}

// Get sends a GET with the filter encoded as query parameters.
func Get[T any](ctx context.Context, c *Client, path string, filter any, opts ...RequestOption) (types.Envelope[T], error) {
	q, err := EncodeQuery(filter)
	if err != nil {
		return types.Envelope[T]{}, err
	}
	req, err := NewRequest(http.MethodGet, path, nil, append([]RequestOption{WithQuery(q)}, opts...)...)
	if err != nil {
		return types.Envelope[T]{}, err
	}
	return Do[T](ctx, c, req)
}

// Post sends a POST with a JSON body.
func Post[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (types.Envelope[T], error) {
	return send[T](ctx, c, http.MethodPost, path, body, opts)
}

// Put sends a PUT with a JSON body.
func Put[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (types.Envelope[T], error) {
	return send[T](ctx, c, http.MethodPut, path, body, opts)
}

// Patch sends a PATCH with a JSON body.
func Patch[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (types.Envelope[T], error) {
	return send[T](ctx, c, http.MethodPatch, path, body, opts)
}

// Delete sends a DELETE without a body.
func Delete[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (types.Envelope[T], error) {
	return send[T](ctx, c, http.MethodDelete, path, nil, opts)
}

func send[T any](ctx context.Context, c *Client, method, path string, body any, opts []RequestOption) (types.Envelope[T], error) {
	req, err := NewRequest(method, path, body, opts...)
	if err != nil {
		return types.Envelope[T]{}, err
	}
	return Do[T](ctx, c, req)
}

// Require unwraps an envelope, turning success:false into an ENVELOPE-002 error.
func Require[T any](env types.Envelope[T], err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	if !env.OK() {
		var zero T
		return zero, errors.NewEnvelopeUnsuccessfulError(env.Message)
	}
	return env.Data, nil
}
