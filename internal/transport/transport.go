// Package transport is the single HTTP exit point of the admin client.
//
// Every request gets the session's bearer token, a request id and a start
// timestamp. Every response is logged and counted. A 401 on a request that
// has not been retried clears the session and redirects to login once.
package transport

import (
	"context"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/felixgeelhaar/cleanaid/internal/errors"
	"github.com/felixgeelhaar/cleanaid/internal/log"
	"github.com/felixgeelhaar/cleanaid/internal/metrics"
	"github.com/felixgeelhaar/cleanaid/internal/session"
)

const (
	// DefaultTimeout bounds a whole request, body included.
	DefaultTimeout = 10 * time.Second

	// MaxAuthRetries is the number of retries after which a 401 no longer
	// triggers the session reset and login redirect.
	MaxAuthRetries = 1

	// HeaderRequestID carries the per-request correlation id.
	HeaderRequestID = "X-Request-ID"

	maxErrorBody = 1 << 20
)

// Config configures a Transport.
type Config struct {
	// BaseURL is the API root every request path is resolved against.
	BaseURL string
	// Timeout defaults to DefaultTimeout.
	Timeout time.Duration
	// Headers are added to every request.
	Headers map[string]string
	// UserAgent overrides the default user agent.
	UserAgent string
	// RateLimit caps requests per second. Zero disables limiting.
	RateLimit float64
	// Burst is the limiter bucket size, at least 1.
	Burst int
}

// LoginRedirector is told when the session has ended and the user must sign in again.
type LoginRedirector interface {
	RedirectToLogin(ctx context.Context)
}

// RedirectFunc adapts a function to LoginRedirector.
type RedirectFunc func(ctx context.Context)

// RedirectToLogin calls f.
func (f RedirectFunc) RedirectToLogin(ctx context.Context) { f(ctx) }

// Request is one outgoing call. Path is relative to the base URL.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    io.Reader
	Header  http.Header
	Retries int
}

// WithRetry returns a copy of r marked as one retry further along.
func (r *Request) WithRetry() *Request {
	cp := *r
	cp.Header = r.Header.Clone()
	cp.Retries = r.Retries + 1
	return &cp
}

// Response is a fully read 2xx response.
type Response struct {
	Status    int
	Header    http.Header
	Body      []byte
	Elapsed   time.Duration
	RequestID string
}

// Transport sends requests to the admin API.
type Transport struct {
	baseURL   string
	headers   map[string]string
	userAgent string

	client     *http.Client
	limiter    *rate.Limiter
	sessions   session.Store
	redirector LoginRedirector
	logger     *log.Logger
	metrics    *metrics.Metrics
}

// Option customizes a Transport.
type Option func(*Transport)

// WithSessionStore sets where the bearer token is read from and cleared on 401.
func WithSessionStore(s session.Store) Option {
	return func(t *Transport) { t.sessions = s }
}

// WithRedirector sets the login redirector. Nil disables redirects.
func WithRedirector(r LoginRedirector) Option {
	return func(t *Transport) { t.redirector = r }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(t *Transport) { t.logger = l }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(t *Transport) { t.metrics = m }
}

// WithHTTPClient replaces the underlying client. A client without a Timeout
// gets the transport's.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) { t.client = c }
}

// New validates cfg and builds a Transport.
func New(cfg Config, opts ...Option) (*Transport, error) {
	base, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	t := &Transport{
		baseURL:   base,
		headers:   cfg.Headers,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: timeout},
	}
	if t.userAgent == "" {
		t.userAgent = "cleanaid-admin-client"
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	for _, opt := range opts {
		opt(t)
	}
	if t.client == nil {
		t.client = &http.Client{}
	}
	if t.client.Timeout == 0 {
		cp := *t.client
		cp.Timeout = timeout
		t.client = &cp
	}

	if t.sessions == nil {
		t.sessions = session.NewMemoryStore()
	}
	t.logger = log.OrDefault(t.logger).WithComponent("transport")

	return t, nil
}

func parseBaseURL(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", errors.New(errors.ErrCodeConfigMissing, "API base URL is required").
			WithSuggestion("Set CLEANAID_API_URL or run 'cleanaid config set api.url <url>'")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", errors.Wrap(errors.ErrCodeConfigInvalid, "API base URL must be absolute: "+raw, err)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// BaseURL returns the normalized API root.
func (t *Transport) BaseURL() string {
	return t.baseURL
}

// Sessions returns the session store the transport reads from.
func (t *Transport) Sessions() session.Store {
	return t.sessions
}

// Send performs req and reads the whole body.
func (t *Transport) Send(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()
	resp, elapsed, requestID, err := t.do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, t.failed(ctx, req, requestID, time.Since(start), err)
	}

	return &Response{
		Status:    resp.StatusCode,
		Header:    resp.Header,
		Body:      body,
		Elapsed:   elapsed,
		RequestID: requestID,
	}, nil
}

// Stream performs req and hands back the open 2xx response. The caller closes Body.
func (t *Transport) Stream(ctx context.Context, req *Request) (*http.Response, error) {
	resp, _, _, err := t.do(ctx, req)
	return resp, err
}

// do sends the request and converts non-2xx responses into errors.
func (t *Transport) do(ctx context.Context, req *Request) (*http.Response, time.Duration, string, error) {
	requestID := uuid.NewString()

	httpReq, err := t.build(ctx, req, requestID)
	if err != nil {
		return nil, 0, requestID, err
	}

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, 0, requestID, errors.Wrap(errors.ErrCodeRateLimitWait, "rate limiter wait aborted", err).
				WithRequest(req.Method, req.Path)
		}
	}

	start := time.Now()
	resp, err := t.client.Do(httpReq)
	elapsed := time.Since(start)
	if err != nil {
		return nil, elapsed, requestID, t.failed(ctx, req, requestID, elapsed, err)
	}

	t.metrics.ObserveRequest(req.Method, resp.StatusCode, elapsed)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		t.logger.DebugContext(ctx, "request completed",
			"method", req.Method,
			"path", req.Path,
			"status", resp.StatusCode,
			"elapsed", elapsed,
			"request_id", requestID,
		)
		return resp, elapsed, requestID, nil
	}

	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	statusErr := errors.NewStatusError(req.Method, req.Path, resp.StatusCode, serverMessage(body), body)
	t.handleStatus(ctx, req, statusErr, elapsed, requestID)
	return nil, elapsed, requestID, statusErr
}

func (t *Transport) build(ctx context.Context, req *Request, requestID string) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target := t.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, req.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeClient, "failed to build request", err).WithRequest(method, req.Path)
	}

	for k, v := range t.headers {
		httpReq.Header.Set(k, v)
	}
	for k, vs := range req.Header {
		httpReq.Header[k] = append([]string(nil), vs...)
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}
	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("User-Agent", t.userAgent)
	httpReq.Header.Set(HeaderRequestID, requestID)

	if s, err := t.sessions.Get(ctx); err == nil {
		httpReq.Header.Set("Authorization", "Bearer "+s.Token)
	}

	return httpReq, nil
}

// handleStatus applies the per-status side effects of a non-2xx response.
func (t *Transport) handleStatus(ctx context.Context, req *Request, e *errors.Error, elapsed time.Duration, requestID string) {
	logger := t.logger.With(
		"method", req.Method,
		"path", req.Path,
		"status", e.Status,
		"elapsed", elapsed,
		"request_id", requestID,
	)
	t.metrics.Error(string(e.Code), "transport")

	switch {
	case e.Status == http.StatusUnauthorized:
		if req.Retries >= MaxAuthRetries {
			logger.DebugContext(ctx, "unauthorized on retried request", "retries", req.Retries)
			return
		}
		logger.WarnContext(ctx, "session rejected, redirecting to login")
		if err := t.sessions.Clear(ctx); err != nil {
			logger.WithError(err).WarnContext(ctx, "failed to clear session")
		}
		if t.redirector != nil {
			t.redirector.RedirectToLogin(ctx)
			t.metrics.AuthRedirect()
		}
	case e.Status == http.StatusForbidden:
		logger.WarnContext(ctx, "access forbidden")
	case e.Status >= 500:
		logger.ErrorContext(ctx, "server error", "message", e.Message)
	default:
		logger.DebugContext(ctx, "request rejected", "message", e.Message)
	}
}

// failed classifies and logs a request that got no response.
func (t *Transport) failed(ctx context.Context, req *Request, requestID string, elapsed time.Duration, cause error) error {
	var e *errors.Error
	var netErr net.Error
	switch {
	case stderrors.Is(cause, context.DeadlineExceeded),
		stderrors.As(cause, &netErr) && netErr.Timeout():
		e = errors.NewTimeoutError(req.Method, req.Path, cause)
	default:
		e = errors.NewNetworkError(req.Method, req.Path, cause)
	}

	t.metrics.ObserveFailure(req.Method, string(e.Code), elapsed)

	logger := t.logger.WithError(e).With(
		"method", req.Method,
		"path", req.Path,
		"elapsed", elapsed,
		"request_id", requestID,
	)
	if stderrors.Is(cause, context.Canceled) {
		logger.DebugContext(ctx, "request cancelled")
		return e
	}
	t.metrics.Error(string(e.Code), "transport")
	logger.ErrorContext(ctx, "network error")
	return e
}

// serverMessage extracts the human-readable message from an error body.
func serverMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, key := range []string{"message", "error.message", "error"} {
		if r := gjson.GetBytes(body, key); r.Type == gjson.String && r.String() != "" {
			return r.String()
		}
	}
	return ""
}
