// Package client is the entry point of the Cleanaid admin SDK.
//
// A Client wires the HTTP transport, the typed request layer, one module per
// admin resource and a shared query cache. Raw module calls always hit the
// network; Queries serve reads through the cache and Mutations refresh the
// reads a write affects.
//
//	c, err := client.New(client.Config{BaseURL: "https://api.cleanaid.example"})
//	if err != nil {
//		return err
//	}
//	if _, err := c.SignIn(ctx, email, password); err != nil {
//		return err
//	}
//	dash, err := c.Queries().Dashboard(ctx)
package client

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/felixgeelhaar/cleanaid/internal/admin"
	"github.com/felixgeelhaar/cleanaid/internal/api"
	"github.com/felixgeelhaar/cleanaid/internal/errors"
	"github.com/felixgeelhaar/cleanaid/internal/log"
	"github.com/felixgeelhaar/cleanaid/internal/metrics"
	"github.com/felixgeelhaar/cleanaid/internal/query"
	"github.com/felixgeelhaar/cleanaid/internal/session"
	"github.com/felixgeelhaar/cleanaid/internal/transport"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

// Defaults applied by New when the matching Config field is zero.
const (
	DefaultStaleTime         = 30 * time.Second
	DefaultMaxInactive       = 500
	DefaultDashboardInterval = 5 * time.Minute
)

// Re-exported so SDK users can name the types the client hands out.
type (
	Session         = session.Session
	SessionStore    = session.Store
	LoginRedirector = transport.LoginRedirector
	Cache           = query.Cache
	Key             = query.Key

	UserFilter      = admin.UserFilter
	BusinessFilter  = admin.BusinessFilter
	OrderFilter     = admin.OrderFilter
	PaymentFilter   = admin.PaymentFilter
	PayoutFilter    = admin.PayoutFilter
	BroadcastFilter = admin.BroadcastFilter
	AdminFilter     = admin.AdminFilter
	ExportFilter    = admin.ExportFilter
	ListFilter      = admin.ListFilter
	DateRange       = admin.DateRange
)

// Config configures a Client. Only BaseURL is required.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	// RateLimit caps requests per second. Zero disables limiting.
	RateLimit float64
	Burst     int

	// StaleTime, GCTime and MaxInactive configure the cache New creates.
	// They are ignored when Cache is set.
	StaleTime   time.Duration
	GCTime      time.Duration
	MaxInactive int
	// DashboardInterval is the polling cadence of WatchDashboard.
	DashboardInterval time.Duration

	// Sessions holds the signed-in admin. Defaults to an in-memory store.
	Sessions SessionStore
	// Redirector is told when the backend rejects the session.
	Redirector LoginRedirector
	// Cache replaces the client's own query cache.
	Cache *Cache

	HTTPClient *http.Client
	Logger     *log.Logger
	Metrics    *metrics.Metrics
}

// Client is a configured Cleanaid admin client. It is safe for concurrent use.
type Client struct {
	*admin.Service

	transport *transport.Transport
	api       *api.Client
	cache     *query.Cache
	sessions  session.Store
	logger    *log.Logger
	rejected  atomic.Bool

	queries   *Queries
	mutations *Mutations
}

// New builds a client from cfg.
func New(cfg Config) (*Client, error) {
	logger := log.OrDefault(cfg.Logger)

	sessions := cfg.Sessions
	if sessions == nil {
		sessions = session.NewMemoryStore()
	}

	cache := cfg.Cache
	if cache == nil {
		cache = query.New(cacheOptions(cfg, logger))
	}

	c := &Client{
		cache:    cache,
		sessions: sessions,
		logger:   logger.WithComponent("client"),
	}

	opts := []transport.Option{
		transport.WithSessionStore(sessions),
		transport.WithRedirector(transport.RedirectFunc(c.sessionRejected(cfg.Redirector))),
		transport.WithLogger(logger),
		transport.WithMetrics(cfg.Metrics),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, transport.WithHTTPClient(cfg.HTTPClient))
	}

	t, err := transport.New(transport.Config{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		Headers:   cfg.Headers,
		UserAgent: cfg.UserAgent,
		RateLimit: cfg.RateLimit,
		Burst:     cfg.Burst,
	}, opts...)
	if err != nil {
		return nil, err
	}

	c.transport = t
	c.api = api.New(t)
	c.Service = admin.New(c.api)

	interval := cfg.DashboardInterval
	if interval <= 0 {
		interval = DefaultDashboardInterval
	}
	c.queries = &Queries{svc: c.Service, cache: cache, dashboardInterval: interval, rejected: &c.rejected}
	c.mutations = &Mutations{svc: c.Service, cache: cache, logger: c.logger}
	return c, nil
}

func cacheOptions(cfg Config, logger *log.Logger) query.Options {
	opts := query.Options{
		StaleTime:   cfg.StaleTime,
		GCTime:      cfg.GCTime,
		MaxInactive: cfg.MaxInactive,
		Logger:      logger,
		Metrics:     cfg.Metrics,
	}
	if opts.StaleTime == 0 {
		opts.StaleTime = DefaultStaleTime
	}
	if opts.MaxInactive == 0 {
		opts.MaxInactive = DefaultMaxInactive
	}
	return opts
}

// sessionRejected drops cached data along with the session the transport
// already cleared, then hands over to the caller's redirector. Watched reads
// stop calling the API until the next sign-in.
func (c *Client) sessionRejected(next LoginRedirector) func(ctx context.Context) {
	return func(ctx context.Context) {
		c.rejected.Store(true)
		c.cache.Clear()
		if next != nil {
			next.RedirectToLogin(ctx)
		}
	}
}

// Queries returns the cached reads.
func (c *Client) Queries() *Queries { return c.queries }

// Mutations returns the writes that invalidate cached reads.
func (c *Client) Mutations() *Mutations { return c.mutations }

// Cache returns the query cache shared by Queries and Mutations.
func (c *Client) Cache() *Cache { return c.cache }

// API returns the typed request layer for endpoints without a module.
func (c *Client) API() *api.Client { return c.api }

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string { return c.transport.BaseURL() }

// Session returns the stored session, or session.ErrNoSession.
func (c *Client) Session(ctx context.Context) (*Session, error) {
	return c.sessions.Get(ctx)
}

// SignIn exchanges credentials for a token and stores the resulting session.
// An unsuccessful envelope is returned as an ENVELOPE-002 error.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	result, err := api.Require(c.Admins.SignIn(ctx, email, password))
	if err != nil {
		c.logger.WithError(err).Warn("sign-in failed", "email", email)
		return nil, err
	}
	if result.Token == "" {
		return nil, errors.New(errors.ErrCodeSessionInvalid, "sign-in response carried no token")
	}

	s, err := session.FromToken(result.Token)
	if err != nil {
		// Opaque tokens are fine; identity then comes from the response.
		s = &session.Session{Token: result.Token}
	}
	mergeAdmin(s, result.Admin)

	if err := c.start(ctx, s); err != nil {
		return nil, err
	}
	c.logger.Info("signed in", "admin", s.User.ID, "role", s.User.Role)
	return s, nil
}

// SignInWithToken stores an existing token and confirms it against the
// profile endpoint. The session is dropped again if the token is rejected.
func (c *Client) SignInWithToken(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, errors.New(errors.ErrCodeSessionInvalid, "token is empty")
	}
	s, err := session.FromToken(token)
	if err != nil {
		s = &session.Session{Token: token}
	}
	if err := c.start(ctx, s); err != nil {
		return nil, err
	}

	me, err := api.Require(c.Admins.Me(ctx))
	if err != nil {
		_ = c.sessions.Clear(ctx)
		return nil, err
	}
	mergeAdmin(s, me)
	if err := c.sessions.Set(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *Client) start(ctx context.Context, s *Session) error {
	c.cache.Clear()
	c.rejected.Store(false)
	return c.sessions.Set(ctx, s)
}

// SignOut forgets the session and every cached read.
func (c *Client) SignOut(ctx context.Context) error {
	c.cache.Clear()
	if err := c.sessions.Clear(ctx); err != nil {
		return err
	}
	c.logger.Info("signed out")
	return nil
}

func mergeAdmin(s *Session, a types.Admin) {
	if s.User.ID == "" {
		s.User.ID = a.ID
	}
	if s.User.Name == "" {
		s.User.Name = a.DisplayName()
	}
	if s.User.Email == "" {
		s.User.Email = a.Email
	}
	if s.User.Role == "" {
		s.User.Role = a.Role
	}
}
