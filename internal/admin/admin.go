// Package admin holds one module per admin API resource.
//
// Modules are stateless wrappers over the typed request layer. Filters are
// plain structs whose url tags become query parameters; nil filters send no
// parameters and values are passed through unvalidated.
package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/felixgeelhaar/cleanaid/internal/api"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

// Service groups every resource module.
type Service struct {
	Users      *Users
	Businesses *Businesses
	Orders     *Orders
	Payments   *Payments
	Payouts    *Payouts
	Broadcasts *Broadcasts
	Analytics  *Analytics
	Admins     *Admins
}

// New builds all modules over c.
func New(c *api.Client) *Service {
	return &Service{
		Users:      NewUsers(c),
		Businesses: NewBusinesses(c),
		Orders:     NewOrders(c),
		Payments:   NewPayments(c),
		Payouts:    NewPayouts(c),
		Broadcasts: NewBroadcasts(c),
		Analytics:  NewAnalytics(c),
		Admins:     NewAdmins(c),
	}
}

// Ack is the payload of calls whose data the client ignores, such as deletes.
type Ack = json.RawMessage

// resource implements the operations every module shares.
type resource[T any] struct {
	c     *api.Client
	base  string
	alias string
}

func (r resource[T]) path(parts ...string) string {
	var b strings.Builder
	b.WriteString(r.base)
	for _, p := range parts {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(p))
	}
	return b.String()
}

// list calls the transport directly and remaps {<alias>: [...]} bodies into
// the canonical envelope.
func (r resource[T]) list(ctx context.Context, filter any) (types.Envelope[[]T], error) {
	q, err := api.EncodeQuery(filter)
	if err != nil {
		return types.Envelope[[]T]{}, err
	}
	req, err := api.NewRequest(http.MethodGet, r.base, nil, api.WithQuery(q))
	if err != nil {
		return types.Envelope[[]T]{}, err
	}

	resp, err := r.c.Doer().Send(ctx, req)
	if err != nil {
		return types.Envelope[[]T]{}, err
	}

	env, _, err := api.Normalize[[]T](resp.Body, r.alias)
	return env, err
}

func (r resource[T]) get(ctx context.Context, id string) (types.Envelope[T], error) {
	return api.Get[T](ctx, r.c, r.path(id), nil)
}

func (r resource[T]) create(ctx context.Context, body any) (types.Envelope[T], error) {
	return api.Post[T](ctx, r.c, r.base, body)
}

func (r resource[T]) update(ctx context.Context, id string, body any) (types.Envelope[T], error) {
	return api.Put[T](ctx, r.c, r.path(id), body)
}

func (r resource[T]) delete(ctx context.Context, id string) (types.Envelope[Ack], error) {
	return api.Delete[Ack](ctx, r.c, r.path(id))
}

func (r resource[T]) updateStatus(ctx context.Context, id, status, reason string) (types.Envelope[T], error) {
	return api.Patch[T](ctx, r.c, r.path(id, "status"), types.StatusUpdate{Status: status, Reason: reason})
}

// action posts to <base>/<id>/<name>.
func (r resource[T]) action(ctx context.Context, id, name string, body any) (types.Envelope[T], error) {
	return api.Post[T](ctx, r.c, r.path(id, name), body)
}

func stats[S any](ctx context.Context, c *api.Client, base string) (types.Envelope[S], error) {
	return api.Get[S](ctx, c, base+"/stats", nil)
}
