package client

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/felixgeelhaar/cleanaid/internal/admin"
	"github.com/felixgeelhaar/cleanaid/internal/query"
	"github.com/felixgeelhaar/cleanaid/internal/session"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

// Queries are the cached reads. Each returns the envelope the module
// returned, served from the cache while it is fresh.
type Queries struct {
	svc               *admin.Service
	cache             *query.Cache
	dashboardInterval time.Duration
	// rejected is set once the backend refuses the session and reset on sign-in.
	rejected *atomic.Bool
}

func cached[T any](ctx context.Context, q *Queries, key Key, fetch query.Fetcher[types.Envelope[T]]) (types.Envelope[T], error) {
	return query.Fetch(ctx, q.cache, key, fetch)
}

func (q *Queries) UserList(ctx context.Context, f *UserFilter) (types.Envelope[[]types.User], error) {
	return cached(ctx, q, ListKey(UserKeys, f), func(ctx context.Context) (types.Envelope[[]types.User], error) {
		return q.svc.Users.List(ctx, f)
	})
}

func (q *Queries) UserDetail(ctx context.Context, id string) (types.Envelope[types.User], error) {
	return cached(ctx, q, UserKeys.Detail(id), func(ctx context.Context) (types.Envelope[types.User], error) {
		return q.svc.Users.Get(ctx, id)
	})
}

func (q *Queries) UserStats(ctx context.Context) (types.Envelope[types.UserStats], error) {
	return cached(ctx, q, UserKeys.Stats(), q.svc.Users.Stats)
}

func (q *Queries) BusinessList(ctx context.Context, f *BusinessFilter) (types.Envelope[[]types.Business], error) {
	return cached(ctx, q, ListKey(BusinessKeys, f), func(ctx context.Context) (types.Envelope[[]types.Business], error) {
		return q.svc.Businesses.List(ctx, f)
	})
}

func (q *Queries) BusinessDetail(ctx context.Context, id string) (types.Envelope[types.Business], error) {
	return cached(ctx, q, BusinessKeys.Detail(id), func(ctx context.Context) (types.Envelope[types.Business], error) {
		return q.svc.Businesses.Get(ctx, id)
	})
}

func (q *Queries) BusinessStats(ctx context.Context) (types.Envelope[types.BusinessStats], error) {
	return cached(ctx, q, BusinessKeys.Stats(), q.svc.Businesses.Stats)
}

func (q *Queries) OrderList(ctx context.Context, f *OrderFilter) (types.Envelope[[]types.Order], error) {
	return cached(ctx, q, ListKey(OrderKeys, f), func(ctx context.Context) (types.Envelope[[]types.Order], error) {
		return q.svc.Orders.List(ctx, f)
	})
}

func (q *Queries) OrderDetail(ctx context.Context, id string) (types.Envelope[types.Order], error) {
	return cached(ctx, q, OrderKeys.Detail(id), func(ctx context.Context) (types.Envelope[types.Order], error) {
		return q.svc.Orders.Get(ctx, id)
	})
}

func (q *Queries) OrderStats(ctx context.Context) (types.Envelope[types.OrderStats], error) {
	return cached(ctx, q, OrderKeys.Stats(), q.svc.Orders.Stats)
}

func (q *Queries) PaymentList(ctx context.Context, f *PaymentFilter) (types.Envelope[[]types.Payment], error) {
	return cached(ctx, q, ListKey(PaymentKeys, f), func(ctx context.Context) (types.Envelope[[]types.Payment], error) {
		return q.svc.Payments.List(ctx, f)
	})
}

func (q *Queries) PaymentDetail(ctx context.Context, id string) (types.Envelope[types.Payment], error) {
	return cached(ctx, q, PaymentKeys.Detail(id), func(ctx context.Context) (types.Envelope[types.Payment], error) {
		return q.svc.Payments.Get(ctx, id)
	})
}

func (q *Queries) PaymentStats(ctx context.Context) (types.Envelope[types.PaymentStats], error) {
	return cached(ctx, q, PaymentKeys.Stats(), q.svc.Payments.Stats)
}

func (q *Queries) PayoutList(ctx context.Context, f *PayoutFilter) (types.Envelope[[]types.Payout], error) {
	return cached(ctx, q, ListKey(PayoutKeys, f), func(ctx context.Context) (types.Envelope[[]types.Payout], error) {
		return q.svc.Payouts.List(ctx, f)
	})
}

func (q *Queries) PayoutDetail(ctx context.Context, id string) (types.Envelope[types.Payout], error) {
	return cached(ctx, q, PayoutKeys.Detail(id), func(ctx context.Context) (types.Envelope[types.Payout], error) {
		return q.svc.Payouts.Get(ctx, id)
	})
}

func (q *Queries) PayoutStats(ctx context.Context) (types.Envelope[types.PayoutStats], error) {
	return cached(ctx, q, PayoutKeys.Stats(), q.svc.Payouts.Stats)
}

func (q *Queries) BroadcastList(ctx context.Context, f *BroadcastFilter) (types.Envelope[[]types.Broadcast], error) {
	return cached(ctx, q, ListKey(BroadcastKeys, f), func(ctx context.Context) (types.Envelope[[]types.Broadcast], error) {
		return q.svc.Broadcasts.List(ctx, f)
	})
}

func (q *Queries) BroadcastDetail(ctx context.Context, id string) (types.Envelope[types.Broadcast], error) {
	return cached(ctx, q, BroadcastKeys.Detail(id), func(ctx context.Context) (types.Envelope[types.Broadcast], error) {
		return q.svc.Broadcasts.Get(ctx, id)
	})
}

func (q *Queries) BroadcastStats(ctx context.Context) (types.Envelope[types.BroadcastStats], error) {
	return cached(ctx, q, BroadcastKeys.Stats(), q.svc.Broadcasts.Stats)
}

func (q *Queries) AdminList(ctx context.Context, f *AdminFilter) (types.Envelope[[]types.Admin], error) {
	return cached(ctx, q, ListKey(AdminKeys, f), func(ctx context.Context) (types.Envelope[[]types.Admin], error) {
		return q.svc.Admins.List(ctx, f)
	})
}

func (q *Queries) AdminDetail(ctx context.Context, id string) (types.Envelope[types.Admin], error) {
	return cached(ctx, q, AdminKeys.Detail(id), func(ctx context.Context) (types.Envelope[types.Admin], error) {
		return q.svc.Admins.Get(ctx, id)
	})
}

// Me returns the signed-in admin's profile.
func (q *Queries) Me(ctx context.Context) (types.Envelope[types.Admin], error) {
	return cached(ctx, q, MeKey(), q.svc.Admins.Me)
}

// Dashboard returns the analytics dashboard.
func (q *Queries) Dashboard(ctx context.Context) (types.Envelope[types.DashboardStats], error) {
	return cached(ctx, q, DashboardKey(), q.svc.Analytics.Dashboard)
}

func (q *Queries) Revenue(ctx context.Context, period string) (types.Envelope[[]types.RevenuePoint], error) {
	return cached(ctx, q, AnalyticsKeys.Op("revenue", period), func(ctx context.Context) (types.Envelope[[]types.RevenuePoint], error) {
		return q.svc.Analytics.Revenue(ctx, period)
	})
}

func (q *Queries) TopBusinesses(ctx context.Context, limit int) (types.Envelope[[]types.TopBusiness], error) {
	return cached(ctx, q, AnalyticsKeys.Op("top-businesses", limit), func(ctx context.Context) (types.Envelope[[]types.TopBusiness], error) {
		return q.svc.Analytics.TopBusinesses(ctx, limit)
	})
}

// watched guards an observer's fetcher. After the backend rejected the
// session it fails with session.ErrNoSession instead of calling out, so
// polling stops hitting the API until the next sign-in.
func watched[T any](q *Queries, fetch query.Fetcher[T]) query.Fetcher[T] {
	return func(ctx context.Context) (T, error) {
		if q.rejected.Load() {
			var zero T
			return zero, session.ErrNoSession
		}
		return fetch(ctx)
	}
}

// WatchDashboard observes the dashboard, polling at the client's dashboard
// interval. A disabled observer does nothing until SetEnabled(true). The
// observer closes when ctx is done.
func (q *Queries) WatchDashboard(ctx context.Context, enabled bool, opts ...query.QueryOption) *query.Observer[types.Envelope[types.DashboardStats]] {
	opts = append([]query.QueryOption{
		query.WithEnabled(enabled),
		query.WithRefetchInterval(q.dashboardInterval),
	}, opts...)
	return query.Observe(ctx, q.cache, DashboardKey(), watched(q, q.svc.Analytics.Dashboard), opts...)
}

// WatchOrders observes a filtered order list. It refetches whenever an
// order mutation invalidates it.
func (q *Queries) WatchOrders(ctx context.Context, f *OrderFilter, opts ...query.QueryOption) *query.Observer[types.Envelope[[]types.Order]] {
	return query.Observe(ctx, q.cache, ListKey(OrderKeys, f), watched(q, func(ctx context.Context) (types.Envelope[[]types.Order], error) {
		return q.svc.Orders.List(ctx, f)
	}), opts...)
}
