package client

import (
	"context"
	"io"
	"time"

	"github.com/felixgeelhaar/cleanaid/internal/admin"
	"github.com/felixgeelhaar/cleanaid/internal/log"
	"github.com/felixgeelhaar/cleanaid/internal/query"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

// Mutations are the writes. After a successful envelope each one marks the
// reads it affects stale; observed reads refetch at once.
type Mutations struct {
	svc    *admin.Service
	cache  *query.Cache
	logger *log.Logger
}

// mutate runs call for the record id and, when the server reports success,
// invalidates keys(id). An envelope with success=false invalidates nothing.
func mutate[R any](ctx context.Context, m *Mutations, name, id string,
	call func(ctx context.Context) (types.Envelope[R], error),
	keys func(id string) []Key,
) (types.Envelope[R], error) {
	start := time.Now()
	mut := query.NewMutation(m.cache,
		func(ctx context.Context, _ string) (types.Envelope[R], error) { return call(ctx) },
		query.MutationOptions[string, types.Envelope[R]]{
			Invalidates: func(id string, env types.Envelope[R]) []Key {
				if !env.OK() || keys == nil {
					return nil
				}
				return keys(id)
			},
			OnError: func(ctx context.Context, id string, err error) {
				m.logger.WithError(err).Warn("mutation failed", "mutation", name, "id", id)
			},
		})

	env, invalidated, err := mut.Execute(ctx, id)
	if err == nil {
		m.logger.Debug("mutation settled",
			"mutation", name,
			"id", id,
			"success", env.OK(),
			"invalidated", len(invalidated),
			"elapsed", time.Since(start))
	}
	return env, err
}

func userKeys(id string) []Key      { return scoped(UserKeys, id, AnalyticsKeys.All()) }
func businessKeys(id string) []Key  { return scoped(BusinessKeys, id, AnalyticsKeys.All()) }
func orderKeys(id string) []Key     { return scoped(OrderKeys, id, AnalyticsKeys.All()) }
func paymentKeys(id string) []Key   { return scoped(PaymentKeys, id, OrderKeys.All(), AnalyticsKeys.All()) }
func payoutKeys(id string) []Key    { return scoped(PayoutKeys, id, AnalyticsKeys.All()) }
func broadcastKeys(id string) []Key { return scoped(BroadcastKeys, id) }
func adminKeys(id string) []Key     { return scoped(AdminKeys, id) }

func (m *Mutations) CreateUser(ctx context.Context, in types.UserInput) (types.Envelope[types.User], error) {
	return mutate(ctx, m, "users.create", "", func(ctx context.Context) (types.Envelope[types.User], error) {
		return m.svc.Users.Create(ctx, in)
	}, userKeys)
}

func (m *Mutations) UpdateUser(ctx context.Context, id string, in types.UserInput) (types.Envelope[types.User], error) {
	return mutate(ctx, m, "users.update", id, func(ctx context.Context) (types.Envelope[types.User], error) {
		return m.svc.Users.Update(ctx, id, in)
	}, userKeys)
}

func (m *Mutations) UpdateUserStatus(ctx context.Context, id, status string) (types.Envelope[types.User], error) {
	return mutate(ctx, m, "users.status", id, func(ctx context.Context) (types.Envelope[types.User], error) {
		return m.svc.Users.UpdateStatus(ctx, id, status)
	}, userKeys)
}

func (m *Mutations) DeleteUser(ctx context.Context, id string) (types.Envelope[admin.Ack], error) {
	return mutate(ctx, m, "users.delete", id, func(ctx context.Context) (types.Envelope[admin.Ack], error) {
		return m.svc.Users.Delete(ctx, id)
	}, userKeys)
}

func (m *Mutations) CreateBusiness(ctx context.Context, in types.BusinessInput) (types.Envelope[types.Business], error) {
	return mutate(ctx, m, "businesses.create", "", func(ctx context.Context) (types.Envelope[types.Business], error) {
		return m.svc.Businesses.Create(ctx, in)
	}, businessKeys)
}

func (m *Mutations) UpdateBusiness(ctx context.Context, id string, in types.BusinessInput) (types.Envelope[types.Business], error) {
	return mutate(ctx, m, "businesses.update", id, func(ctx context.Context) (types.Envelope[types.Business], error) {
		return m.svc.Businesses.Update(ctx, id, in)
	}, businessKeys)
}

// UpdateBusinessStatus approves, rejects or suspends a business. The list,
// the detail and the dashboard go stale.
func (m *Mutations) UpdateBusinessStatus(ctx context.Context, id, status, reason string) (types.Envelope[types.Business], error) {
	return mutate(ctx, m, "businesses.status", id, func(ctx context.Context) (types.Envelope[types.Business], error) {
		return m.svc.Businesses.UpdateStatus(ctx, id, status, reason)
	}, businessKeys)
}

func (m *Mutations) DeleteBusiness(ctx context.Context, id string) (types.Envelope[admin.Ack], error) {
	return mutate(ctx, m, "businesses.delete", id, func(ctx context.Context) (types.Envelope[admin.Ack], error) {
		return m.svc.Businesses.Delete(ctx, id)
	}, businessKeys)
}

func (m *Mutations) UpdateOrderStatus(ctx context.Context, id, status string) (types.Envelope[types.Order], error) {
	return mutate(ctx, m, "orders.status", id, func(ctx context.Context) (types.Envelope[types.Order], error) {
		return m.svc.Orders.UpdateStatus(ctx, id, status)
	}, orderKeys)
}

func (m *Mutations) CancelOrder(ctx context.Context, id, reason string) (types.Envelope[types.Order], error) {
	return mutate(ctx, m, "orders.cancel", id, func(ctx context.Context) (types.Envelope[types.Order], error) {
		return m.svc.Orders.Cancel(ctx, id, reason)
	}, orderKeys)
}

// RefundPayment refunds a payment. Orders go stale too since the order
// carries the payment state.
func (m *Mutations) RefundPayment(ctx context.Context, id string, req types.RefundRequest) (types.Envelope[types.Payment], error) {
	return mutate(ctx, m, "payments.refund", id, func(ctx context.Context) (types.Envelope[types.Payment], error) {
		return m.svc.Payments.Refund(ctx, id, req)
	}, paymentKeys)
}

func (m *Mutations) UpdatePayoutStatus(ctx context.Context, id, status string) (types.Envelope[types.Payout], error) {
	return mutate(ctx, m, "payouts.status", id, func(ctx context.Context) (types.Envelope[types.Payout], error) {
		return m.svc.Payouts.UpdateStatus(ctx, id, status)
	}, payoutKeys)
}

func (m *Mutations) ProcessPayout(ctx context.Context, id string) (types.Envelope[types.Payout], error) {
	return mutate(ctx, m, "payouts.process", id, func(ctx context.Context) (types.Envelope[types.Payout], error) {
		return m.svc.Payouts.Process(ctx, id)
	}, payoutKeys)
}

func (m *Mutations) CreateBroadcast(ctx context.Context, in types.BroadcastInput) (types.Envelope[types.Broadcast], error) {
	return mutate(ctx, m, "broadcasts.create", "", func(ctx context.Context) (types.Envelope[types.Broadcast], error) {
		return m.svc.Broadcasts.Create(ctx, in)
	}, broadcastKeys)
}

func (m *Mutations) UpdateBroadcast(ctx context.Context, id string, in types.BroadcastInput) (types.Envelope[types.Broadcast], error) {
	return mutate(ctx, m, "broadcasts.update", id, func(ctx context.Context) (types.Envelope[types.Broadcast], error) {
		return m.svc.Broadcasts.Update(ctx, id, in)
	}, broadcastKeys)
}

func (m *Mutations) SendBroadcast(ctx context.Context, id string) (types.Envelope[types.Broadcast], error) {
	return mutate(ctx, m, "broadcasts.send", id, func(ctx context.Context) (types.Envelope[types.Broadcast], error) {
		return m.svc.Broadcasts.Send(ctx, id)
	}, broadcastKeys)
}

func (m *Mutations) DeleteBroadcast(ctx context.Context, id string) (types.Envelope[admin.Ack], error) {
	return mutate(ctx, m, "broadcasts.delete", id, func(ctx context.Context) (types.Envelope[admin.Ack], error) {
		return m.svc.Broadcasts.Delete(ctx, id)
	}, broadcastKeys)
}

// UploadBroadcastImage stores an image for a later broadcast. No read
// depends on it, so nothing is invalidated.
func (m *Mutations) UploadBroadcastImage(ctx context.Context, filename string, r io.Reader) (types.Envelope[types.UploadResult], error) {
	return mutate(ctx, m, "broadcasts.upload-image", "", func(ctx context.Context) (types.Envelope[types.UploadResult], error) {
		return m.svc.Broadcasts.UploadImage(ctx, filename, r)
	}, nil)
}

func (m *Mutations) CreateAdmin(ctx context.Context, in types.AdminInput) (types.Envelope[types.Admin], error) {
	return mutate(ctx, m, "admins.create", "", func(ctx context.Context) (types.Envelope[types.Admin], error) {
		return m.svc.Admins.Create(ctx, in)
	}, adminKeys)
}

func (m *Mutations) UpdateAdmin(ctx context.Context, id string, in types.AdminInput) (types.Envelope[types.Admin], error) {
	return mutate(ctx, m, "admins.update", id, func(ctx context.Context) (types.Envelope[types.Admin], error) {
		return m.svc.Admins.Update(ctx, id, in)
	}, adminKeys)
}

func (m *Mutations) UpdateAdminStatus(ctx context.Context, id, status string) (types.Envelope[types.Admin], error) {
	return mutate(ctx, m, "admins.status", id, func(ctx context.Context) (types.Envelope[types.Admin], error) {
		return m.svc.Admins.UpdateStatus(ctx, id, status)
	}, adminKeys)
}

func (m *Mutations) DeleteAdmin(ctx context.Context, id string) (types.Envelope[admin.Ack], error) {
	return mutate(ctx, m, "admins.delete", id, func(ctx context.Context) (types.Envelope[admin.Ack], error) {
		return m.svc.Admins.Delete(ctx, id)
	}, adminKeys)
}
