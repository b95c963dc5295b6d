package admin

import (
	"context"

	"github.com/felixgeelhaar/cleanaid/internal/api"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

// PaymentsPath is the payments resource root.
const PaymentsPath = "/admin/payments"

// Payments reads customer charges and issues refunds.
type Payments struct {
	r resource[types.Payment]
}

// NewPayments creates the payments module.
func NewPayments(c *api.Client) *Payments {
	return &Payments{r: resource[types.Payment]{c: c, base: PaymentsPath, alias: "payments"}}
}

// List returns a page of payments.
func (p *Payments) List(ctx context.Context, f *PaymentFilter) (types.Envelope[[]types.Payment], error) {
	return p.r.list(ctx, f)
}

// Get returns one payment.
func (p *Payments) Get(ctx context.Context, id string) (types.Envelope[types.Payment], error) {
	return p.r.get(ctx, id)
}

// Refund refunds a payment. A zero amount refunds in full.
func (p *Payments) Refund(ctx context.Context, id string, req types.RefundRequest) (types.Envelope[types.Payment], error) {
	return p.r.action(ctx, id, "refund", req)
}

// Stats returns the payments summary.
func (p *Payments) Stats(ctx context.Context) (types.Envelope[types.PaymentStats], error) {
	return stats[types.PaymentStats](ctx, p.r.c, PaymentsPath)
}
