package admin

import (
	"context"

	"github.com/felixgeelhaar/cleanaid/internal/api"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

// PayoutsPath is the payouts resource root.
const PayoutsPath = "/admin/payouts"

// Payouts manages settlements owed to businesses.
type Payouts struct {
	r resource[types.Payout]
}

// NewPayouts creates the payouts module.
func NewPayouts(c *api.Client) *Payouts {
	return &Payouts{r: resource[types.Payout]{c: c, base: PayoutsPath, alias: "payouts"}}
}

func (p *Payouts) List(ctx context.Context, f *PayoutFilter) (types.Envelope[[]types.Payout], error) {
	return p.r.list(ctx, f)
}

func (p *Payouts) Get(ctx context.Context, id string) (types.Envelope[types.Payout], error) {
	return p.r.get(ctx, id)
}

// UpdateStatus moves a payout to status, for example on_hold.
func (p *Payouts) UpdateStatus(ctx context.Context, id, status string) (types.Envelope[types.Payout], error) {
	return p.r.updateStatus(ctx, id, status, "")
}

// Process asks the API to pay out now. Scheduling rules stay server-side.
func (p *Payouts) Process(ctx context.Context, id string) (types.Envelope[types.Payout], error) {
	return p.r.action(ctx, id, "process", nil)
}

func (p *Payouts) Stats(ctx context.Context) (types.Envelope[types.PayoutStats], error) {
	return stats[types.PayoutStats](ctx, p.r.c, PayoutsPath)
}
