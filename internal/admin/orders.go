package admin

import (
	"context"

	"github.com/felixgeelhaar/cleanaid/internal/api"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

// OrdersPath is the orders resource root.
const OrdersPath = "/admin/orders"

// Orders reads orders and drives their status. The API enforces the lifecycle.
type Orders struct {
	r resource[types.Order]
}

func NewOrders(c *api.Client) *Orders {
	return &Orders{r: resource[types.Order]{c: c, base: OrdersPath, alias: "orders"}}
}

func (o *Orders) List(ctx context.Context, f *OrderFilter) (types.Envelope[[]types.Order], error) {
	return o.r.list(ctx, f)
}

func (o *Orders) Get(ctx context.Context, id string) (types.Envelope[types.Order], error) {
	return o.r.get(ctx, id)
}

func (o *Orders) UpdateStatus(ctx context.Context, id, status string) (types.Envelope[types.Order], error) {
	return o.r.updateStatus(ctx, id, status, "")
}

// Cancel posts to /admin/orders/<id>/cancel.
func (o *Orders) Cancel(ctx context.Context, id, reason string) (types.Envelope[types.Order], error) {
	return o.r.action(ctx, id, "cancel", types.CancelRequest{Reason: reason})
}

func (o *Orders) Stats(ctx context.Context) (types.Envelope[types.OrderStats], error) {
	return stats[types.OrderStats](ctx, o.r.c, OrdersPath)
}
