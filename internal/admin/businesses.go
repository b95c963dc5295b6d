package admin

import (
	"context"

	"github.com/felixgeelhaar/cleanaid/internal/api"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

// BusinessesPath is the businesses resource root.
const BusinessesPath = "/admin/businesses"

// Businesses manages laundry providers.
type Businesses struct {
	r resource[types.Business]
}

// NewBusinesses creates the businesses module.
func NewBusinesses(c *api.Client) *Businesses {
	return &Businesses{r: resource[types.Business]{c: c, base: BusinessesPath, alias: "businesses"}}
}

// List returns a page of businesses.
func (b *Businesses) List(ctx context.Context, f *BusinessFilter) (types.Envelope[[]types.Business], error) {
	return b.r.list(ctx, f)
}

// Get returns one business.
func (b *Businesses) Get(ctx context.Context, id string) (types.Envelope[types.Business], error) {
	return b.r.get(ctx, id)
}

// Create registers a business on behalf of an owner.
func (b *Businesses) Create(ctx context.Context, in types.BusinessInput) (types.Envelope[types.Business], error) {
	return b.r.create(ctx, in)
}

// Update replaces the editable business fields.
func (b *Businesses) Update(ctx context.Context, id string, in types.BusinessInput) (types.Envelope[types.Business], error) {
	return b.r.update(ctx, id, in)
}

// Delete removes a business.
func (b *Businesses) Delete(ctx context.Context, id string) (types.Envelope[Ack], error) {
	return b.r.delete(ctx, id)
}

// UpdateStatus approves, rejects or suspends a business. Reason is optional.
func (b *Businesses) UpdateStatus(ctx context.Context, id, status, reason string) (types.Envelope[types.Business], error) {
	return b.r.updateStatus(ctx, id, status, reason)
}

// Stats returns the businesses summary.
func (b *Businesses) Stats(ctx context.Context) (types.Envelope[types.BusinessStats], error) {
	return stats[types.BusinessStats](ctx, b.r.c, BusinessesPath)
}
