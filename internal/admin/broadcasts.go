package admin

import (
	"context"
	"io"

	"github.com/felixgeelhaar/cleanaid/internal/api"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

// BroadcastsPath is the broadcasts resource root.
const BroadcastsPath = "/admin/broadcasts"

// BroadcastImageField is the multipart field the image upload uses.
const BroadcastImageField = "image"

// Broadcasts composes and sends audience messages.
type Broadcasts struct {
	r resource[types.Broadcast]
}

// NewBroadcasts creates the broadcasts module.
func NewBroadcasts(c *api.Client) *Broadcasts {
	return &Broadcasts{r: resource[types.Broadcast]{c: c, base: BroadcastsPath, alias: "broadcasts"}}
}

// List returns a page of broadcasts.
func (b *Broadcasts) List(ctx context.Context, f *BroadcastFilter) (types.Envelope[[]types.Broadcast], error) {
	return b.r.list(ctx, f)
}

// Get returns one broadcast.
func (b *Broadcasts) Get(ctx context.Context, id string) (types.Envelope[types.Broadcast], error) {
	return b.r.get(ctx, id)
}

// Create stores a draft, or a scheduled broadcast when ScheduledAt is set.
func (b *Broadcasts) Create(ctx context.Context, in types.BroadcastInput) (types.Envelope[types.Broadcast], error) {
	return b.r.create(ctx, in)
}

// Update edits a broadcast that has not been sent.
func (b *Broadcasts) Update(ctx context.Context, id string, in types.BroadcastInput) (types.Envelope[types.Broadcast], error) {
	return b.r.update(ctx, id, in)
}

// Delete removes a broadcast.
func (b *Broadcasts) Delete(ctx context.Context, id string) (types.Envelope[Ack], error) {
	return b.r.delete(ctx, id)
}

// Send delivers a broadcast immediately.
func (b *Broadcasts) Send(ctx context.Context, id string) (types.Envelope[types.Broadcast], error) {
	return b.r.action(ctx, id, "send", nil)
}

// UploadImage uploads an image and returns its hosted URL for use in ImageURL.
func (b *Broadcasts) UploadImage(ctx context.Context, filename string, r io.Reader) (types.Envelope[types.UploadResult], error) {
	return api.Upload[types.UploadResult](ctx, b.r.c, BroadcastsPath+"/upload-image", BroadcastImageField, filename, r)
}

// Stats returns the broadcasts summary.
func (b *Broadcasts) Stats(ctx context.Context) (types.Envelope[types.BroadcastStats], error) {
	return stats[types.BroadcastStats](ctx, b.r.c, BroadcastsPath)
}
