package admin

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/felixgeelhaar/cleanaid/internal/api"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

// AnalyticsPath is the analytics resource root.
const AnalyticsPath = "/admin/analytics"

// Revenue periods the API understands. Others are passed through as given.
const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// Analytics reads dashboard metrics.
type Analytics struct {
	c *api.Client
}

// NewAnalytics creates the analytics module.
func NewAnalytics(c *api.Client) *Analytics {
	return &Analytics{c: c}
}

// Dashboard returns the headline metrics.
func (a *Analytics) Dashboard(ctx context.Context) (types.Envelope[types.DashboardStats], error) {
	return api.Get[types.DashboardStats](ctx, a.c, AnalyticsPath+"/dashboard", nil)
}

// Revenue returns the revenue series bucketed by period. An empty period
// lets the server pick.
func (a *Analytics) Revenue(ctx context.Context, period string) (types.Envelope[[]types.RevenuePoint], error) {
	var q url.Values
	if period != "" {
		q = url.Values{"period": {period}}
	}
	return api.Get[[]types.RevenuePoint](ctx, a.c, AnalyticsPath+"/revenue", q)
}

// TopBusinesses returns the highest-earning businesses. A limit of 0 uses
// the server default.
func (a *Analytics) TopBusinesses(ctx context.Context, limit int) (types.Envelope[[]types.TopBusiness], error) {
	var q url.Values
	if limit > 0 {
		q = url.Values{"limit": {strconv.Itoa(limit)}}
	}
	return api.Get[[]types.TopBusiness](ctx, a.c, AnalyticsPath+"/top-businesses", q)
}

// Export streams a report to w and returns the byte count and the
// server-suggested filename.
func (a *Analytics) Export(ctx context.Context, w io.Writer, f *ExportFilter) (int64, string, error) {
	q, err := api.EncodeQuery(f)
	if err != nil {
		return 0, "", err
	}
	return api.Download(ctx, a.c, AnalyticsPath+"/export", w, api.WithQuery(q))
}
