package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/felixgeelhaar/cleanaid/internal/api"
	"github.com/felixgeelhaar/cleanaid/internal/log"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/client"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the marketplace overview",
	Long: `Show the dashboard counters together with the per-resource stats.
The requests run concurrently; a failing stats request only drops its rows.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			view, err := loadDashboard(ctx, c, cc.Logger)
			if err != nil {
				return err
			}
			return cc.Print(view)
		})
	},
}

// loadDashboard fetches the dashboard and every stats query concurrently.
func loadDashboard(ctx context.Context, c *client.Client, logger *log.Logger) (dashboardView, error) {
	q := c.Queries()
	var view dashboardView

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := api.Require(q.Dashboard(ctx))
		view.Dashboard = d
		return err
	})
	optional(ctx, g, logger, "users", &view.Users, q.UserStats)
	optional(ctx, g, logger, "businesses", &view.Businesses, q.BusinessStats)
	optional(ctx, g, logger, "orders", &view.Orders, q.OrderStats)
	optional(ctx, g, logger, "payments", &view.Payments, q.PaymentStats)
	optional(ctx, g, logger, "payouts", &view.Payouts, q.PayoutStats)
	optional(ctx, g, logger, "broadcasts", &view.Broadcasts, q.BroadcastStats)

	return view, g.Wait()
}

// optional runs fetch in g and stores its data in dst. Failures are logged
// and leave dst nil.
func optional[T any](ctx context.Context, g *errgroup.Group, logger *log.Logger, name string, dst **T,
	fetch func(context.Context) (types.Envelope[T], error)) {
	g.Go(func() error {
		data, err := api.Require(fetch(ctx))
		if err != nil {
			if ctx.Err() == nil {
				logger.WithError(err).WarnContext(ctx, "stats unavailable", "resource", name)
			}
			return nil
		}
		*dst = &data
		return nil
	})
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
