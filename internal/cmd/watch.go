package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/cleanaid/internal/metrics"
	"github.com/felixgeelhaar/cleanaid/internal/query"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the dashboard and print each refresh",
	Long: `Watch keeps a live dashboard query open and prints every successful
refresh. The cadence defaults to cache.dashboard_interval.

With --metrics-addr the client's request and cache metrics are served in
Prometheus format at /metrics while watching.`,
	Example: `  cleanaid watch --interval 30s
  cleanaid watch --count 3 -o json
  cleanaid watch --metrics-addr 127.0.0.1:9464`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	interval, _ := cmd.Flags().GetDuration("interval")
	count, _ := cmd.Flags().GetInt("count")
	addr, _ := cmd.Flags().GetString("metrics-addr")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if addr != "" {
		reg, m := metrics.NewRegistry()
		cc.Metrics = m
		stop, err := serveMetrics(ctx, cc, addr, metrics.HandlerFor(reg))
		if err != nil {
			return err
		}
		defer stop()
	}

	c, err := cc.Client()
	if err != nil {
		return err
	}

	var opts []query.QueryOption
	if interval > 0 {
		opts = append(opts, query.WithRefetchInterval(interval))
	}
	obs := c.Queries().WatchDashboard(ctx, true, opts...)
	defer obs.Close()

	var (
		printed int
		last    time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case res, ok := <-obs.Updates():
			if !ok {
				return nil
			}
			if res.Fetching || !res.HasData && res.Err == nil {
				continue
			}
			if res.Err != nil {
				// Polling continues; only a rejected session ends the watch.
				cc.Logger.WithError(res.Err).WarnContext(ctx, "dashboard refresh failed")
				if _, serr := c.Session(ctx); serr != nil {
					return res.Err
				}
				continue
			}
			if !res.FetchedAt.After(last) {
				continue
			}
			last = res.FetchedAt
			if !res.Data.OK() {
				cc.Logger.WarnContext(ctx, "dashboard refresh unsuccessful", "message", res.Data.Message)
				continue
			}
			if cc.Format == "" || cc.Format == "text" {
				fmt.Fprintf(cc.Out, "# %s\n", res.FetchedAt.Local().Format(time.DateTime))
			}
			if err := cc.Print(dashboardView{Dashboard: res.Data.Data}); err != nil {
				return err
			}
			printed++
			if count > 0 && printed >= count {
				return nil
			}
		}
	}
}

// serveMetrics listens on addr and serves h at /metrics until ctx ends.
func serveMetrics(ctx context.Context, cc *CommandContext, addr string, h http.Handler) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			cc.Logger.WithError(err).ErrorContext(ctx, "metrics server stopped")
		}
	}()
	cc.Logger.InfoContext(ctx, "serving metrics", "addr", ln.Addr().String())

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}, nil
}

func init() {
	watchCmd.Flags().Duration("interval", 0, "refresh interval (default cache.dashboard_interval)")
	watchCmd.Flags().Int("count", 0, "stop after this many refreshes (0 runs until interrupted)")
	watchCmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address")

	rootCmd.AddCommand(watchCmd)
}
