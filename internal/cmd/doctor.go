package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/cleanaid/internal/admin"
	"github.com/felixgeelhaar/cleanaid/internal/api"
	"github.com/felixgeelhaar/cleanaid/internal/health"
	"github.com/felixgeelhaar/cleanaid/internal/transport"
	"github.com/felixgeelhaar/cleanaid/internal/ux"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration, session and API connectivity",
	Long: `Doctor checks that an API URL is configured, that a session is stored,
and that the API accepts it. The probe never clears the stored session.
The command fails when any check is unhealthy.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

type doctorView struct {
	Status  health.Status   `json:"status" yaml:"status"`
	Reports []health.Report `json:"checks" yaml:"checks"`
}

func (v doctorView) Table() *ux.Table {
	t := ux.NewTable("CHECK", "STATUS", "MESSAGE", "LATENCY")
	for _, r := range v.Reports {
		t.AddRow(r.Name, r.Status.String(), r.Message, r.Latency.Round(time.Millisecond).String())
	}
	t.Footer = "overall: " + v.Status.String()
	return t
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	store, err := cc.Sessions()
	if err != nil {
		return err
	}

	m := health.NewManager(cc.Config.API.Timeout).Add(
		health.APIURLChecker(cc.Config.API.URL),
		health.SessionChecker(store, nil),
	)
	if cc.Config.RequireAPI() == nil {
		c, err := cc.Client()
		if err != nil {
			return err
		}
		m.Add(health.APIChecker(func(ctx context.Context) error {
			// Marked as retried so a 401 is reported instead of ending the session.
			_, err := api.Require(api.Get[types.Admin](ctx, c.API(), admin.MePath, nil,
				api.WithRetries(transport.MaxAuthRetries)))
			return err
		}))
	}

	reports := m.Check(cmd.Context())
	view := doctorView{Status: health.Overall(reports), Reports: reports}
	if err := cc.Print(view); err != nil {
		return err
	}
	if view.Status == health.StatusUnhealthy {
		return fmt.Errorf("doctor: environment is unhealthy")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
