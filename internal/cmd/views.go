package cmd

import (
	"strings"

	"github.com/felixgeelhaar/cleanaid/internal/ux"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

var (
	userHeaders = []string{"ID", "NAME", "EMAIL", "ROLE", "STATUS", "VERIFIED", "CREATED"}
	userRow     = func(u types.User) []any {
		return []any{u.ID, u.DisplayName(), u.Email, u.Role, u.Status, u.IsVerified, u.CreatedAt}
	}

	businessHeaders = []string{"ID", "NAME", "OWNER", "CITY", "STATUS", "RATING", "ORDERS"}
	businessRow     = func(b types.Business) []any {
		return []any{b.ID, b.DisplayName(), b.OwnerName, b.City, b.Status, b.Rating, b.TotalOrders}
	}

	orderHeaders = []string{"ID", "NUMBER", "CUSTOMER", "BUSINESS", "STATUS", "PAYMENT", "TOTAL", "CREATED"}
	orderRow     = func(o types.Order) []any {
		return []any{o.ID, o.OrderNumber, o.CustomerName, o.BusinessName, o.Status, o.PaymentStatus, o.TotalAmount, o.CreatedAt}
	}

	paymentHeaders = []string{"ID", "ORDER", "AMOUNT", "CURRENCY", "METHOD", "STATUS", "CREATED"}
	paymentRow     = func(p types.Payment) []any {
		return []any{p.ID, p.OrderID, p.Amount, p.Currency, p.Method, p.Status, p.CreatedAt}
	}

	payoutHeaders = []string{"ID", "BUSINESS", "AMOUNT", "STATUS", "SCHEDULED", "PAID"}
	payoutRow     = func(p types.Payout) []any {
		business := p.BusinessName
		if business == "" {
			business = p.BusinessID
		}
		return []any{p.ID, business, p.Amount, p.Status, p.ScheduledFor, p.PaidAt}
	}

	broadcastHeaders = []string{"ID", "TITLE", "AUDIENCE", "CHANNELS", "STATUS", "RECIPIENTS", "SENT"}
	broadcastRow     = func(b types.Broadcast) []any {
		return []any{b.ID, b.Title, b.Audience, strings.Join(b.Channels, ","), b.Status, b.RecipientsCount, b.SentAt}
	}

	adminHeaders = []string{"ID", "NAME", "EMAIL", "ROLE", "STATUS", "LAST LOGIN"}
	adminRow     = func(a types.Admin) []any {
		return []any{a.ID, a.DisplayName(), a.Email, a.Role, a.Status, a.LastLoginAt}
	}

	revenueHeaders = []string{"PERIOD", "REVENUE", "ORDERS"}
	revenueRow     = func(p types.RevenuePoint) []any {
		return []any{p.Period, p.Revenue, p.Orders}
	}

	topBusinessHeaders = []string{"ID", "NAME", "ORDERS", "REVENUE"}
	topBusinessRow     = func(b types.TopBusiness) []any {
		return []any{b.ID, b.Name, b.Orders, b.Revenue}
	}
)

// dashboardView is the overview printed by the dashboard and watch commands.
type dashboardView struct {
	Dashboard  types.DashboardStats  `json:"dashboard" yaml:"dashboard"`
	Users      *types.UserStats      `json:"users,omitempty" yaml:"users,omitempty"`
	Businesses *types.BusinessStats  `json:"businesses,omitempty" yaml:"businesses,omitempty"`
	Orders     *types.OrderStats     `json:"orders,omitempty" yaml:"orders,omitempty"`
	Payments   *types.PaymentStats   `json:"payments,omitempty" yaml:"payments,omitempty"`
	Payouts    *types.PayoutStats    `json:"payouts,omitempty" yaml:"payouts,omitempty"`
	Broadcasts *types.BroadcastStats `json:"broadcasts,omitempty" yaml:"broadcasts,omitempty"`
}

func (v dashboardView) Table() *ux.Table {
	d := v.Dashboard
	t := ux.NewTable("METRIC", "VALUE")
	t.AddRow("users", d.TotalUsers)
	t.AddRow("businesses", d.TotalBusinesses)
	t.AddRow("pending businesses", d.PendingBusinesses)
	t.AddRow("orders", d.TotalOrders)
	t.AddRow("active orders", d.ActiveOrders)
	t.AddRow("revenue", d.TotalRevenue)
	t.AddRow("pending payouts", d.PendingPayouts)

	if s := v.Users; s != nil {
		t.AddRow("active users", s.ActiveUsers)
		t.AddRow("new users this month", s.NewUsersThisMonth)
	}
	if s := v.Businesses; s != nil {
		t.AddRow("approved businesses", s.ApprovedBusinesses)
	}
	if s := v.Orders; s != nil {
		t.AddRow("completed orders", s.CompletedOrders)
		t.AddRow("cancelled orders", s.CancelledOrders)
	}
	if s := v.Payments; s != nil {
		t.AddRow("failed payments", s.FailedPayments)
		t.AddRow("refunded", s.RefundedAmount)
	}
	if s := v.Payouts; s != nil {
		t.AddRow("payouts pending amount", s.PendingAmount)
		t.AddRow("payouts paid amount", s.PaidAmount)
	}
	if s := v.Broadcasts; s != nil {
		t.AddRow("broadcasts sent", s.SentBroadcasts)
		t.AddRow("broadcasts scheduled", s.ScheduledBroadcasts)
	}
	return t
}
