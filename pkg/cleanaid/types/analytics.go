package types

// DashboardStats is the headline metrics block of the dashboard.
type DashboardStats struct {
	TotalUsers        int     `json:"totalUsers"`
	TotalBusinesses   int     `json:"totalBusinesses"`
	TotalOrders       int     `json:"totalOrders"`
	TotalRevenue      float64 `json:"totalRevenue"`
	ActiveOrders      int     `json:"activeOrders"`
	PendingBusinesses int     `json:"pendingBusinesses"`
	PendingPayouts    int     `json:"pendingPayouts"`
	RecentOrders      []Order `json:"recentOrders,omitempty"`
}

// RevenuePoint is one bucket of the revenue series.
type RevenuePoint struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// TopBusiness is one row of the top-businesses ranking.
type TopBusiness struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}
