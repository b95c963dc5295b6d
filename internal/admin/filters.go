package admin

import "time"

// ListFilter holds the parameters every list endpoint accepts.
type ListFilter struct {
	Page      int    `url:"page,omitempty"`
	Limit     int    `url:"limit,omitempty"`
	Search    string `url:"search,omitempty"`
	SortBy    string `url:"sortBy,omitempty"`
	SortOrder string `url:"sortOrder,omitempty"`
}

// DateRange bounds a list by creation date.
type DateRange struct {
	From time.Time `url:"startDate,omitempty" layout:"2006-01-02"`
	To   time.Time `url:"endDate,omitempty" layout:"2006-01-02"`
}

// UserFilter filters the users list.
type UserFilter struct {
	ListFilter
	Status     string `url:"status,omitempty"`
	Role       string `url:"role,omitempty"`
	IsVerified *bool  `url:"isVerified,omitempty"`
}

// BusinessFilter filters the businesses list.
type BusinessFilter struct {
	ListFilter
	Status string `url:"status,omitempty"`
	City   string `url:"city,omitempty"`
}

// OrderFilter filters the orders list.
type OrderFilter struct {
	ListFilter
	DateRange
	Status     string `url:"status,omitempty"`
	BusinessID string `url:"businessId,omitempty"`
	CustomerID string `url:"customerId,omitempty"`
}

// PaymentFilter filters the payments list.
type PaymentFilter struct {
	ListFilter
	DateRange
	Status string `url:"status,omitempty"`
	Method string `url:"method,omitempty"`
}

// PayoutFilter filters the payouts list.
type PayoutFilter struct {
	ListFilter
	DateRange
	Status     string `url:"status,omitempty"`
	BusinessID string `url:"businessId,omitempty"`
}

// BroadcastFilter filters the broadcasts list.
type BroadcastFilter struct {
	ListFilter
	Status   string `url:"status,omitempty"`
	Audience string `url:"audience,omitempty"`
}

// AdminFilter filters the admins list.
type AdminFilter struct {
	ListFilter
	Role   string `url:"role,omitempty"`
	Status string `url:"status,omitempty"`
}

// ExportFilter selects what the analytics export covers.
type ExportFilter struct {
	DateRange
	Report string `url:"report,omitempty"`
	Format string `url:"format,omitempty"`
}
