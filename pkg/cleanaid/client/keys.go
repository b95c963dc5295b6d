package client

import (
	"github.com/felixgeelhaar/cleanaid/internal/api"
	"github.com/felixgeelhaar/cleanaid/internal/query"
)

// Key factories, one per resource namespace. Every cached read is stored
// under one of these; mutations invalidate by the same prefixes.
var (
	UserKeys      = query.Keys("users")
	BusinessKeys  = query.Keys("businesses")
	OrderKeys     = query.Keys("orders")
	PaymentKeys   = query.Keys("payments")
	PayoutKeys    = query.Keys("payouts")
	BroadcastKeys = query.Keys("broadcasts")
	AnalyticsKeys = query.Keys("analytics")
	AdminKeys     = query.Keys("admins")
)

// DashboardKey is the key of the analytics dashboard.
func DashboardKey() Key { return AnalyticsKeys.Op("dashboard") }

// MeKey is the key of the signed-in admin's profile.
func MeKey() Key { return AdminKeys.Op("me") }

// ListKey is the key of a filtered list in ns. It is built from the query
// string the filter encodes to, so filters that send the same request share
// one entry: nil, an empty filter and a filter of zero values are the same.
func ListKey(ns query.KeyFactory, filter any) Key {
	values, err := api.EncodeQuery(filter)
	if err != nil {
		return ns.List(filter)
	}
	return ns.List(values.Encode())
}

// scoped returns ns.All, ns.Detail(id) when id is set, and extra.
func scoped(ns query.KeyFactory, id string, extra ...Key) []Key {
	keys := []Key{ns.All()}
	if id != "" {
		keys = append(keys, ns.Detail(id))
	}
	return append(keys, extra...)
}
