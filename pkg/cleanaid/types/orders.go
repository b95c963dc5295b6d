package types

import (
	"encoding/json"
	"time"
)

// Order status values, in lifecycle order. Transitions are enforced by the API.
const (
	OrderStatusPending    = "pending"
	OrderStatusAccepted   = "accepted"
	OrderStatusPickedUp   = "picked_up"
	OrderStatusInProgress = "in_progress"
	OrderStatusReady      = "ready"
	OrderStatusDelivered  = "delivered"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// OrderItem is one service line of an order.
type OrderItem struct {
	Service   string  `json:"service"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Total     float64 `json:"total"`
}

// Order is a laundry order placed by a customer with a business.
type Order struct {
	ID            string      `json:"id"`
	OrderNumber   string      `json:"orderNumber,omitempty"`
	CustomerID    string      `json:"customerId,omitempty"`
	CustomerName  string      `json:"customerName,omitempty"`
	BusinessID    string      `json:"businessId,omitempty"`
	BusinessName  string      `json:"businessName,omitempty"`
	Items         []OrderItem `json:"items,omitempty"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"paymentStatus,omitempty"`
	TotalAmount   float64     `json:"totalAmount"`
	DeliveryFee   float64     `json:"deliveryFee,omitempty"`
	PickupDate    *time.Time  `json:"pickupDate,omitempty"`
	DeliveryDate  *time.Time  `json:"deliveryDate,omitempty"`
	Address       string      `json:"address,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// UnmarshalJSON accepts the _id alias.
func (o *Order) UnmarshalJSON(data []byte) error {
	type plain Order
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	fillString(&p.ID, data, "_id")
	*o = Order(p)
	return nil
}

// OrderStats is the summary shown on the orders screen.
type OrderStats struct {
	TotalOrders      int     `json:"totalOrders"`
	PendingOrders    int     `json:"pendingOrders"`
	InProgressOrders int     `json:"inProgressOrders"`
	CompletedOrders  int     `json:"completedOrders"`
	CancelledOrders  int     `json:"cancelledOrders"`
	TotalRevenue     float64 `json:"totalRevenue"`
}

// CancelRequest is the body of an order cancellation.
type CancelRequest struct {
	Reason string `json:"reason,omitempty"`
}
