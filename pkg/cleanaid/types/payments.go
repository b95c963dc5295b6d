package types

import (
	"encoding/json"
	"time"
)

// Payment status values.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Payment is a customer charge for an order.
type Payment struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"orderId,omitempty"`
	UserID         string    `json:"userId,omitempty"`
	BusinessID     string    `json:"businessId,omitempty"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency,omitempty"`
	Method         string    `json:"method,omitempty"`
	Status         string    `json:"status"`
	Reference      string    `json:"reference,omitempty"`
	RefundedAmount float64   `json:"refundedAmount,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// UnmarshalJSON accepts the _id and paymentMethod aliases.
func (p *Payment) UnmarshalJSON(data []byte) error {
	type plain Payment
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	fillString(&v.ID, data, "_id")
	fillString(&v.Method, data, "paymentMethod")
	*p = Payment(v)
	return nil
}

// RefundRequest is the body of a refund. A zero Amount refunds in full.
type RefundRequest struct {
	Amount float64 `json:"amount,omitempty"`
	Reason string  `json:"reason,omitempty"`
}

// PaymentStats is the summary shown on the payments screen.
type PaymentStats struct {
	TotalPayments     int     `json:"totalPayments"`
	TotalAmount       float64 `json:"totalAmount"`
	CompletedPayments int     `json:"completedPayments"`
	PendingPayments   int     `json:"pendingPayments"`
	FailedPayments    int     `json:"failedPayments"`
	RefundedAmount    float64 `json:"refundedAmount"`
}
