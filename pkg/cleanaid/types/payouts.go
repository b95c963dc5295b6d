package types

import (
	"encoding/json"
	"time"
)

// Payout status values.
const (
	PayoutStatusPending    = "pending"
	PayoutStatusProcessing = "processing"
	PayoutStatusPaid       = "paid"
	PayoutStatusFailed     = "failed"
	PayoutStatusOnHold     = "on_hold"
)

// Payout is a settlement owed to a business.
type Payout struct {
	ID           string     `json:"id"`
	BusinessID   string     `json:"businessId"`
	BusinessName string     `json:"businessName,omitempty"`
	Amount       float64    `json:"amount"`
	Currency     string     `json:"currency,omitempty"`
	Status       string     `json:"status"`
	PeriodStart  *time.Time `json:"periodStart,omitempty"`
	PeriodEnd    *time.Time `json:"periodEnd,omitempty"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
	PaidAt       *time.Time `json:"paidAt,omitempty"`
	Reference    string     `json:"reference,omitempty"`
	BankAccount  string     `json:"bankAccount,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// UnmarshalJSON accepts the _id alias.
func (p *Payout) UnmarshalJSON(data []byte) error {
	type plain Payout
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	fillString(&v.ID, data, "_id")
	*p = Payout(v)
	return nil
}

// PayoutStats is the summary shown on the payouts screen.
type PayoutStats struct {
	TotalPayouts      int     `json:"totalPayouts"`
	PendingPayouts    int     `json:"pendingPayouts"`
	ProcessingPayouts int     `json:"processingPayouts"`
	PaidPayouts       int     `json:"paidPayouts"`
	PendingAmount     float64 `json:"pendingAmount"`
	PaidAmount        float64 `json:"paidAmount"`
}
