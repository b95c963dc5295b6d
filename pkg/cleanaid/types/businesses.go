package types

import (
	"encoding/json"
	"time"
)

// Business status values.
const (
	BusinessStatusPending   = "pending"
	BusinessStatusApproved  = "approved"
	BusinessStatusRejected  = "rejected"
	BusinessStatusSuspended = "suspended"
)

// Business is a laundry provider listed on the marketplace.
type Business struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	OwnerID      string    `json:"ownerId,omitempty"`
	OwnerName    string    `json:"ownerName,omitempty"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	City         string    `json:"city,omitempty"`
	Status       string    `json:"status,omitempty"`
	Rating       float64   `json:"rating,omitempty"`
	IsVerified   bool      `json:"isVerified"`
	TotalOrders  int       `json:"totalOrders,omitempty"`
	TotalRevenue float64   `json:"totalRevenue,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UnmarshalJSON accepts the _id, businessName and emailAddress aliases.
func (b *Business) UnmarshalJSON(data []byte) error {
	type plain Business
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	fillString(&p.ID, data, "_id")
	fillString(&p.Name, data, "businessName")
	fillString(&p.Email, data, "emailAddress")
	*b = Business(p)
	return nil
}

// DisplayName returns the business name, falling back to the owner.
func (b Business) DisplayName() string {
	if b.Name != "" {
		return b.Name
	}
	return b.OwnerName
}

// BusinessInput is the body of business create and update calls.
type BusinessInput struct {
	Name    string `json:"name,omitempty"`
	OwnerID string `json:"ownerId,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
}

// BusinessStats is the summary shown on the businesses screen.
type BusinessStats struct {
	TotalBusinesses     int `json:"totalBusinesses"`
	ApprovedBusinesses  int `json:"approvedBusinesses"`
	PendingBusinesses   int `json:"pendingBusinesses"`
	RejectedBusinesses  int `json:"rejectedBusinesses"`
	SuspendedBusinesses int `json:"suspendedBusinesses"`
}
