package types

import (
	"encoding/json"
	"time"
)

// User status values.
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

// User is a marketplace account (customer or business owner).
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Role        string    `json:"role,omitempty"`
	Status      string    `json:"status,omitempty"`
	IsVerified  bool      `json:"isVerified"`
	Avatar      string    `json:"avatar,omitempty"`
	OrdersCount int       `json:"ordersCount,omitempty"`
	TotalSpent  float64   `json:"totalSpent,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UnmarshalJSON accepts the _id, fullName and emailAddress aliases.
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	fillString(&p.ID, data, "_id")
	fillString(&p.Name, data, "fullName")
	fillString(&p.Email, data, "emailAddress")
	*u = User(p)
	return nil
}

// DisplayName returns the best human-readable label for the user.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// UserInput is the body of user create and update calls.
type UserInput struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
	Password string `json:"password,omitempty"`
	Status   string `json:"status,omitempty"`
}

// UserStats is the summary shown on the users screen.
type UserStats struct {
	TotalUsers        int `json:"totalUsers"`
	ActiveUsers       int `json:"activeUsers"`
	InactiveUsers     int `json:"inactiveUsers"`
	SuspendedUsers    int `json:"suspendedUsers"`
	NewUsersThisMonth int `json:"newUsersThisMonth"`
	VerifiedUsers     int `json:"verifiedUsers"`
}
