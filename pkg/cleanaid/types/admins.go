package types

import (
	"encoding/json"
	"time"
)

// Admin is an operator account of the dashboard itself.
type Admin struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Status      string     `json:"status,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// UnmarshalJSON accepts the _id, fullName and emailAddress aliases.
func (a *Admin) UnmarshalJSON(data []byte) error {
	type plain Admin
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	fillString(&v.ID, data, "_id")
	fillString(&v.Name, data, "fullName")
	fillString(&v.Email, data, "emailAddress")
	*a = Admin(v)
	return nil
}

// DisplayName returns the best human-readable label for the admin.
func (a Admin) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Email
}

// AdminInput is the body of admin create and update calls.
type AdminInput struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	Password string `json:"password,omitempty"`
}

// Credentials is the body of the admin sign-in call.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResult is the payload of a successful sign-in.
type SignInResult struct {
	Token string `json:"token"`
	Admin Admin  `json:"admin"`
}

// UnmarshalJSON accepts accessToken for token and user for admin.
func (s *SignInResult) UnmarshalJSON(data []byte) error {
	type plain SignInResult
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	fillString(&v.Token, data, "accessToken")
	if v.Admin.ID == "" && v.Admin.Email == "" {
		var alt struct {
			User Admin `json:"user"`
		}
		if err := json.Unmarshal(data, &alt); err == nil {
			v.Admin = alt.User
		}
	}
	*s = SignInResult(v)
	return nil
}
