// Package session stores the signed-in admin's bearer token.
//
// The transport reads the token from a Store on every request and clears the
// store when the API answers 401. The CLI persists the session to disk with
// FileStore; embedded SDK users default to MemoryStore.
package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/felixgeelhaar/cleanaid/internal/errors"
)

// ErrNoSession is returned by Store.Get when nothing usable is stored.
var ErrNoSession error = errors.NewSessionNoneError()

// User is the identity attached to a session.
type User struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
	Role  string `json:"role,omitempty" yaml:"role,omitempty"`
}

// Session is an authenticated admin session.
type Session struct {
	Token string `json:"token" yaml:"token"`
	User  User   `json:"user" yaml:"user"`
	// ExpiresAt is zero for tokens without an exp claim.
	ExpiresAt time.Time `json:"expiresAt,omitempty" yaml:"expires_at,omitempty"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	if s == nil {
		return true
	}
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// usable reports whether s can authenticate a request at now.
func (s *Session) usable(now time.Time) bool {
	return s != nil && s.Token != "" && !s.Expired(now)
}

// Store persists at most one session.
type Store interface {
	// Get returns the current session or ErrNoSession.
	Get(ctx context.Context) (*Session, error)
	// Set replaces the current session.
	Set(ctx context.Context, s *Session) error
	// Clear removes the current session. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// FromToken builds a session from a bearer token, reading identity and
// expiry claims without verifying the signature. The backend verifies.
func FromToken(token string) (*Session, error) {
	if token == "" {
		return nil, errors.New(errors.ErrCodeSessionInvalid, "token is empty")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSessionInvalid, "token is not a JWT", err)
	}

	s := &Session{Token: token}
	s.User.ID = claimString(claims, "sub", "id", "_id", "userId")
	s.User.Email = claimString(claims, "email")
	s.User.Name = claimString(claims, "name", "fullName")
	s.User.Role = claimString(claims, "role")

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.ExpiresAt = exp.Time
	}

	return s, nil
}

func claimString(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		if v, ok := claims[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
