package health

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/felixgeelhaar/cleanaid/internal/errors"
	"github.com/felixgeelhaar/cleanaid/internal/session"
)

// APIURLChecker reports whether an API root is configured.
func APIURLChecker(url string) Checker {
	return CheckerFunc("api-url", func(context.Context) *Result {
		if strings.TrimSpace(url) == "" {
			return Unhealthy("no API URL configured")
		}
		return Healthy("API URL configured").WithDetail("url", url)
	})
}

// SessionChecker reports whether a usable session is stored. No session is
// degraded: read commands fail until 'cleanaid login'.
func SessionChecker(store session.Store, now func() time.Time) Checker {
	if now == nil {
		now = time.Now
	}
	return CheckerFunc("session", func(ctx context.Context) *Result {
		s, err := store.Get(ctx)
		if err != nil {
			if errors.IsCode(err, errors.ErrCodeSessionNone) {
				return Degraded("not signed in")
			}
			return Unhealthy("session unreadable").WithDetail("error", err.Error())
		}

		r := Healthy("signed in")
		if s.User.Email != "" {
			r.WithDetail("email", s.User.Email)
		}
		if !s.ExpiresAt.IsZero() {
			r.WithDetail("expires_in", s.ExpiresAt.Sub(now()).Round(time.Second).String())
		}
		return r
	})
}

// APIChecker calls ping, expected to be an authenticated request that does
// not trigger the login redirect, and classifies the outcome.
func APIChecker(ping func(ctx context.Context) error) Checker {
	return CheckerFunc("api-reachable", func(ctx context.Context) *Result {
		err := ping(ctx)
		switch {
		case err == nil:
			return Healthy("API accepted the session")
		case errors.IsStatus(err, http.StatusUnauthorized), errors.IsStatus(err, http.StatusForbidden):
			return Degraded("API reachable but rejected the session").WithDetail("error", err.Error())
		default:
			return Unhealthy("API request failed").WithDetail("error", err.Error())
		}
	})
}
