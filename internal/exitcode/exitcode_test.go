package exitcode

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/felixgeelhaar/cleanaid/internal/errors"
)

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"Success", Success, 0},
		{"GeneralError", GeneralError, 1},
		{"UsageError", UsageError, 2},
		{"ConfigError", ConfigError, 3},
		{"NotFound", NotFound, 4},
		{"AuthError", AuthError, 5},
		{"NetworkError", NetworkError, 6},
		{"ServerError", ServerError, 7},
		{"Interrupted", Interrupted, 130},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.code)
		})
	}
}

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error returns success", nil, Success},
		{"unauthorized", errors.NewStatusError("GET", "/admin/me", 401, "", nil), AuthError},
		{"forbidden", errors.NewStatusError("GET", "/admin/admins", 403, "", nil), AuthError},
		{"no session", errors.NewSessionNoneError(), AuthError},
		{"network", errors.NewNetworkError("GET", "/x", stderrors.New("refused")), NetworkError},
		{"timeout", errors.New(errors.ErrCodeTimeout, "slow"), NetworkError},
		{"not found", errors.NewStatusError("GET", "/admin/users/x", 404, "", nil), NotFound},
		{"config", errors.New(errors.ErrCodeConfigMissing, "no url"), ConfigError},
		{"server", errors.NewStatusError("GET", "/x", 502, "", nil), ServerError},
		{"bad request", errors.NewStatusError("PATCH", "/x", 400, "", nil), UsageError},
		{"other coded", errors.New(errors.ErrCodeFileWriteFailed, "disk"), GeneralError},
		{"wrapped coded", fmt.Errorf("listing users: %w", errors.NewSessionNoneError()), AuthError},
		{"cobra unknown command", stderrors.New(`unknown command "x" for "cleanaid"`), UsageError},
		{"cobra required flag", stderrors.New(`required flag(s) "email" not set`), UsageError},
		{"cobra args", stderrors.New("accepts 1 arg(s), received 0"), UsageError},
		{"plain", stderrors.New("something broke"), GeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetermineExitCode(tt.err))
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	assert.Equal(t, "Success", GetExitCodeDescription(Success))
	assert.Equal(t, "Authentication error", GetExitCodeDescription(AuthError))
	assert.Equal(t, "Network error", GetExitCodeDescription(NetworkError))
	assert.Equal(t, "Unknown error", GetExitCodeDescription(99))
}
