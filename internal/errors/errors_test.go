package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeEnvelopeInvalid, "test error message")

	if err.Code != ErrCodeEnvelopeInvalid {
		t.Errorf("expected code %s, got %s", ErrCodeEnvelopeInvalid, err.Code)
	}

	if err.Message != "test error message" {
		t.Errorf("expected message 'test error message', got '%s'", err.Message)
	}

	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("underlying error")
	err := Wrap(ErrCodeFileReadFailed, "failed to read file", cause)

	if err.Cause != cause {
		t.Errorf("expected cause to be set")
	}

	if !errors.Is(err, cause) {
		t.Errorf("Wrap should support errors.Is")
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want []string
	}{
		{
			name: "simple error",
			err:  New(ErrCodeConfigInvalid, "bad config"),
			want: []string{"[CONFIG-001] bad config"},
		},
		{
			name: "with request and status",
			err:  NewStatusError("GET", "/admin/users", 404, "user not found", nil),
			want: []string{"[TRANSPORT-005] user not found", "(GET /admin/users -> 404)"},
		},
		{
			name: "network error without status",
			err:  NewNetworkError("POST", "/admin/orders", fmt.Errorf("connection refused")),
			want: []string{"(POST /admin/orders)", "connection refused", "Suggestions:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.want {
				if !strings.Contains(msg, want) {
					t.Errorf("expected %q in %q", want, msg)
				}
			}
		})
	}
}

func TestCodeForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorCode
	}{
		{401, ErrCodeUnauthorized},
		{403, ErrCodeForbidden},
		{404, ErrCodeNotFound},
		{400, ErrCodeBadRequest},
		{422, ErrCodeBadRequest},
		{409, ErrCodeClient},
		{500, ErrCodeServer},
		{503, ErrCodeServer},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			if got := CodeForStatus(tt.status); got != tt.want {
				t.Errorf("CodeForStatus(%d) = %s, want %s", tt.status, got, tt.want)
			}
		})
	}
}

func TestNewStatusError_DefaultMessage(t *testing.T) {
	err := NewStatusError("GET", "/admin/payouts", 503, "", []byte("down"))
	if err.Message != "Service Unavailable" {
		t.Errorf("expected status text message, got %q", err.Message)
	}
	if string(err.Body) != "down" {
		t.Errorf("expected body to be kept, got %q", err.Body)
	}
	if len(err.Suggestions) == 0 {
		t.Error("expected a suggestion for server errors")
	}
}

func TestHelpers(t *testing.T) {
	base := NewStatusError("DELETE", "/admin/users/u1", 401, "expired", nil)
	wrapped := fmt.Errorf("delete user: %w", base)

	if !IsStatus(wrapped, 401) {
		t.Error("IsStatus should see through wrapping")
	}
	if IsStatus(wrapped, 403) {
		t.Error("IsStatus matched the wrong status")
	}
	if CodeOf(wrapped) != ErrCodeUnauthorized {
		t.Errorf("CodeOf = %s", CodeOf(wrapped))
	}
	if !IsCode(wrapped, ErrCodeUnauthorized) {
		t.Error("IsCode should match")
	}
	if CodeOf(fmt.Errorf("plain")) != "" {
		t.Error("plain errors have no code")
	}
	if IsStatus(nil, 401) {
		t.Error("nil error has no status")
	}
}

func TestEnvelopeUnsuccessfulError(t *testing.T) {
	if got := NewEnvelopeUnsuccessfulError("").Message; got == "" {
		t.Error("expected default message")
	}
	if got := NewEnvelopeUnsuccessfulError("nope").Message; got != "nope" {
		t.Errorf("got %q", got)
	}
}
