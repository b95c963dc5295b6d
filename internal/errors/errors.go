package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Transport errors (TRANSPORT-001 to TRANSPORT-099)
	ErrCodeNetwork       ErrorCode = "TRANSPORT-001"
	ErrCodeTimeout       ErrorCode = "TRANSPORT-002"
	ErrCodeUnauthorized  ErrorCode = "TRANSPORT-003"
	ErrCodeForbidden     ErrorCode = "TRANSPORT-004"
	ErrCodeNotFound      ErrorCode = "TRANSPORT-005"
	ErrCodeServer        ErrorCode = "TRANSPORT-006"
	ErrCodeClient        ErrorCode = "TRANSPORT-007"
	ErrCodeRateLimitWait ErrorCode = "TRANSPORT-008"
	ErrCodeBadRequest    ErrorCode = "TRANSPORT-009"

	// Envelope errors (ENVELOPE-001 to ENVELOPE-099)
	ErrCodeEnvelopeInvalid      ErrorCode = "ENVELOPE-001"
	ErrCodeEnvelopeUnsuccessful ErrorCode = "ENVELOPE-002"

	// Cache errors (CACHE-001 to CACHE-099)
	ErrCodeFetchFailed  ErrorCode = "CACHE-001"
	ErrCodeTypeMismatch ErrorCode = "CACHE-002"

	// Session errors (SESSION-001 to SESSION-099)
	ErrCodeSessionNone    ErrorCode = "SESSION-001"
	ErrCodeSessionInvalid ErrorCode = "SESSION-002"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigInvalid ErrorCode = "CONFIG-001"
	ErrCodeConfigMissing ErrorCode = "CONFIG-002"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileReadFailed  ErrorCode = "IO-001"
	ErrCodeFileWriteFailed ErrorCode = "IO-002"
	ErrCodeFileUnmarshal   ErrorCode = "IO-003"
)

// Error is a coded error carrying the HTTP context it originated from, if any.
type Error struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error

	// Status is the HTTP status code, 0 when no response was received.
	Status int
	Method string
	Path   string
	// Body is the raw response body of a failed request.
	Body []byte
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Method != "" {
		b.WriteString(fmt.Sprintf(" (%s %s", e.Method, e.Path))
		if e.Status != 0 {
			b.WriteString(fmt.Sprintf(" -> %d", e.Status))
		}
		b.WriteString(")")
	}

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new Error wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithRequest records the request the error belongs to
func (e *Error) WithRequest(method, path string) *Error {
	e.Method = method
	e.Path = path
	return e
}

// CodeForStatus buckets an HTTP status into a transport error code.
func CodeForStatus(status int) ErrorCode {
	switch {
	case status == http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case status == http.StatusForbidden:
		return ErrCodeForbidden
	case status == http.StatusNotFound:
		return ErrCodeNotFound
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return ErrCodeBadRequest
	case status >= 500:
		return ErrCodeServer
	default:
		return ErrCodeClient
	}
}

// NewStatusError creates the error returned for a non-2xx response.
func NewStatusError(method, path string, status int, message string, body []byte) *Error {
	if message == "" {
		message = http.StatusText(status)
		if message == "" {
			message = fmt.Sprintf("unexpected status %d", status)
		}
	}

	e := &Error{
		Code:    CodeForStatus(status),
		Message: message,
		Status:  status,
		Method:  method,
		Path:    path,
		Body:    body,
	}

	switch e.Code {
	case ErrCodeUnauthorized:
		e.WithSuggestion("Run 'cleanaid login' to start a new session")
	case ErrCodeForbidden:
		e.WithSuggestion("Check that your admin role has access to this resource")
	case ErrCodeServer:
		e.WithSuggestion("The API server failed; retry later or check its status")
	}

	return e
}

// NewNetworkError creates the error returned when no response was received.
func NewNetworkError(method, path string, cause error) *Error {
	return Wrap(ErrCodeNetwork, "request failed without a response", cause).
		WithRequest(method, path).
		WithSuggestion("Check that the API URL is reachable (cleanaid config view)")
}

// NewTimeoutError creates the error returned when a request exceeds its deadline.
func NewTimeoutError(method, path string, cause error) *Error {
	return Wrap(ErrCodeTimeout, "request timed out", cause).
		WithRequest(method, path)
}

// NewSessionNoneError creates an error for operations that need a session.
func NewSessionNoneError() *Error {
	return New(ErrCodeSessionNone, "no active session").
		WithSuggestion("Run 'cleanaid login' first")
}

// NewEnvelopeUnsuccessfulError creates an error from a success:false envelope.
func NewEnvelopeUnsuccessfulError(message string) *Error {
	if message == "" {
		message = "server reported an unsuccessful response"
	}
	return New(ErrCodeEnvelopeUnsuccessful, message)
}

// NewFileUnmarshalError creates an unmarshal error
func NewFileUnmarshalError(path string, format string, cause error) *Error {
	return Wrap(ErrCodeFileUnmarshal, fmt.Sprintf("failed to parse %s file: %s", format, path), cause).
		WithSuggestion("Check the file syntax and format").
		WithSuggestion(fmt.Sprintf("Ensure the file is valid %s", format))
}

// As finds the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.Code
	}
	return ""
}

// IsStatus reports whether err carries the given HTTP status.
func IsStatus(err error, status int) bool {
	e, ok := As(err)
	return ok && e.Status == status
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
