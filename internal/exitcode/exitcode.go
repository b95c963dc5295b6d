// Package exitcode maps errors to process exit codes.
package exitcode

import (
	"os"
	"strings"

	"github.com/felixgeelhaar/cleanaid/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// ConfigError indicates missing or invalid configuration
	ConfigError = 3

	// NotFound indicates the requested record does not exist
	NotFound = 4

	// AuthError indicates an authentication or authorization failure
	AuthError = 5

	// NetworkError indicates a network connectivity issue
	NetworkError = 6

	// ServerError indicates the API answered with a 5xx or an unusable body
	ServerError = 7

	// Interrupted indicates the command was cancelled by SIGINT or SIGTERM
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}
	Exit(DetermineExitCode(err))
}

// DetermineExitCode picks the exit code from the coded error in err's chain.
// Uncoded errors are usage errors when cobra produced them, else general.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	if e, ok := errors.As(err); ok {
		switch e.Code {
		case errors.ErrCodeUnauthorized, errors.ErrCodeForbidden,
			errors.ErrCodeSessionNone, errors.ErrCodeSessionInvalid:
			return AuthError
		case errors.ErrCodeNetwork, errors.ErrCodeTimeout, errors.ErrCodeRateLimitWait:
			return NetworkError
		case errors.ErrCodeNotFound:
			return NotFound
		case errors.ErrCodeConfigInvalid, errors.ErrCodeConfigMissing:
			return ConfigError
		case errors.ErrCodeServer, errors.ErrCodeEnvelopeInvalid:
			return ServerError
		case errors.ErrCodeBadRequest:
			return UsageError
		}
		return GeneralError
	}

	errMsg := strings.ToLower(err.Error())
	for _, usage := range []string{
		"unknown command", "unknown flag", "unknown shorthand flag",
		"required flag", "invalid argument", "accepts ", "requires at least",
	} {
		if strings.Contains(errMsg, usage) {
			return UsageError
		}
	}
	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case ConfigError:
		return "Configuration error"
	case NotFound:
		return "Not found"
	case AuthError:
		return "Authentication error"
	case NetworkError:
		return "Network error"
	case ServerError:
		return "Server error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
