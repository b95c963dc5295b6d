package ux

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/cleanaid/internal/errors"
)

// EnhanceError adds recovery suggestions to errors that carry none. Coded
// errors keep their own suggestions; a few common uncoded failures get one.
func EnhanceError(err error) error {
	if err == nil {
		return nil
	}
	if e, ok := errors.As(err); ok {
		if len(e.Suggestions) == 0 {
			if s := suggestionFor(e.Code); s != "" {
				e.WithSuggestion(s)
			}
		}
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "unknown command"), strings.Contains(msg, "unknown flag"):
		return errors.Wrap(errors.ErrCodeConfigInvalid, msg, err).
			WithSuggestion("Run 'cleanaid --help' to list commands and flags")
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "no such host"):
		return errors.NewNetworkError("", "", err)
	}
	return err
}

func suggestionFor(code errors.ErrorCode) string {
	switch code {
	case errors.ErrCodeUnauthorized, errors.ErrCodeSessionNone, errors.ErrCodeSessionInvalid:
		return "Sign in again with 'cleanaid login'"
	case errors.ErrCodeConfigMissing:
		return "Set the API URL with --api-url or 'cleanaid config set api.url <url>'"
	case errors.ErrCodeNotFound:
		return "Check the id; list resources to find it"
	case errors.ErrCodeEnvelopeInvalid:
		return "Check that --api-url points at the Cleanaid API"
	}
	return ""
}

// PrintError writes err with its code and suggestions.
func PrintError(w io.Writer, err error, noColor bool) {
	if err == nil {
		return
	}
	err = EnhanceError(err)

	prefix := "Error:"
	if !noColor {
		prefix = lipgloss.NewRenderer(w).NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9")).
			Render(prefix)
	}

	e, ok := errors.As(err)
	if !ok {
		fmt.Fprintf(w, "%s %v\n", prefix, err)
		return
	}

	fmt.Fprintf(w, "%s [%s] %s", prefix, e.Code, e.Message)
	if e.Method != "" {
		fmt.Fprintf(w, " (%s %s", e.Method, e.Path)
		if e.Status != 0 {
			fmt.Fprintf(w, " -> %d", e.Status)
		}
		fmt.Fprint(w, ")")
	}
	fmt.Fprintln(w)
	if e.Cause != nil {
		fmt.Fprintf(w, "  cause: %v\n", e.Cause)
	}
	for _, s := range e.Suggestions {
		fmt.Fprintf(w, "  hint: %s\n", s)
	}
}
