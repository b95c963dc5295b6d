package cmd

import (
	"context"
	"fmt"
	"io"
)

// loginHint is the CLI's login redirect: there is no screen to send the user
// to, so it tells them how to sign in again.
type loginHint struct {
	w io.Writer
}

func (h loginHint) RedirectToLogin(context.Context) {
	fmt.Fprintln(h.w, "Session expired or rejected. Sign in again with: cleanaid login")
}
