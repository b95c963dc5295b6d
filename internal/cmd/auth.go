package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/cleanaid/internal/api"
	"github.com/felixgeelhaar/cleanaid/internal/errors"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/client"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in as an admin",
	Long: `Sign in with email and password, or adopt an existing bearer token.
Missing credentials are prompted for. The session is stored in
~/.cleanaid/session.yaml unless session.path says otherwise.`,
	Example: `  cleanaid login --email ops@cleanaid.example
  cleanaid login --token "$CLEANAID_TOKEN"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			flags := cmd.Flags()
			token, _ := flags.GetString("token")

			var (
				s   *client.Session
				err error
			)
			if token != "" {
				s, err = c.SignInWithToken(ctx, token)
			} else {
				email, _ := flags.GetString("email")
				password, _ := flags.GetString("password")
				p := cc.Prompter()
				if email == "" {
					email = strings.TrimSpace(p.String("Email", ""))
				}
				if password == "" {
					password = p.String("Password", "")
				}
				if email == "" || password == "" {
					return errors.New(errors.ErrCodeBadRequest, "email and password are required").
						WithSuggestion("Pass --email and --password, or --token")
				}
				s, err = c.SignIn(ctx, email, password)
			}
			if err != nil {
				return err
			}

			if cc.Format == "json" || cc.Format == "yaml" {
				return cc.Print(newWhoami(s))
			}
			_, err = fmt.Fprintf(cc.Out, "Signed in as %s\n", identity(s))
			return err
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cc, err := NewCommandContext(cmd)
		if err != nil {
			return err
		}
		store, err := cc.Sessions()
		if err != nil {
			return err
		}
		if err := store.Clear(cmd.Context()); err != nil {
			return err
		}
		_, err = fmt.Fprintln(cc.Out, "Signed out")
		return err
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in admin",
	Long: `Show the admin of the stored session. With --remote the profile is
fetched from the API, which also checks the session is still accepted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if remote, _ := cmd.Flags().GetBool("remote"); remote {
			return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
				me, err := api.Require(c.Queries().Me(ctx))
				if err != nil {
					return err
				}
				return cc.Print(adminWhoami(me))
			})
		}

		cc, err := NewCommandContext(cmd)
		if err != nil {
			return err
		}
		store, err := cc.Sessions()
		if err != nil {
			return err
		}
		s, err := store.Get(cmd.Context())
		if err != nil {
			return err
		}
		return cc.Print(newWhoami(s))
	},
}

type whoami struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name,omitempty" yaml:"name,omitempty"`
	Email     string     `json:"email,omitempty" yaml:"email,omitempty"`
	Role      string     `json:"role,omitempty" yaml:"role,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty" yaml:"expires_at,omitempty"`
}

func newWhoami(s *client.Session) whoami {
	w := whoami{ID: s.User.ID, Name: s.User.Name, Email: s.User.Email, Role: s.User.Role}
	if !s.ExpiresAt.IsZero() {
		at := s.ExpiresAt
		w.ExpiresAt = &at
	}
	return w
}

func adminWhoami(a types.Admin) whoami {
	return whoami{ID: a.ID, Name: a.DisplayName(), Email: a.Email, Role: a.Role}
}

func identity(s *client.Session) string {
	name := s.User.Name
	if name == "" {
		name = s.User.Email
	}
	if name == "" {
		name = "admin"
	}
	if s.User.Role != "" {
		return fmt.Sprintf("%s (%s)", name, s.User.Role)
	}
	return name
}

func init() {
	loginCmd.Flags().String("email", "", "admin email")
	loginCmd.Flags().String("password", "", "admin password (prompted when omitted)")
	loginCmd.Flags().String("token", "", "use an existing bearer token instead of credentials")
	whoamiCmd.Flags().Bool("remote", false, "fetch the profile from the API")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
