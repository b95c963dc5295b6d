package admin

import (
	"context"

	"github.com/felixgeelhaar/cleanaid/internal/api"
	"github.com/felixgeelhaar/cleanaid/internal/transport"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

const (
	// AdminsPath is the admins resource root.
	AdminsPath = "/admin/admins"
	// SignInPath exchanges credentials for a token.
	SignInPath = "/admin/auth/login"
	// MePath returns the admin the token belongs to.
	MePath = "/admin/auth/me"
)

// Admins manages dashboard operators and signs them in.
type Admins struct {
	r resource[types.Admin]
}

// NewAdmins creates the admins module.
func NewAdmins(c *api.Client) *Admins {
	return &Admins{r: resource[types.Admin]{c: c, base: AdminsPath, alias: "admins"}}
}

func (a *Admins) List(ctx context.Context, f *AdminFilter) (types.Envelope[[]types.Admin], error) {
	return a.r.list(ctx, f)
}

func (a *Admins) Get(ctx context.Context, id string) (types.Envelope[types.Admin], error) {
	return a.r.get(ctx, id)
}

func (a *Admins) Create(ctx context.Context, in types.AdminInput) (types.Envelope[types.Admin], error) {
	return a.r.create(ctx, in)
}

func (a *Admins) Update(ctx context.Context, id string, in types.AdminInput) (types.Envelope[types.Admin], error) {
	return a.r.update(ctx, id, in)
}

func (a *Admins) Delete(ctx context.Context, id string) (types.Envelope[Ack], error) {
	return a.r.delete(ctx, id)
}

func (a *Admins) UpdateStatus(ctx context.Context, id, status string) (types.Envelope[types.Admin], error) {
	return a.r.updateStatus(ctx, id, status, "")
}

// Me returns the signed-in admin.
func (a *Admins) Me(ctx context.Context) (types.Envelope[types.Admin], error) {
	return api.Get[types.Admin](ctx, a.r.c, MePath, nil)
}

// SignIn exchanges credentials for a token. It does not store the session.
// The request is marked as retried so bad credentials never trigger the
// transport's login redirect.
func (a *Admins) SignIn(ctx context.Context, email, password string) (types.Envelope[types.SignInResult], error) {
	return api.Post[types.SignInResult](ctx, a.r.c, SignInPath,
		types.Credentials{Email: email, Password: password},
		api.WithRetries(transport.MaxAuthRetries))
}
