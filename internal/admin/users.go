package admin

import (
	"context"

	"github.com/felixgeelhaar/cleanaid/internal/api"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

// UsersPath is the users resource root.
const UsersPath = "/admin/users"

// Users manages marketplace accounts.
type Users struct {
	r resource[types.User]
}

// NewUsers creates the users module.
func NewUsers(c *api.Client) *Users {
	return &Users{r: resource[types.User]{c: c, base: UsersPath, alias: "users"}}
}

// List returns a page of users. The endpoint answers {users, pagination},
// which is remapped into the canonical envelope.
func (u *Users) List(ctx context.Context, f *UserFilter) (types.Envelope[[]types.User], error) {
	return u.r.list(ctx, f)
}

func (u *Users) Get(ctx context.Context, id string) (types.Envelope[types.User], error) {
	return u.r.get(ctx, id)
}

func (u *Users) Create(ctx context.Context, in types.UserInput) (types.Envelope[types.User], error) {
	return u.r.create(ctx, in)
}

func (u *Users) Update(ctx context.Context, id string, in types.UserInput) (types.Envelope[types.User], error) {
	return u.r.update(ctx, id, in)
}

func (u *Users) Delete(ctx context.Context, id string) (types.Envelope[Ack], error) {
	return u.r.delete(ctx, id)
}

// UpdateStatus activates, deactivates or suspends a user.
func (u *Users) UpdateStatus(ctx context.Context, id, status string) (types.Envelope[types.User], error) {
	return u.r.updateStatus(ctx, id, status, "")
}

func (u *Users) Stats(ctx context.Context) (types.Envelope[types.UserStats], error) {
	return stats[types.UserStats](ctx, u.r.c, UsersPath)
}
