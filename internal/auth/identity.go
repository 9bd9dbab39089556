package auth

import (
	"context"

	"github.com/osse101/onsenkatsu/internal/domain"
)

// Identity resolves the signed-in user for the current operation.
// Implementations return domain.ErrAuthRequired when nobody is signed in.
type Identity interface {
	CurrentUser(ctx context.Context) (*domain.User, error)
}

// IdentityFunc adapts a function to Identity
type IdentityFunc func(ctx context.Context) (*domain.User, error)

// CurrentUser implements Identity
func (f IdentityFunc) CurrentUser(ctx context.Context) (*domain.User, error) {
	return f(ctx)
}

// StaticIdentity always resolves to the same user; nil means signed out.
func StaticIdentity(user *domain.User) Identity {
	return IdentityFunc(func(context.Context) (*domain.User, error) {
		if user == nil {
			return nil, domain.ErrAuthRequired
		}
		u := *user
		return &u, nil
	})
}
