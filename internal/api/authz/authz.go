// Package authz carries the authenticated administrator through request
// context. There is a single shared administrator role; no per-user accounts.
package authz

import (
	"context"
	"errors"
)

var ErrUnauthenticated = errors.New("unauthenticated")

type Admin struct {
	Username string
}

type adminContextKey struct{}

func ContextWithAdmin(ctx context.Context, admin *Admin) context.Context {
	return context.WithValue(ctx, adminContextKey{}, admin)
}

// AdminFromContext retrieves the Admin stored in ctx. It returns nil if ctx
// is nil, if no admin is stored, or if the stored value has a different type.
func AdminFromContext(ctx context.Context) *Admin {
	if ctx == nil {
		return nil
	}

	admin, ok := ctx.Value(adminContextKey{}).(*Admin)
	if !ok {
		return nil
	}

	return admin
}

// RequireAdmin returns ErrUnauthenticated unless an administrator is present
// in ctx.
func RequireAdmin(ctx context.Context) error {
	if AdminFromContext(ctx) == nil {
		return ErrUnauthenticated
	}
	return nil
}
