// Package auth resolves the bearer token of a request into a catalog identity.
package auth

import (
	"context"
	"errors"

	"tya/internal/catalog"
)

var (
	// ErrUnauthorized reports a missing, expired or rejected token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnavailable reports that the token could not be checked at all.
	ErrUnavailable = errors.New("auth service unavailable")
)

// Validator checks an opaque token.
type Validator interface {
	Validate(ctx context.Context, token string) (catalog.Identity, error)
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(ctx context.Context, token string) (catalog.Identity, error)

func (f ValidatorFunc) Validate(ctx context.Context, token string) (catalog.Identity, error) {
	return f(ctx, token)
}

type identityKey struct{}

// WithIdentity stores the caller identity in ctx.
func WithIdentity(ctx context.Context, id catalog.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity stored by WithIdentity.
func IdentityFrom(ctx context.Context) (catalog.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(catalog.Identity)
	return id, ok
}
