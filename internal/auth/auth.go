// Package auth provides registration, login and bearer-token
// authentication for the REST API.
package auth

import (
	"context"
	"errors"
)

// Identity holds the authenticated caller resolved from a bearer token.
// It is taken from the token payload without a storage round trip.
type Identity struct {
	UserID   int64
	Username string
}

// Sentinel errors for authentication failures.
var (
	ErrUnauthenticated    = errors.New("unauthenticated: no credentials provided")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("username already registered")
)

// contextKey is the type for context keys in this package.
type contextKey string

// identityKey is the context key for Identity.
const identityKey contextKey = "identity"

// IdentityFromContext retrieves the Identity from the context.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*Identity)
	return identity, ok
}

// WithIdentity stores the Identity in the context.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}
