package dbsession

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

type key int

const (
	principalKey key = iota
)

// ContextWithPrincipal adds an authenticated principal to a context.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the principal in a context, or nil if the
// context has none.
func PrincipalFromContext(ctx context.Context) Principal {
	if p := ctx.Value(principalKey); p != nil {
		return p.(Principal)
	}
	return nil
}

// Identity is a Principal identified by name alone.
type Identity string

func (id Identity) Name() string { return string(id) }

// ClaimsPrincipal is a Principal identified by the subject of a set of
// JWT claims.
type ClaimsPrincipal struct {
	jwt.Claims
}

// Name returns the subject of the claims, or an empty string if there is no
// subject.
func (c ClaimsPrincipal) Name() string {
	if c.Claims == nil {
		return ""
	}
	sub, err := c.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}
