package dbsession

import (
	"context"
	"strings"
)

// UserContext identifies the user on whose behalf a session performs
// database operations.  It is resolved once, when a session is created.
type UserContext struct {
	FullName string
	Name     string
}

// NewUserContext returns a UserContext for a full identity.  The short name
// is the part of the identity following the first backslash, or the entire
// identity if it contains no backslash.
//
//	NewUserContext(`DOMAIN\alice`) // {FullName: `DOMAIN\alice`, Name: "alice"}
func NewUserContext(fullName string) *UserContext {
	name := fullName
	if _, after, found := strings.Cut(fullName, `\`); found {
		name = after
	}
	return &UserContext{FullName: fullName, Name: name}
}

// UserContextFunc adapts a function to a UserContextProvider.
type UserContextFunc func(context.Context) *UserContext

// UserContext implements UserContextProvider.
func (fn UserContextFunc) UserContext(ctx context.Context) *UserContext {
	return fn(ctx)
}

// AmbientUserContext is a UserContextProvider that resolves the user
// context from the principal in the context supplied to New.  There is no
// user context if the context has no principal or the principal has no name.
type AmbientUserContext struct{}

// UserContext implements UserContextProvider.
func (AmbientUserContext) UserContext(ctx context.Context) *UserContext {
	p := PrincipalFromContext(ctx)
	if p == nil || p.Name() == "" {
		return nil
	}
	return NewUserContext(p.Name())
}
