// Package auth adapts the external identity provider to the service: it turns
// bearer tokens into a Principal carried on the request context.
package auth

import "context"

type ctxKey int8

const principalKey ctxKey = iota

// Principal is the caller of a request as far as authorization cares.
// The zero value is the anonymous caller.
type Principal struct {
	Name  string
	Roles []string
}

// Anonymous is the principal of requests without credentials.
var Anonymous = Principal{}

// Authenticated reports whether the principal carries a user name.
func (p Principal) Authenticated() bool {
	return p.Name != ""
}

func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}

	return false
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// FromContext returns the principal stored on ctx, or Anonymous.
func FromContext(ctx context.Context) Principal {
	if p, ok := ctx.Value(principalKey).(Principal); ok {
		return p
	}

	return Anonymous
}
