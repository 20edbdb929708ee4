package model

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Principal is the identity decoded from a bearer token. Host tokens are
// minted at event creation and carry no user id; user tokens are minted
// when a user joins and identify both the event and the user.
type Principal struct {
	EventID primitive.ObjectID
	UserID  primitive.ObjectID
	Host    bool
}

// HasUser reports whether the principal identifies a specific user.
func (p Principal) HasUser() bool {
	return !p.UserID.IsZero()
}

type principalCtxKey struct{}

// NewContextWithPrincipal returns a new [context.Context] that carries p.
func NewContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

// GetPrincipalFromContext returns the principal stored on the ctx, if any.
// Public routes do not have one.
func GetPrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(Principal)
	return p, ok
}
