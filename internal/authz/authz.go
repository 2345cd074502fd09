// internal/authz/authz.go

// Package authz carries the authenticated actor through request context and
// answers the single capability question this core needs: may this actor
// mutate that reservation.
package authz

import (
	"context"
	"errors"

	"github.com/acereserve/acereserve/internal/models"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

type userContextKey struct{}

func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext retrieves the authenticated user stored in ctx.
// It returns nil if ctx is nil, if no user is stored, or if the stored value
// has a different type.
func UserFromContext(ctx context.Context) *models.User {
	if ctx == nil {
		return nil
	}
	user, ok := ctx.Value(userContextKey{}).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// CanMutate reports whether the actor may cancel or modify a reservation
// owned by ownerID: the owner always can, admins can override.
func CanMutate(actor *models.User, ownerID int64) bool {
	if actor == nil {
		return false
	}
	return actor.ID == ownerID || actor.IsAdmin()
}

// RequireAdmin returns ErrUnauthenticated when no actor is present and
// ErrForbidden when the actor is not an administrator.
func RequireAdmin(actor *models.User) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
