package auth

import (
	"context"

	"github.com/devhub/backend/internal/models"
)

type contextKey string

const principalKey contextKey = "principal"

// WithPrincipal returns a context carrying the resolved user identity
func WithPrincipal(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, principalKey, user)
}

// PrincipalFromContext retrieves the resolved user identity, if any
func PrincipalFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(principalKey).(*models.User)
	return user, ok
}
