package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/devhub/backend/internal/models"
)

// bearerPrefix is the only credential scheme the authenticator understands
const bearerPrefix = "Bearer "

// UserLookup resolves a token subject to a stored identity
type UserLookup interface {
	// Method GetByUsername retrieves a user by username.
	//
	// "username" parameter is used to retrieve a user by username.
	//
	// If user with such username does not exist, the error will be returned together with "nil" value.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Authenticator resolves the bearer token on each request and attaches the
// matching user to the request context as the principal.
//
// This stage never rejects: a missing header, a foreign scheme, an invalid or
// expired token, and a subject without a matching user all just leave the
// request without a principal. Whether that is acceptable is decided later by
// the authorization policy. An already-attached principal is kept as is and
// the lookup is skipped.
func Authenticator(codec *TokenCodec, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")

			if strings.HasPrefix(authHeader, bearerPrefix) {
				token := strings.TrimPrefix(authHeader, bearerPrefix)

				if subject, err := codec.ParseSubject(token); err == nil {
					if _, attached := PrincipalFromContext(r.Context()); !attached {
						if user, err := users.GetByUsername(r.Context(), subject); err == nil && user != nil {
							r = r.WithContext(WithPrincipal(r.Context(), user))
						}
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
