package middleware

import (
	"context"
	"net/http"
	"strings"

	"todo-backend/auth"
	"todo-backend/utils"
)

type contextKey struct{}

var identityKey contextKey

// IdentityFromContext returns the identity injected by RequireAuth.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// RequireAuth rejects requests without a valid bearer token and injects the
// resolved identity into the request context. All verification failures get
// the same 401 so a caller cannot tell expired from tampered.
func RequireAuth(tokens *auth.TokenService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				utils.ResponseWithError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")

			identity, err := tokens.Verify(tokenString)
			if err != nil {
				utils.ResponseWithError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		}
	}
}
