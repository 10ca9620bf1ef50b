package auth

import (
	"context"
	"net/http"
	"strings"

	"collabcast/domain"
)

type contextKey string

const userKey contextKey = "user"

// Middleware validates the Bearer token on incoming HTTP calls and
// injects the authenticated identity into the request context for
// downstream handlers.
func Middleware(tokens *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "authorization token is missing", http.StatusUnauthorized)
				return
			}

			// Expecting the standard "Bearer <token>" format
			tokenStr := strings.TrimPrefix(header, "Bearer ")

			claims, err := tokens.Validate(tokenStr)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			user := domain.User{ID: claims.UserID, Name: claims.UserName}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser attaches an authenticated identity to the context.
func WithUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext retrieves the identity injected by Middleware.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userKey).(domain.User)
	return user, ok
}
