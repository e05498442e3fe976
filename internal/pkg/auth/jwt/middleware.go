package jwt

import (
	"net/http"
	"strings"

	"pinmap/internal/app/user"
	"pinmap/internal/pkg/logx"
)

// IdentityExtractorMiddleware extracts and validates a bearer JWT and stores the resolved
// user in the request context. It never rejects a request: a missing or invalid token
// leaves the caller anonymous, and the authorization gate decides what anonymous callers may do.
func IdentityExtractorMiddleware(secretKey string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			// Expected format: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				next.ServeHTTP(w, r)
				return
			}

			payload, err := ParseToken(parts[1], secretKey)
			if err != nil {
				logx.Ctx(r.Context()).Warn().Err(err).Msg("Invalid or expired JWT provided, treating as anonymous")
				next.ServeHTTP(w, r)
				return
			}

			ctx := user.WithCurrentUser(r.Context(), payload.User())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
