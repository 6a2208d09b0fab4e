package transport

import (
	"net/http"
	"strings"
)

// TokenVerifier checks a bearer token extracted from the Authorization
// header. Implementations must return an error for any invalid token.
type TokenVerifier interface {
	Verify(token string) error
}

// AuthMiddleware enforces bearer token authentication on admin routes.
// A missing header, a malformed header and an unknown or expired token all
// produce the same response so callers can't probe which condition failed.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if token == "" || verifier.Verify(token) != nil {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
