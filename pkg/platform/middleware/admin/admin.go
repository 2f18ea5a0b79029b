package admin

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	request "mintgate/pkg/platform/middleware/request"
)

// HeaderAdminToken carries the registry owner's token.
const HeaderAdminToken = "X-Admin-Token"

// TokenVerifier checks a presented admin token.
type TokenVerifier func(token string) bool

// PlainToken compares against a configured token in constant time.
func PlainToken(expected string) TokenVerifier {
	return func(token string) bool {
		if expected == "" {
			return false
		}
		return subtle.ConstantTimeCompare([]byte(token), []byte(expected)) == 1
	}
}

// HashedToken compares against a bcrypt hash of the token.
func HashedToken(hash string) TokenVerifier {
	return func(token string) bool {
		if hash == "" || token == "" {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
	}
}

// RequireAdminToken rejects requests whose X-Admin-Token does not verify.
func RequireAdminToken(verify TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(HeaderAdminToken)
			if !verify(token) {
				ctx := r.Context()
				if logger != nil {
					logger.WarnContext(ctx, "admin token mismatch",
						"request_id", request.GetRequestID(ctx),
					)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"forbidden","error_description":"admin token required"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
