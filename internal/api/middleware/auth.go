package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/response"
)

type contextKey struct{}

var userIDKey = contextKey{}

// WithUserID returns a copy of ctx carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user ID, or "" when the request
// did not pass Authenticate.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// Authenticate verifies the "Authorization: Bearer <token>" header. The token
// is a fernet token whose payload is the user ID, issued by the auth service
// with one of keys. Tokens older than ttl are rejected.
//
// Returns 401 Unauthorized when the header is missing or the token does not verify.
func Authenticate(keys []*fernet.Key, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
				return
			}

			payload := fernet.VerifyAndDecrypt([]byte(strings.TrimSpace(token)), ttl, keys)
			userID := strings.TrimSpace(string(payload))
			if payload == nil || userID == "" {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// IssueToken mints a token for userID that Authenticate accepts.
func IssueToken(userID string, key *fernet.Key) (string, error) {
	tok, err := fernet.EncryptAndSign([]byte(userID), key)
	if err != nil {
		return "", err
	}
	return string(tok), nil
}
