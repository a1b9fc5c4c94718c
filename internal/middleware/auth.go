package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"feedback-backend/internal/auth"
	"feedback-backend/internal/models"
)

type contextKey string

const adminKey contextKey = "admin_subject"

// Authorizer validates bearer tokens. *auth.Authenticator satisfies it.
type Authorizer interface {
	Authorize(token string) (*auth.Claims, error)
}

// JWTAuth rejects requests without a valid admin bearer token with 401.
func JWTAuth(authorizer Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w, "missing or malformed authorization header")
				return
			}

			claims, err := authorizer.Authorize(token)
			if err != nil {
				log.Printf("Rejected admin token: %v", err)
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), adminKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdmin returns the authenticated subject, or "" outside JWTAuth.
func GetAdmin(ctx context.Context) string {
	subject, _ := ctx.Value(adminKey).(string)
	return subject
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(models.ErrorResponse{Error: message})
}
