package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"devhub-api/internal/auth"
	"devhub-api/internal/config"
	"github.com/gorilla/mux"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserIDFromContext returns the authenticated user id attached by AuthMiddleware.
// The second return is false for requests that never passed the gate.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// AuthMiddleware verifies the x-auth-token header and attaches the resolved
// user id to the request context. Requests without a valid token never reach
// the wrapped handler.
func AuthMiddleware(cfg *config.Config) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("x-auth-token")
			if token == "" {
				reject(w, "No token, authorization denied")
				return
			}

			userID, err := auth.GetUserIDFromToken(token, []byte(cfg.JWTSecret))
			if err != nil {
				reject(w, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func reject(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"msg": msg})
}
