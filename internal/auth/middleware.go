package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

type guardError struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Protect rejects requests without a valid bearer token with 401 and
// stores the token's user id in the request context otherwise.
func Protect(tokens *Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r.Header.Get("Authorization"))
			if raw == "" {
				writeUnauthorized(w, guardError{Message: "Not authorized, no token"})
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				slog.DebugContext(r.Context(), "token rejected", "error", err)
				writeUnauthorized(w, guardError{Message: "Not authorized, token failed", Error: err.Error()})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.Subject)))
		})
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeUnauthorized(w http.ResponseWriter, body guardError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(body)
}
