package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"tya/internal/auth"
	"tya/internal/logging"
)

// RequireIdentity rejects requests without a valid token before they reach
// next. The token is read from the named cookie, falling back to an
// Authorization bearer header.
func RequireIdentity(v auth.Validator, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFrom(r, cookieName)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "missing auth token")
				return
			}

			id, err := v.Validate(r.Context(), token)
			if err != nil {
				if errors.Is(err, auth.ErrUnauthorized) {
					writeError(w, http.StatusUnauthorized, "invalid auth token")
					return
				}
				log.Error().
					Err(err).
					Str("request_id", logging.RequestID(r.Context())).
					Msg("token validation failed")
				writeError(w, http.StatusServiceUnavailable, "auth service unavailable")
				return
			}

			noteCaller(r.Context(), id.UserID)
			ctx := auth.WithIdentity(r.Context(), id)
			ctx = logging.WithUserID(ctx, id.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFrom(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return parseBearerToken(r.Header.Get("Authorization"))
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{Error: msg})
}
