package api

import (
	"net/http"
	"strings"

	"github.com/MikeSquared-Agency/echoes/internal/auth"
)

const sessionCookie = "echoes_session"

// requireSession admits requests carrying a valid session token, from the
// session cookie or an "Authorization: Bearer" header.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)
		if token == "" {
			respondError(w, http.StatusUnauthorized, "login required")
			return
		}

		claims, err := s.gate.Verify(token)
		if err != nil {
			s.logger.Debug("rejected session token", "error", err)
			respondError(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), claims)))
	})
}

func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
