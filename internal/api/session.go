package api

import (
	"net/http"
	"time"

	"github.com/bytedance/sonic"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// login handles POST /api/v1/login.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := sonic.ConfigStd.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if !s.gate.CheckCredentials(req.Username, req.Password) {
		s.logger.Warn("login rejected", "remote", r.RemoteAddr)
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, expires, err := s.gate.Issue(req.Username)
	if err != nil {
		s.logger.Error("failed to issue session", "error", err)
		respondError(w, http.StatusInternalServerError, "could not start session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(s.gate.TTL().Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	s.logger.Info("logged in")
	respondJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expires})
}

// logout handles POST /api/v1/logout.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}
