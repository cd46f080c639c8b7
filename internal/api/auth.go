package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dldydtjq159-eng/storeapp-server/internal/audit"
	"github.com/dldydtjq159-eng/storeapp-server/internal/auth"
)

// loginRequest is the request body for POST /auth/login.
type loginRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// loginResponse is the response body for POST /auth/login.
type loginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	Role      auth.Role `json:"role"`
	ExpiresIn int       `json:"expires_in"`
}

// handleLogin verifies credentials and issues a signed token.
//
// Unknown accounts and wrong passwords produce the same 401 so the
// response does not reveal which ids exist.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if req.ID == "" || req.Password == "" {
		writeBadRequest(w, "id and password are required")
		return
	}

	user, err := s.userRepo.GetByID(r.Context(), req.ID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeUnauthorized(w, "invalid credentials")
			return
		}
		s.logger.Error("login lookup failed", "error", err)
		writeInternalError(w, "login failed")
		return
	}

	ok, err := auth.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		writeUnauthorized(w, "invalid credentials")
		return
	}

	ttl := s.authCfg.TokenTTLDuration()
	token, err := auth.IssueToken(user, s.authCfg.TokenSecret, ttl)
	if err != nil {
		s.logger.Error("token issue failed", "user_id", user.ID, "error", err)
		writeInternalError(w, "failed to generate token")
		return
	}

	s.logger.Info("login succeeded", "user_id", user.ID, "role", user.Role)
	s.auditLog(audit.ActionLogin, audit.EntityUser, user.ID, user.ID, nil)

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		TokenType: "Bearer",
		Role:      user.Role,
		ExpiresIn: int(ttl.Seconds()),
	})
}
