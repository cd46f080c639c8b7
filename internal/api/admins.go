package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dldydtjq159-eng/storeapp-server/internal/audit"
	"github.com/dldydtjq159-eng/storeapp-server/internal/auth"
)

type createAdminRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// adminView is the serialised form of an admin account. The password
// hash never leaves the repository layer.
type adminView struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// handleListAdmins returns all admin accounts.
func (s *Server) handleListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := s.userRepo.ListAdmins(r.Context())
	if err != nil {
		s.logger.Error("list admins failed", "error", err)
		writeInternalError(w, "failed to list admins")
		return
	}

	views := make([]adminView, 0, len(admins))
	for _, a := range admins {
		views = append(views, adminView{
			ID:        a.ID,
			Role:      string(a.Role),
			CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"admins": views,
		"count":  len(views),
	})
}

// handleCreateAdmin provisions a new admin account.
func (s *Server) handleCreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req createAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if req.ID == "" || req.Password == "" {
		writeBadRequest(w, "id and password are required")
		return
	}

	if !auth.IsValidID(req.ID) {
		writeValidationError(w, "id may only contain letters, digits, dot, underscore and hyphen (max 64)")
		return
	}

	if len(req.Password) < 8 { //nolint:mnd // minimum password length
		writeValidationError(w, "password must be at least 8 characters")
		return
	}

	user, err := s.userRepo.Insert(r.Context(), req.ID, req.Password, auth.RoleAdmin)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrReservedID):
			writeConflict(w, "this id is reserved")
		case errors.Is(err, auth.ErrUserExists):
			writeConflict(w, "an account with this id already exists")
		default:
			s.logger.Error("create admin failed", "error", err)
			writeInternalError(w, "failed to create admin")
		}
		return
	}

	claims := claimsFromContext(r.Context())
	s.logger.Info("admin created", "admin_id", user.ID, "created_by", claims.Subject)
	s.auditLog(audit.ActionAdminCreate, audit.EntityUser, user.ID, claims.Subject, nil)

	writeJSON(w, http.StatusCreated, adminView{
		ID:        user.ID,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	})
}
