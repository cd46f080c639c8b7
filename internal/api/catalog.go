package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dldydtjq159-eng/storeapp-server/internal/audit"
	"github.com/dldydtjq159-eng/storeapp-server/internal/auth"
)

// handleGetData returns the full catalogue document set.
func (s *Server) handleGetData(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.ReadAll())
}

// handleSaveCatalog replaces the full catalogue wholesale.
//
// The body is decoded as arbitrary JSON and normalised; a syntactically
// valid body can never be rejected for its shape.
func (s *Server) handleSaveCatalog(w http.ResponseWriter, r *http.Request) {
	var raw any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	cat, err := s.catalog.WriteAll(raw)
	if err != nil {
		s.logger.Error("catalogue save failed", "error", err)
		writeInternalError(w, "failed to save catalogue")
		return
	}

	claims := claimsFromContext(r.Context())
	s.logger.Info("catalogue saved", "stores", len(cat.Stores), "saved_by", claims.Subject)
	s.auditLog(audit.ActionCatalogSave, audit.EntityCatalog, "", claims.Subject, map[string]any{
		"stores": len(cat.Stores),
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"stores":    len(cat.Stores),
		"last_sync": cat.LastSync,
	})
}

// handleGetStore returns the document for a single store. Unknown names
// yield an empty default document and do not register the store.
func (s *Server) handleGetStore(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !auth.IsValidID(name) {
		writeValidationError(w, "invalid store name")
		return
	}

	writeJSON(w, http.StatusOK, s.catalog.GetStore(name))
}

// handlePutStore replaces a single store's document wholesale,
// registering the name on first write.
func (s *Server) handlePutStore(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !auth.IsValidID(name) {
		writeValidationError(w, "invalid store name")
		return
	}

	var raw any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	doc, err := s.catalog.PutStore(name, raw)
	if err != nil {
		s.logger.Error("store save failed", "store", name, "error", err)
		writeInternalError(w, "failed to save store")
		return
	}

	claims := claimsFromContext(r.Context())
	s.logger.Info("store saved", "store", name, "saved_by", claims.Subject)
	s.auditLog(audit.ActionStoreSave, audit.EntityStore, name, claims.Subject, nil)

	writeJSON(w, http.StatusOK, doc)
}
