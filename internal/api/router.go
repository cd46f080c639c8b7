package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dldydtjq159-eng/storeapp-server/internal/auth"
)

// apiPrefix is the versioned base path for all API routes.
const apiPrefix = "/storeapp/v1"

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// Service banner for probes hitting the bare root
	r.Get("/", s.handleRoot)

	r.Route(apiPrefix, func(r chi.Router) {
		// Public routes (no auth required)
		r.Get("/health", s.handleHealth)
		r.Get("/version", s.handleVersion)
		r.Post("/auth/login", s.handleLogin)

		// Catalogue reads are public
		r.Get("/data", s.handleGetData)
		r.Get("/store/{name}", s.handleGetStore)

		// Admin routes: catalogue writes
		r.Group(func(r chi.Router) {
			r.Use(s.requireRole(auth.RoleAdmin))

			r.Post("/save", s.handleSaveCatalog)
			r.Post("/store/{name}", s.handlePutStore)
		})

		// Superadmin routes: account management and audit trail
		r.Group(func(r chi.Router) {
			r.Use(s.requireRole(auth.RoleSuperadmin))

			r.Get("/admins", s.handleListAdmins)
			r.Post("/admins", s.handleCreateAdmin)
			r.Get("/audit", s.handleListAuditLogs)
		})
	})

	return r
}

// handleRoot identifies the service for unauthenticated probes.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "storeapp-server",
		"status":  "running",
	})
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}

// handleVersion reports the latest client release for update checks.
func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"latest":       s.releaseCfg.Latest,
		"notes":        s.releaseCfg.Notes,
		"download_url": s.releaseCfg.DownloadURL,
	})
}
