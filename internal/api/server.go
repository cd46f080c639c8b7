package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dldydtjq159-eng/storeapp-server/internal/audit"
	"github.com/dldydtjq159-eng/storeapp-server/internal/auth"
	"github.com/dldydtjq159-eng/storeapp-server/internal/catalog"
	"github.com/dldydtjq159-eng/storeapp-server/internal/infrastructure/config"
	"github.com/dldydtjq159-eng/storeapp-server/internal/infrastructure/logging"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Server    config.ServerConfig
	Auth      config.AuthConfig
	Release   config.VersionConfig
	Logger    *logging.Logger
	UserRepo  auth.UserRepository
	AuditRepo audit.Repository // optional: auditing is disabled when nil
	Catalog   *catalog.FileStore
	Version   string
}

// Server is the HTTP API server for the store catalogue backend.
//
// It manages the HTTP listener, routes, middleware, and the async audit
// writer. The server is created with New() and started with Start().
type Server struct {
	cfg        config.ServerConfig
	authCfg    config.AuthConfig
	releaseCfg config.VersionConfig
	logger     *logging.Logger
	userRepo   auth.UserRepository
	auditRepo  audit.Repository
	catalog    *catalog.FileStore
	version    string
	server     *http.Server
	auditCh    chan *audit.AuditLog
	cancel     context.CancelFunc // cancels background goroutines on Close()
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if deps.Catalog == nil {
		return nil, fmt.Errorf("catalogue store is required")
	}
	if deps.Auth.TokenSecret == "" {
		return nil, fmt.Errorf("token secret is required")
	}

	s := &Server{
		cfg:        deps.Server,
		authCfg:    deps.Auth,
		releaseCfg: deps.Release,
		logger:     deps.Logger,
		userRepo:   deps.UserRepo,
		auditRepo:  deps.AuditRepo,
		catalog:    deps.Catalog,
		version:    deps.Version,
	}

	if s.auditRepo != nil {
		s.auditCh = make(chan *audit.AuditLog, auditChanSize)
	}

	return s, nil
}

// Start begins listening for HTTP connections.
//
// It launches the async audit writer and the HTTP listener in background
// goroutines. The server can be stopped with Close().
func (s *Server) Start(ctx context.Context) error {
	// Create internal context so Close() can stop background goroutines
	// independently of the parent context.
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	if s.auditCh != nil {
		go s.drainAuditLog(srvCtx)
	}

	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       s.cfg.ReadTimeout(),
		ReadHeaderTimeout: s.cfg.ReadTimeout(),
		WriteTimeout:      s.cfg.WriteTimeout(),
		IdleTimeout:       s.cfg.IdleTimeout(),
	}

	go func() {
		var err error
		if s.cfg.TLS.Enabled {
			s.logger.Info("API server starting with TLS",
				"address", s.server.Addr,
				"cert", s.cfg.TLS.CertFile,
			)
			err = s.server.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		} else {
			s.logger.Info("API server starting", "address", s.server.Addr)
			err = s.server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	// Cancel background goroutines (audit writer drains before exiting)
	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running and responsive.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}
