package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/taskhive/taskhive/internal/service/logger"
	"github.com/taskhive/taskhive/internal/service/ratelimit"
)

// Server wraps the HTTP server and its router.
type Server struct {
	server *http.Server
	log    logger.Logger
}

// ServerConfig holds server timeouts and the listen address.
type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// NewServer wires handlers and middleware onto a mux router.
func NewServer(
	cfg ServerConfig,
	log logger.Logger,
	limiter ratelimit.RateLimitService,
	taskHandler *TaskHandler,
	auditHandler *AuditHandler,
	authHandler *AuthHandler,
) *Server {
	router := mux.NewRouter()

	taskHandler.RegisterRoutes(router)
	auditHandler.RegisterRoutes(router)
	authHandler.RegisterRoutes(router)

	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware)
	router.Use(recoveryMiddleware(log))
	router.Use(rateLimitMiddleware(limiter, log))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	addr := cfg.Host + ":" + cfg.Port
	return &Server{
		server: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		log: log,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info(context.Background(), "HTTP server starting", map[string]interface{}{
		"addr": s.server.Addr,
	})
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info(ctx, "HTTP server shutting down", nil)
	return s.server.Shutdown(ctx)
}
