// Package http wires the public API router and runs the HTTP servers.
package http

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/credseal/internal/auth/http"
	authService "github.com/allisson/credseal/internal/auth/service"
	authUseCase "github.com/allisson/credseal/internal/auth/usecase"
	"github.com/allisson/credseal/internal/config"
	credentialHTTP "github.com/allisson/credseal/internal/credential/http"
	"github.com/allisson/credseal/internal/metrics"
	webhookHTTP "github.com/allisson/credseal/internal/webhook/http"
)

const readinessTimeout = 2 * time.Second

// Server is the public API server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger

	// background scopes goroutines owned by router middleware.
	background context.Context
	cancel     context.CancelFunc
}

// NewServer creates a Server listening on host:port. The router is attached
// by SetupRouter.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	background, cancel := context.WithCancel(context.Background())
	return &Server{
		db: db,
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger:     logger,
		background: background,
		cancel:     cancel,
	}
}

// SetupRouter registers every route:
//
//	GET    /health
//	GET    /ready
//	POST   /v1/credentials                (bearer token)
//	POST   /v1/credentials/key-pairs      (bearer token)
//	GET    /v1/credentials                (bearer token)
//	GET    /v1/credentials/:name          (bearer token)
//	POST   /v1/credentials/:name/reveal   (bearer token)
//	DELETE /v1/credentials/:name          (bearer token)
//	POST   /v1/webhooks/:endpoint         (signature header)
//
// Credential names containing "/" must be percent-encoded in the path.
// metricsProvider may be nil when metrics are disabled.
func (s *Server) SetupRouter(
	cfg *config.Config,
	credentialHandler *credentialHTTP.CredentialHandler,
	webhookHandler *webhookHTTP.WebhookHandler,
	tokenUseCase authUseCase.TokenUseCase,
	tokenService authService.TokenService,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.UseRawPath = true
	router.UnescapePathValues = true

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}
	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	credentials := v1.Group("/credentials")
	credentials.Use(authHTTP.AuthenticationMiddleware(tokenUseCase, tokenService, s.logger))
	{
		credentials.POST("", credentialHandler.StoreHandler)
		credentials.POST("/key-pairs", credentialHandler.StoreKeyPairHandler)
		credentials.GET("", credentialHandler.ListHandler)
		credentials.GET("/:name", credentialHandler.GetHandler)
		credentials.POST("/:name/reveal", credentialHandler.RevealHandler)
		credentials.DELETE("/:name", credentialHandler.DeleteHandler)
	}

	webhooks := v1.Group("/webhooks")
	if cfg.RateLimitWebhookEnabled {
		webhooks.Use(webhookHTTP.RateLimitMiddleware(
			s.background,
			cfg.RateLimitWebhookRequestsPerSec,
			cfg.RateLimitWebhookBurst,
			s.logger,
		))
	}
	webhooks.POST("/:endpoint", webhookHandler.ReceiveHandler)

	s.router = router
}

// GetHandler returns the configured router, or nil before SetupRouter.
func (s *Server) GetHandler() http.Handler {
	if s.router == nil {
		return nil
	}
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return errors.New("router not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops middleware goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	defer s.cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	database := "ok"
	if s.db == nil {
		database = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			database = "error"
		}
	}

	status, code := "ready", http.StatusOK
	if database != "ok" {
		status, code = "not_ready", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":     status,
		"components": gin.H{"database": database},
	})
}
