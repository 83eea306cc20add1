// Package api provides the webhook receiver's HTTP server.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oracle/wls-alert-webhook/pkg/alert"
	"github.com/oracle/wls-alert-webhook/pkg/config"
	"github.com/oracle/wls-alert-webhook/pkg/metrics"
)

// Server is the webhook receiver's HTTP server.
type Server struct {
	cfg        *config.Config
	router     *gin.Engine
	httpServer *http.Server
	printer    *alert.Printer
	monitor    *metrics.ReceiverMonitor
	registry   *metrics.Registry
}

// NewServer creates the server and registers its routes. The receiver
// metrics are registered on registry; /metrics is only served when
// metrics are enabled in cfg.
func NewServer(cfg *config.Config, printer *alert.Printer, registry *metrics.Registry) *Server {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	s := &Server{
		cfg:      cfg,
		router:   router,
		printer:  printer,
		monitor:  metrics.NewReceiverMonitor(registry),
		registry: registry,
	}
	s.setupRoutes()

	s.httpServer = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(requestLogging(), recovery())

	s.router.GET("/health", s.healthHandler)
	if s.cfg.Metrics.Enabled {
		s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	}

	// Alert senders are configured with arbitrary URLs; every path receives.
	s.router.POST("/*path", s.receiveHandler)

	s.router.NoMethod(unsupportedMethodHandler)
	s.router.NoRoute(unsupportedMethodHandler)
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on addr and serves until Shutdown. It returns
// http.ErrServerClosed after a clean shutdown.
func (s *Server) Start(addr string) error {
	s.httpServer.Addr = addr
	return s.httpServer.ListenAndServe()
}

// Serve serves on an existing listener until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
