package api

import (
	"context"
	"net/http"
	"time"

	"example.com/backstage/services/console/config"
	"example.com/backstage/services/console/internal/api/handlers"
	"example.com/backstage/services/console/internal/delivery"
	"example.com/backstage/services/console/internal/inventory"
	"example.com/backstage/services/console/internal/metrics"
	"example.com/backstage/services/console/internal/tracing"
	"example.com/backstage/services/console/internal/vehicle"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Server is the ops/debug HTTP server exposing store state and metrics.
// The admin UI proper never talks to this; it is an internal surface.
type Server struct {
	config         config.Config
	router         *gin.Engine
	httpServer     *http.Server
	deliveryStore  *delivery.Store
	inventoryStore *inventory.Store
	vehicleStore   *vehicle.Store
	metrics        *metrics.Metrics
	tracer         tracing.Tracer
}

// NewServer creates a new HTTP server
func NewServer(cfg config.Config, ds *delivery.Store, is *inventory.Store, vs *vehicle.Store, m *metrics.Metrics, tracer tracing.Tracer) *Server {
	server := &Server{
		config:         cfg,
		deliveryStore:  ds,
		inventoryStore: is,
		vehicleStore:   vs,
		metrics:        m,
		tracer:         tracer,
	}

	server.router = server.setupRouter()
	server.httpServer = &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: server.router,
	}

	return server
}

// setupRouter configures the HTTP router
func (s *Server) setupRouter() *gin.Engine {
	if s.config.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(gin.Recovery())

	stateHandler := handlers.NewStateHandler(s.deliveryStore, s.inventoryStore, s.vehicleStore, s.tracer)
	stateHandler.RegisterRoutes(router)

	metricsHandler := handlers.NewMetricsHandler(s.metrics, s.tracer)
	metricsHandler.RegisterRoutes(router)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"health": s.metrics.GetHealthChecks(),
		})
	})

	return router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Info().Str("address", s.config.ServerAddress).Msg("Starting ops HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "HTTP server error")
	}

	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down ops HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "HTTP server shutdown error")
	}

	return nil
}
