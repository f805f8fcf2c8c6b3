package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"example.com/backstage/services/console/config"
	"example.com/backstage/services/console/internal/api"
	"example.com/backstage/services/console/internal/cache"
	"example.com/backstage/services/console/internal/delivery"
	"example.com/backstage/services/console/internal/inventory"
	"example.com/backstage/services/console/internal/metrics"
	"example.com/backstage/services/console/internal/restclient"
	"example.com/backstage/services/console/internal/tracing"
	"example.com/backstage/services/console/internal/vehicle"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ops API server",
	Long:  `Start the HTTP server exposing store snapshots, metrics and the vehicle diagnostic log`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return err
	}

	// Configure logging
	if cfg.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Set up signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Initialize snapshot cache
	snaps, err := cache.NewSnapshotCache(cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis cache, continuing without snapshots")
		snaps = nil
	}

	// Initialize tracer
	tracer, err := tracing.NewTracer(cfg.Tracing)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
	}
	defer func() {
		if tracer != nil {
			tracer.Close()
		}
	}()

	// Initialize metrics
	metricsCollector := metrics.NewMetrics()

	// Initialize the backend client and domain stores
	rc := restclient.New(cfg.Backend, restclient.WithTracer(tracer))

	deliveryStore := delivery.NewStore(delivery.NewClient(rc), metricsCollector, tracer, snaps)
	inventoryStore := inventory.NewStore(inventory.NewClient(rc), metricsCollector, tracer, snaps)
	vehicleStore := vehicle.NewStore(vehicle.NewClient(rc), metricsCollector, tracer, snaps, cfg.Refresh.VehiclePersonID)

	// Warm the stores from cached snapshots before the first refresh lands
	deliveryStore.Hydrate(ctx)
	inventoryStore.Hydrate(ctx)
	vehicleStore.Hydrate(ctx)

	// Initialize and start the server
	server := api.NewServer(cfg, deliveryStore, inventoryStore, vehicleStore, metricsCollector, tracer)

	go func() {
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("Server error")
		}
	}()

	// Wait for termination signal
	<-ctx.Done()

	// Shutdown the server
	if err := server.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}

	if snaps != nil {
		if err := snaps.Close(); err != nil {
			log.Error().Err(err).Msg("Cache close error")
		}
	}

	log.Info().Msg("Shutting down ops API server")
	return nil
}
