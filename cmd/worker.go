package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"example.com/backstage/services/console/config"
	"example.com/backstage/services/console/internal/cache"
	"example.com/backstage/services/console/internal/delivery"
	"example.com/backstage/services/console/internal/inventory"
	"example.com/backstage/services/console/internal/metrics"
	"example.com/backstage/services/console/internal/restclient"
	"example.com/backstage/services/console/internal/tracing"
	"example.com/backstage/services/console/internal/vehicle"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start the background refresh worker",
	Long:  `Start the background worker that keeps the domain stores in sync with the backend on a fixed interval`,
	RunE:  runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) error {
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

	// Create an error group to manage goroutines
	g, ctx := errgroup.WithContext(ctx)

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

	// Initialize metrics
	metricsCollector := metrics.NewMetrics()

	// Initialize the backend client and domain stores
	rc := restclient.New(cfg.Backend, restclient.WithTracer(tracer))

	deliveryStore := delivery.NewStore(delivery.NewClient(rc), metricsCollector, tracer, snaps)
	inventoryStore := inventory.NewStore(inventory.NewClient(rc), metricsCollector, tracer, snaps)
	vehicleStore := vehicle.NewStore(vehicle.NewClient(rc), metricsCollector, tracer, snaps, cfg.Refresh.VehiclePersonID)

	refresh := func() {
		if res := deliveryStore.LoadDashboard(ctx, 1, 20); !res.Success {
			log.Error().Str("message", res.Message).Msg("Delivery dashboard refresh failed")
			metricsCollector.SetHealth("delivery_refresh", false)
		} else {
			metricsCollector.SetHealth("delivery_refresh", true)
		}

		if res := inventoryStore.LoadOverview(ctx, 1, 20); !res.Success {
			log.Error().Str("message", res.Message).Msg("Inventory overview refresh failed")
			metricsCollector.SetHealth("inventory_refresh", false)
		} else {
			metricsCollector.SetHealth("inventory_refresh", true)
		}

		// The vehicle panel is person-scoped; only refresh when a person
		// is configured for this worker.
		if cfg.Refresh.VehiclePersonID != 0 {
			if res := vehicleStore.LoadProfile(ctx); !res.Success {
				log.Error().Str("message", res.Message).Msg("Vehicle profile refresh failed")
			}
		}
	}

	// Start the periodic refresh job
	g.Go(func() error {
		log.Info().Dur("interval", cfg.Refresh.Interval).Msg("Starting store refresh job")

		// Create a scheduler
		scheduler, err := gocron.NewScheduler()
		if err != nil {
			return err
		}

		_, err = scheduler.NewJob(
			gocron.DurationJob(cfg.Refresh.Interval),
			gocron.NewTask(refresh),
		)
		if err != nil {
			return err
		}

		// Start the scheduler
		scheduler.Start()

		// Run one refresh immediately so the stores are warm straight away
		refresh()

		// Wait for context cancellation
		<-ctx.Done()

		// Shutdown the scheduler
		return scheduler.Shutdown()
	})

	// Wait for any goroutine to exit
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Worker error")
		return err
	}

	if snaps != nil {
		if err := snaps.Close(); err != nil {
			log.Error().Err(err).Msg("Cache close error")
		}
	}

	log.Info().Msg("Worker shutting down gracefully")
	return nil
}
