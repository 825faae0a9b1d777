package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"loot-restrictions/core/loader"
	"loot-restrictions/core/logger"
	"loot-restrictions/core/metrics"
	"loot-restrictions/core/middleware/auth"
	"loot-restrictions/core/middleware/rayid"
	"loot-restrictions/feature/integrity"
	"loot-restrictions/feature/restrictions"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "loot-restrictions/docs/swagger"
)

// @title Loot Restrictions API
// @version 1.0
// @description API for querying and reconciling item loot restrictions.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the restriction server",
	Long:  `Starts the HTTP server, loads all enabled features and schedules automatic reconciliation.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Metrics registry
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m := metrics.New(reg)

		// 2. Configuration, logger, database, storage and service
		d, err := loadDeps(m)
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		logg := d.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if err := d.service.Prepare(context.Background()); err != nil {
			logg.Fatal("Failed to prepare schema", zap.Error(err))
		}

		// 3. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           d.cfg.Server.ReadTimeout(),
		})

		// 4. Initialize Feature Loader
		mgr := loader.NewManager(logg)
		mgr.Register(restrictions.NewFeature(d.service))
		mgr.Register(integrity.NewFeature(d.client, d.cfg.Storage.Bucket, d.cfg.Storage.Region, logg, d.db, d.cfg.Restrictions))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Public endpoints
		app.Get("/swagger/*", swagger.HandlerDefault)
		if d.cfg.Metrics.Enabled {
			app.Get(d.cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
		}

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: d.cfg.Server.ApiKey}))

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Scheduler
		var sched *restrictions.Scheduler
		if d.cfg.Restrictions.Schedule != "" {
			sched, err = restrictions.NewScheduler(d.service, d.cfg.Restrictions.Schedule, 0, logg)
			if err != nil {
				logg.Fatal("Failed to create scheduler", zap.Error(err))
			}
			sched.Start()
		} else {
			logg.Info("Automatic reconciliation disabled (restrictions.schedule not set)")
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", d.cfg.Server.Port))
			if err := app.Listen(d.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")

		if sched != nil {
			ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Server.ShutdownTimeout())
			select {
			case <-sched.Stop().Done():
			case <-ctx.Done():
				logg.Warn("Scheduled reconciliation still running at shutdown")
			}
			cancel()
		}
		_ = app.ShutdownWithTimeout(d.cfg.Server.ShutdownTimeout())
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
