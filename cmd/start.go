package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"counter-sync/core/config"
	"counter-sync/core/database"
	"counter-sync/core/feed"
	"counter-sync/core/identity"
	"counter-sync/core/loader"
	"counter-sync/core/logger"
	"counter-sync/core/middleware/auth"
	"counter-sync/core/middleware/rayid"
	"counter-sync/feature/counter"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "counter-sync/docs/swagger"
)

// @title Counter Sync API
// @version 1.0
// @description API for the realtime shared counter.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the counter service",
	Long:  `Starts the HTTP server, the change feed subscription and the reconciliation engine.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Load Client Identity
		clientID, err := identity.NewProvider(cfg.Identity).Load()
		if err != nil {
			logg.Fatal("Failed to load client identity", zap.Error(err))
		}
		logg = logg.With(zap.String("client_id", clientID))

		// 4. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Database connection failed", zap.Error(err))
		}
		logg.Info("Connected to database")

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		feedClient := feed.NewClient(cfg.Feed, logg)
		counterFeature := counter.NewFeature(cfg.Counter, db, feedClient, clientID, logg)
		mgr.Register(counterFeature)

		// Middleware Registration
		// RayID must be first to trace everything
		app.Use(rayid.New())

		// Logging Middleware (Zap + RayID)
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

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		counterFeature.Shutdown()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
