package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "revendapro/docs"
	"revendapro/internal/adapters/http/middleware"
	"revendapro/internal/adapters/http/routes"
	"revendapro/internal/adapters/persistence/models"
	"revendapro/internal/config"

	"github.com/gofiber/fiber/v2"
)

// @title RevendaPro API
// @version 1.0
// @description Dealership back-office: financing valuation, payment gateway and WhatsApp messaging
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if err := config.ConnectDatabase(cfg); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	if err := models.AutoMigrate(config.DB); err != nil {
		log.Fatalf("❌ Failed to migrate database: %v", err)
	}
	log.Println("✅ Database migration completed")

	if err := config.SeedDatabase(config.DB); err != nil {
		log.Fatalf("❌ Failed to seed database: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "RevendaPro API",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	middleware.Setup(app, cfg)
	svcs := routes.Setup(app, config.DB, cfg)

	if err := svcs.Cron.Start(); err != nil {
		log.Fatalf("❌ Failed to start cron scheduler: %v", err)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("🛑 Shutting down server...")
		svcs.Cron.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server shutdown error: %v", err)
		}
	}()

	log.Printf("🚀 RevendaPro API listening on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server error: %v", err)
	}

	log.Println("✅ Server stopped")
}
