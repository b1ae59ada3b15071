// Command main is the entry point for the Tourit backend server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tourit/internal/config"
	"tourit/internal/database"
	"tourit/internal/observability"
	"tourit/internal/seed"
	"tourit/internal/server"
)

// @title Tourit API
// @version 1.0
// @description Tourism forum API with country-tagged posts, threaded comments and voting

// @contact.name API Support
// @contact.email support@tourit.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8460
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Distributed tracing (no-op provider when disabled)
	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:  "tourit-api",
		Enabled:      cfg.TracingEnabled,
		Exporter:     cfg.TracingExport,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SamplerRatio: cfg.TracingRatio,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	// Create server with dependency injection
	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Reference data must exist before the first request
	if err := seed.EnsureReferenceData(database.DB); err != nil {
		log.Fatalf("Failed to seed reference data: %v", err)
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("Tracing shutdown error: %v", err)
		}
	}()

	// Start server
	log.Fatal(srv.Start())
}
