package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Afeez1131/invoice-parsers/config"
	httpDelivery "github.com/Afeez1131/invoice-parsers/internal/delivery/http"
	"github.com/Afeez1131/invoice-parsers/internal/infrastructure/ratelimit"
	"github.com/Afeez1131/invoice-parsers/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Invoice Parser API v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	limiterRegistry := ratelimit.NewMemoryRegistry(cfg.RateLimit.PerClientPerMinute, cfg.RateLimit.IdleTTL)
	log.Printf("Rate limit: %d requests/minute per client", cfg.RateLimit.PerClientPerMinute)

	// Initialize usecase layer
	parserService := usecase.NewParserService(usecase.ParserConfig{
		MinConfidence:      cfg.Parser.MinConfidence,
		EnableDebugLogging: cfg.Parser.EnableDebugLogging,
	})

	log.Printf("Parser: min_confidence=%.2f, debug=%v",
		cfg.Parser.MinConfidence, cfg.Parser.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(parserService, cfg.Limits)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, limiterRegistry)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
