// Command server exposes the knowledge pipeline's programmatic API
// (spec.md §6) over HTTP, the optional facade described in
// SPEC_FULL.md §10. The CLI front-end, YAML configuration loader, and
// chart tools named in spec.md §1 as external collaborators are
// expected to talk to this process rather than link the Go module
// directly, though linking pkg/astro/knowledge directly remains the
// supported in-process path.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"jyotishkb/internal/config"
	"jyotishkb/internal/handlers"
	"jyotishkb/internal/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[SERVER] no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[SERVER] configuration error: %v", err)
	}

	app := fiber.New(fiber.Config{
		ServerHeader: "jyotishkb",
		AppName:      "Jyotish Knowledge Base v1.0",
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} - ${latency}\n",
	}))
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With",
		AllowCredentials: true,
	}))

	h, err := handlers.New(cfg)
	if err != nil {
		log.Fatalf("[SERVER] failed to initialize handlers: %v", err)
	}
	defer h.Close()

	app.Get("/", h.Health.Root)
	app.Get("/health", h.Health.Health)

	api := app.Group("/api/v1")
	api.Post("/sources", h.Sources.Register)
	api.Get("/sources/:title/stats", h.Rules.Stats)
	api.Post("/sources/:title/ingest", h.Ingest.Ingest)

	api.Post("/rules/search", h.Rules.Search)
	api.Get("/rules/:id", h.Rules.Get)
	api.Get("/field-options", h.Rules.FieldOptions)

	api.Post("/correct", h.Correction.Run)

	api.Get("/export", h.Bundle.Export)
	api.Post("/import", h.Bundle.Import)

	port := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("[SERVER] starting on %s", port)

	go func() {
		if err := app.Listen(port); err != nil {
			log.Fatalf("[SERVER] listen failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("[SERVER] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("[SERVER] forced shutdown: %v", err)
	}
	log.Println("[SERVER] exited")
}
