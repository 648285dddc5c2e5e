// Package handlers adapts the knowledge package's programmatic API
// (spec.md §6) onto HTTP, the way the teacher's internal/handlers
// adapts its processing/search/storage services. Every handler is a
// thin translation layer: request parsing, a call into
// pkg/astro/knowledge, response envelope. No pipeline invariant is
// enforced here.
package handlers

import (
	"context"
	"fmt"
	"log"

	"jyotishkb/internal/config"
	"jyotishkb/pkg/astro/corrector"
	"jyotishkb/pkg/astro/document"
	"jyotishkb/pkg/astro/extractor"
	"jyotishkb/pkg/astro/knowledge"
	"jyotishkb/pkg/astro/lexicon"
	"jyotishkb/pkg/astro/storage"
	"jyotishkb/pkg/astro/store"
)

// Handlers groups every HTTP handler family the server exposes,
// mirroring the teacher's handlers.Handlers aggregate.
type Handlers struct {
	Health      *HealthHandler
	Sources     *SourceHandler
	Rules       *RuleHandler
	Ingest      *IngestHandler
	Correction  *CorrectionHandler
	Bundle      *BundleHandler
	knowledge   *knowledge.Service
	store       *store.Store
}

// New builds the full pipeline (store, document processor, extractor,
// corrector provider chain, optional archiver) from cfg and wraps it in
// HTTP handlers, the way the teacher's handlers.New wires its services.
func New(cfg *config.Config) (*Handlers, error) {
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("handlers: open store: %w", err)
	}

	lex := lexicon.Default()
	docs := document.NewService(lex)
	ext := extractor.NewService(lex)

	corrSvc := corrector.NewService(selectProvider(cfg), corrector.Config{
		BatchSize:    cfg.AI.BatchSize,
		BatchTimeout: cfg.AI.BatchTimeout,
		Temperature:  cfg.AI.Temperature,
	})

	kb := knowledge.New(st, docs, ext, corrSvc)

	if archiver, err := buildArchiver(cfg); err != nil {
		// Archiving is a convenience (SPEC_FULL.md §11); a misconfigured
		// backend degrades ingest_book to "no archive copy", not failure.
		log.Printf("[HANDLERS] archiver unavailable, ingest will not archive source bytes: %v", err)
	} else {
		kb.SetArchiver(archiver)
	}

	return &Handlers{
		Health:     NewHealthHandler(kb, st),
		Sources:    NewSourceHandler(kb),
		Rules:      NewRuleHandler(kb),
		Ingest:     NewIngestHandler(kb),
		Correction: NewCorrectionHandler(kb, cfg),
		Bundle:     NewBundleHandler(kb),
		knowledge:  kb,
		store:      st,
	}, nil
}

// Close releases the underlying store's resources.
func (h *Handlers) Close() error {
	return h.store.Close()
}

// selectProvider picks the LLM Corrector's provider the way the
// teacher's classifier.NewService switches on a configured provider
// name: Ollama is primary per spec.md's "local-LLM" framing.
// NewOllamaProvider fills in a default base URL and model, so its
// IsConfigured is always true and Ollama is always returned; the OpenAI,
// Claude and mock branches below are not reached. A failed Ollama call
// does not fall over to another provider.
func selectProvider(cfg *config.Config) corrector.Provider {
	ollama := corrector.NewOllamaProvider(corrector.OllamaConfig{
		BaseURL: cfg.AI.Ollama.BaseURL,
		Model:   cfg.AI.Ollama.Model,
		Timeout: cfg.AI.Ollama.Timeout,
	})
	if ollama.IsConfigured() {
		return ollama
	}
	if cfg.AI.OpenAI.APIKey != "" {
		return corrector.NewOpenAIProvider(corrector.OpenAIConfig{
			APIKey: cfg.AI.OpenAI.APIKey,
			Model:  cfg.AI.OpenAI.Model,
		})
	}
	if cfg.AI.Claude.APIKey != "" {
		return corrector.NewClaudeProvider(corrector.ClaudeConfig{
			APIKey:  cfg.AI.Claude.APIKey,
			Model:   cfg.AI.Claude.Model,
			BaseURL: cfg.AI.Claude.BaseURL,
		})
	}
	return corrector.NewMockProvider()
}

func buildArchiver(cfg *config.Config) (storage.Archiver, error) {
	switch cfg.Storage.Backend {
	case "spaces":
		return storage.NewSpaces(context.Background(), storage.SpacesConfig{
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			Endpoint:  fmt.Sprintf("https://%s.digitaloceanspaces.com", cfg.Storage.Region),
		})
	default:
		return storage.NewLocal("./data/archive")
	}
}
