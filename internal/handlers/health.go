package handlers

import (
	"github.com/gofiber/fiber/v2"

	"jyotishkb/pkg/astro/knowledge"
	"jyotishkb/pkg/astro/store"
)

// HealthHandler reports process liveness and store connectivity,
// mirroring the teacher's root/health handlers.
type HealthHandler struct {
	knowledge *knowledge.Service
	store     *store.Store
}

// NewHealthHandler builds a HealthHandler.
func NewHealthHandler(kb *knowledge.Service, st *store.Store) *HealthHandler {
	return &HealthHandler{knowledge: kb, store: st}
}

// Root handles GET /.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "jyotishkb",
		"status":  "ok",
	})
}

// Health handles GET /health, reporting store reachability and the
// process-lifetime pipeline counters (SPEC_FULL.md §12).
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	_, err := h.store.ListSources(c.Context())
	storeHealthy := err == nil

	return c.JSON(fiber.Map{
		"status":  map[bool]string{true: "healthy", false: "degraded"}[storeHealthy],
		"store":   storeHealthy,
		"metrics": h.knowledge.Metrics(),
	})
}
