package handlers

import (
	"github.com/gofiber/fiber/v2"

	"jyotishkb/internal/config"
	"jyotishkb/internal/models"
	"jyotishkb/pkg/astro/knowledge"
	"jyotishkb/pkg/astro/store"
)

// CorrectionHandler triggers the LLM Corrector (component C) over
// pending rules, the HTTP face of correct_pending (spec.md §6).
type CorrectionHandler struct {
	knowledge *knowledge.Service
	cfg       *config.Config
}

// NewCorrectionHandler builds a CorrectionHandler.
func NewCorrectionHandler(kb *knowledge.Service, cfg *config.Config) *CorrectionHandler {
	return &CorrectionHandler{knowledge: kb, cfg: cfg}
}

// Run handles POST /api/v1/correct.
func (h *CorrectionHandler) Run(c *fiber.Ctx) error {
	var req models.CorrectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := models.ValidateStruct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	filters := store.SearchFilters{SourceTitle: req.SourceTitle}
	if req.BatchSize > 0 {
		filters.Limit = req.BatchSize
	}

	report, err := h.knowledge.CorrectPending(c.Context(), filters)
	if err != nil {
		return err
	}
	return c.JSON(models.NewSuccessResponse(report))
}
