package handlers

import (
	"github.com/gofiber/fiber/v2"

	"jyotishkb/internal/models"
	"jyotishkb/pkg/astro/knowledge"
	"jyotishkb/pkg/astro/model"
)

// SourceHandler manages source-book registration, the HTTP face of
// component E, the Source Registry.
type SourceHandler struct {
	knowledge *knowledge.Service
}

// NewSourceHandler builds a SourceHandler.
func NewSourceHandler(kb *knowledge.Service) *SourceHandler {
	return &SourceHandler{knowledge: kb}
}

// Register handles POST /api/v1/sources.
func (h *SourceHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterSourceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := models.ValidateStruct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	src, err := h.knowledge.RegisterSource(c.Context(), req.Title, req.Author, model.AuthorityLevel(req.AuthorityLevel))
	if err != nil {
		return err
	}
	return c.JSON(models.NewSuccessResponse(src))
}
