package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"jyotishkb/internal/models"
	"jyotishkb/pkg/astro/knowledge"
	"jyotishkb/pkg/astro/model"
	"jyotishkb/pkg/astro/store"
)

// BundleHandler serves export/import_bundle (spec.md §6, §4.4 "Export").
type BundleHandler struct {
	knowledge *knowledge.Service
}

// NewBundleHandler builds a BundleHandler.
func NewBundleHandler(kb *knowledge.Service) *BundleHandler {
	return &BundleHandler{knowledge: kb}
}

// Export handles GET /api/v1/export, reading the same filter criteria
// as rules/search from individual query parameters (the teacher's
// SearchDocuments pattern, since Fiber's generic QueryParser doesn't
// know about this spec's snake_case filter names).
func (h *BundleHandler) Export(c *fiber.Ctx) error {
	filters := store.SearchFilters{
		Planet:      c.Query("planet"),
		Sign:        c.Query("sign"),
		SourceTitle: c.Query("source_title"),
		Category:    model.Category(c.Query("category")),
	}
	if house := c.Query("house"); house != "" {
		if v, err := strconv.Atoi(house); err == nil {
			filters.House = v
		}
	}
	if level := c.Query("authority_level"); level != "" {
		if v, err := strconv.Atoi(level); err == nil {
			filters.AuthorityLevel = model.AuthorityLevel(v)
		}
	}

	bundle, err := h.knowledge.Export(c.Context(), filters)
	if err != nil {
		return err
	}
	return c.JSON(bundle)
}

// importRequest is the body of POST /api/v1/import: the bundle to merge
// plus the merge strategy to apply.
type importRequest struct {
	Bundle        store.Bundle        `json:"bundle" validate:"required"`
	MergeStrategy store.MergeStrategy `json:"merge_strategy" validate:"required,oneof=replace append skip_duplicates"`
}

// Import handles POST /api/v1/import.
func (h *BundleHandler) Import(c *fiber.Ctx) error {
	var req importRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := models.ValidateStruct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	report, err := h.knowledge.ImportBundle(c.Context(), req.Bundle, req.MergeStrategy)
	if err != nil {
		return err
	}
	return c.JSON(models.NewSuccessResponse(report))
}
