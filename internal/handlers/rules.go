package handlers

import (
	"github.com/gofiber/fiber/v2"

	"jyotishkb/internal/models"
	"jyotishkb/pkg/astro/knowledge"
	"jyotishkb/pkg/astro/model"
	"jyotishkb/pkg/astro/store"
)

// RuleHandler serves the Knowledge Store's read path (spec.md §4.4):
// multi-criteria search, single-rule lookup, and the field-options/stats
// conveniences (SPEC_FULL.md §12).
type RuleHandler struct {
	knowledge *knowledge.Service
}

// NewRuleHandler builds a RuleHandler.
func NewRuleHandler(kb *knowledge.Service) *RuleHandler {
	return &RuleHandler{knowledge: kb}
}

// Search handles POST /api/v1/rules/search.
func (h *RuleHandler) Search(c *fiber.Ctx) error {
	var req models.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := models.ValidateStruct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	filters := store.SearchFilters{
		Planet:           req.Planet,
		House:            req.House,
		Sign:             req.Sign,
		Nakshatra:        req.Nakshatra,
		Ascendant:        req.Ascendant,
		LordOf:           req.LordOf,
		SourceTitle:      req.SourceTitle,
		AuthorityLevel:   model.AuthorityLevel(req.AuthorityLevel),
		Category:         model.Category(req.Category),
		Tags:             req.Tags,
		MinConfidence:    req.MinConfidence,
		MaxConfidence:    req.MaxConfidence,
		EffectContains:   req.EffectContains,
		ExtractionMethod: req.ExtractionMethod,
		OrderBy:          store.OrderBy(req.OrderBy),
		Limit:            req.Limit,
		Offset:           req.Offset,
	}

	rules, err := h.knowledge.Search(c.Context(), filters)
	if err != nil {
		return err
	}
	return c.JSON(models.NewSuccessResponse(fiber.Map{
		"rules": rules,
		"count": len(rules),
	}))
}

// Get handles GET /api/v1/rules/:id.
func (h *RuleHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	rule, err := h.knowledge.GetRule(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(models.NewSuccessResponse(rule))
}

// FieldOptions handles GET /api/v1/field-options.
func (h *RuleHandler) FieldOptions(c *fiber.Ctx) error {
	opts, err := h.knowledge.FieldOptions(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(models.NewSuccessResponse(opts))
}

// Stats handles GET /api/v1/sources/:title/stats.
func (h *RuleHandler) Stats(c *fiber.Ctx) error {
	title := c.Params("title")
	stats, err := h.knowledge.Stats(c.Context(), title)
	if err != nil {
		return err
	}
	return c.JSON(models.NewSuccessResponse(stats))
}
