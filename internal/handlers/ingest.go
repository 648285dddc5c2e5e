package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"jyotishkb/internal/models"
	"jyotishkb/pkg/astro/knowledge"
)

// IngestHandler runs the full pipeline (component A-D) over an uploaded
// PDF, the HTTP face of ingest_book (spec.md §6).
type IngestHandler struct {
	knowledge *knowledge.Service
}

// NewIngestHandler builds an IngestHandler.
func NewIngestHandler(kb *knowledge.Service) *IngestHandler {
	return &IngestHandler{knowledge: kb}
}

// Ingest handles POST /api/v1/sources/:title/ingest, accepting a single
// multipart "file" field containing the PDF bytes. The source named in
// the path must already be registered.
func (h *IngestHandler) Ingest(c *fiber.Ctx) error {
	title := c.Params("title")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing \"file\" form field: "+err.Error())
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not open uploaded file: "+err.Error())
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not read uploaded file: "+err.Error())
	}

	report, err := h.knowledge.IngestBook(c.Context(), title, content)
	if err != nil {
		return err
	}
	return c.JSON(models.NewSuccessResponse(report))
}
