// Package middleware holds the HTTP facade's cross-cutting concerns:
// centralized error translation and panic recovery, matching the
// teacher's internal/middleware package.
package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"jyotishkb/internal/models"
	"jyotishkb/pkg/astro/model"
)

// ErrorHandler maps pipeline errors (spec.md §6's error surface) to HTTP
// status codes. Unlike the teacher's keyword-sniffing handleError (which
// has no typed domain errors to dispatch on), this pipeline's errors are
// already concrete Go types, so dispatch is errors.As, not string
// matching — the natural adaptation of the teacher's pattern once the
// domain errors are typed (see DESIGN.md, "Exception-driven extraction →
// result types").
func ErrorHandler(c *fiber.Ctx, err error) error {
	log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)

	var ingestErr *model.IngestError
	var unknownSource *model.UnknownSource
	var sourceConflict *model.SourceConflict
	var validationErr *model.ValidationError
	var duplicateRule *model.DuplicateRule
	var modelUnavailable *model.ModelUnavailable
	var correctionRejected *model.CorrectionRejected
	var notFound *model.NotFound
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &ingestErr):
		return respond(c, fiber.StatusUnprocessableEntity, "ingest_error", err)
	case errors.As(err, &unknownSource):
		return respond(c, fiber.StatusBadRequest, "unknown_source", err)
	case errors.As(err, &sourceConflict):
		return respond(c, fiber.StatusConflict, "source_conflict", err)
	case errors.As(err, &validationErr):
		return respond(c, fiber.StatusBadRequest, "validation_error", err)
	case errors.As(err, &duplicateRule):
		return respond(c, fiber.StatusConflict, "duplicate_rule", err)
	case errors.As(err, &modelUnavailable):
		return respond(c, fiber.StatusServiceUnavailable, "model_unavailable", err)
	case errors.As(err, &correctionRejected):
		return respond(c, fiber.StatusUnprocessableEntity, "correction_rejected", err)
	case errors.As(err, &notFound):
		return respond(c, fiber.StatusNotFound, "not_found", err)
	case errors.As(err, &fiberErr):
		return respond(c, fiberErr.Code, "bad_request", err)
	default:
		return respond(c, fiber.StatusInternalServerError, "internal_server_error", err)
	}
}

func respond(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(models.NewErrorResponse(code, err.Error(), nil))
}
