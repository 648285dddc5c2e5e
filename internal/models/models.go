// Package models defines the HTTP facade's request/response DTOs,
// separate from pkg/astro/model so the domain entities never carry
// transport-level validation tags, mirroring the teacher's split
// between internal/models (API envelopes) and pkg/models (document
// metadata).
package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs struct-tag validation, matching the teacher's
// internal/models.ValidateStruct helper.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// APIResponse is the uniform envelope every handler returns, matching
// the teacher's models.APIResponse shape.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id,omitempty"`
}

// APIError carries a machine-readable code plus a human message.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewErrorResponse builds an error envelope, mirroring the teacher's
// models.NewErrorResponse constructor.
func NewErrorResponse(code, message string, details map[string]interface{}) *APIResponse {
	return &APIResponse{
		Success:   false,
		Timestamp: time.Now(),
		Error:     &APIError{Code: code, Message: message, Details: details},
	}
}

// NewSuccessResponse builds a success envelope around data.
func NewSuccessResponse(data interface{}) *APIResponse {
	return &APIResponse{Success: true, Data: data, Timestamp: time.Now()}
}

// RegisterSourceRequest is the body of POST /api/v1/sources.
type RegisterSourceRequest struct {
	Title          string `json:"title" validate:"required"`
	Author         string `json:"author"`
	AuthorityLevel int    `json:"authority_level" validate:"required,oneof=1 2 3"`
}

// SearchRequest is the body of POST /api/v1/rules/search, covering the
// full filter surface of spec.md §4.4.
type SearchRequest struct {
	Planet           string   `json:"planet"`
	House            int      `json:"house" validate:"omitempty,min=1,max=12"`
	Sign             string   `json:"sign"`
	Nakshatra        string   `json:"nakshatra"`
	Ascendant        string   `json:"ascendant"`
	LordOf           int      `json:"lord_of" validate:"omitempty,min=1,max=12"`
	SourceTitle      string   `json:"source_title"`
	AuthorityLevel   int      `json:"authority_level" validate:"omitempty,oneof=1 2 3"`
	Category         string   `json:"category"`
	Tags             []string `json:"tags"`
	MinConfidence    float64  `json:"min_confidence" validate:"omitempty,min=0,max=1"`
	MaxConfidence    float64  `json:"max_confidence" validate:"omitempty,min=0,max=1"`
	EffectContains   string   `json:"effect_contains"`
	ExtractionMethod string   `json:"extraction_method"`
	OrderBy          string   `json:"order_by" validate:"omitempty,oneof=relevance confidence authority created_at"`
	Limit            int      `json:"limit" validate:"omitempty,min=1,max=500"`
	Offset           int      `json:"offset" validate:"omitempty,min=0"`
}

// CorrectRequest is the body of POST /api/v1/correct, scoping which
// pending rules to submit to the LLM Corrector.
type CorrectRequest struct {
	SourceTitle string `json:"source_title"`
	BatchSize   int    `json:"batch_size" validate:"omitempty,min=1,max=50"`
}
