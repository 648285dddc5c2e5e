package corrector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"jyotishkb/pkg/astro/model"
)

// OllamaConfig configures the local-model provider, the primary provider
// per spec.md's "local-LLM" framing.
type OllamaConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

type ollamaProvider struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewOllamaProvider constructs a Provider backed by a local Ollama server.
func NewOllamaProvider(cfg OllamaConfig) Provider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-oss:20b"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &ollamaProvider{
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (o *ollamaProvider) ModelID() string      { return o.model }
func (o *ollamaProvider) IsConfigured() bool   { return o.baseURL != "" && o.model != "" }

type ollamaGenerateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// CorrectBatch submits the batch as a single non-streaming Ollama
// generate call and parses the JSON-array response.
func (o *ollamaProvider) CorrectBatch(ctx context.Context, items []BatchItem, temperature float64) ([]ProviderCorrection, error) {
	if !o.IsConfigured() {
		return nil, model.NewModelUnavailable(o.model, fmt.Errorf("ollama provider not configured"))
	}

	reqBody := ollamaGenerateRequest{
		Model:       o.model,
		Prompt:      buildPrompt(items),
		Stream:      false,
		Temperature: temperature,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("corrector: marshal ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("corrector: build ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, model.NewModelUnavailable(o.model, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("corrector: read ollama response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, model.NewModelUnavailable(o.model, fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(body)))
	}

	var gen ollamaGenerateResponse
	if err := json.Unmarshal(body, &gen); err != nil {
		return nil, fmt.Errorf("corrector: unmarshal ollama response: %w", err)
	}
	if gen.Error != "" {
		return nil, model.NewModelUnavailable(o.model, fmt.Errorf("ollama error: %s", gen.Error))
	}
	if !gen.Done {
		return nil, model.NewModelUnavailable(o.model, fmt.Errorf("ollama response not complete"))
	}

	return parseProviderCorrections(gen.Response, len(items))
}

// parseProviderCorrections extracts and decodes the JSON array all three
// providers are instructed to return.
func parseProviderCorrections(response string, wantCount int) ([]ProviderCorrection, error) {
	arr, ok := extractJSONArray(response)
	if !ok {
		return nil, fmt.Errorf("corrector: no JSON array found in model response")
	}

	var raw []struct {
		CorrectedText string   `json:"corrected_text"`
		Confidence    float64  `json:"confidence"`
		FixesApplied  []string `json:"fixes_applied"`
	}
	if err := json.Unmarshal([]byte(arr), &raw); err != nil {
		return nil, fmt.Errorf("corrector: parse model response: %w", err)
	}
	if len(raw) != wantCount {
		return nil, fmt.Errorf("corrector: model returned %d corrections, wanted %d", len(raw), wantCount)
	}

	out := make([]ProviderCorrection, len(raw))
	for i, r := range raw {
		tags := make([]model.FixTag, 0, len(r.FixesApplied))
		for _, t := range r.FixesApplied {
			tags = append(tags, model.FixTag(t))
		}
		out[i] = ProviderCorrection{
			CorrectedText: r.CorrectedText,
			Confidence:    r.Confidence,
			FixesApplied:  tags,
		}
	}
	return out, nil
}
