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

// OpenAIConfig configures the OpenAI fallback provider.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type openAIProvider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIProvider constructs a Provider backed by the OpenAI chat
// completions API.
func NewOpenAIProvider(cfg OpenAIConfig) Provider {
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	return &openAIProvider{
		apiKey:     cfg.APIKey,
		model:      model,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *openAIProvider) ModelID() string    { return p.model }
func (p *openAIProvider) IsConfigured() bool { return p.apiKey != "" && p.model != "" }

type openAIChatRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *openAIProvider) CorrectBatch(ctx context.Context, items []BatchItem, temperature float64) ([]ProviderCorrection, error) {
	if !p.IsConfigured() {
		return nil, model.NewModelUnavailable(p.model, fmt.Errorf("openai provider not configured"))
	}

	reqBody := openAIChatRequest{
		Model: p.model,
		Messages: []openAIMessage{
			{Role: "user", Content: buildPrompt(items)},
		},
		Temperature: temperature,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("corrector: marshal openai request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("corrector: build openai request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, model.NewModelUnavailable(p.model, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("corrector: read openai response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, model.NewModelUnavailable(p.model, fmt.Errorf("openai returned status %d: %s", resp.StatusCode, string(body)))
	}

	var chatResp openAIChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("corrector: unmarshal openai response: %w", err)
	}
	if chatResp.Error != nil {
		return nil, model.NewModelUnavailable(p.model, fmt.Errorf("openai error: %s", chatResp.Error.Message))
	}
	if len(chatResp.Choices) == 0 {
		return nil, model.NewModelUnavailable(p.model, fmt.Errorf("no choices returned from openai"))
	}

	return parseProviderCorrections(chatResp.Choices[0].Message.Content, len(items))
}
