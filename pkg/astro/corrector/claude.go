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

// ClaudeConfig configures the Claude fallback provider.
type ClaudeConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type claudeProvider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClaudeProvider constructs a Provider backed by Claude's messages API.
func NewClaudeProvider(cfg ClaudeConfig) Provider {
	model := cfg.Model
	if model == "" {
		model = "claude-3-5-sonnet-20241022"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}
	return &claudeProvider{
		apiKey:     cfg.APIKey,
		model:      model,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *claudeProvider) ModelID() string    { return p.model }
func (p *claudeProvider) IsConfigured() bool { return p.apiKey != "" && p.model != "" }

type claudeMessageRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
	Messages    []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeMessageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *claudeProvider) CorrectBatch(ctx context.Context, items []BatchItem, temperature float64) ([]ProviderCorrection, error) {
	if !p.IsConfigured() {
		return nil, model.NewModelUnavailable(p.model, fmt.Errorf("claude provider not configured"))
	}

	reqBody := claudeMessageRequest{
		Model:       p.model,
		MaxTokens:   2000,
		Temperature: temperature,
		Messages: []claudeMessage{
			{Role: "user", Content: buildPrompt(items)},
		},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("corrector: marshal claude request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/messages", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("corrector: build claude request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, model.NewModelUnavailable(p.model, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("corrector: read claude response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, model.NewModelUnavailable(p.model, fmt.Errorf("claude returned status %d: %s", resp.StatusCode, string(body)))
	}

	var msgResp claudeMessageResponse
	if err := json.Unmarshal(body, &msgResp); err != nil {
		return nil, fmt.Errorf("corrector: unmarshal claude response: %w", err)
	}
	if msgResp.Error != nil {
		return nil, model.NewModelUnavailable(p.model, fmt.Errorf("claude error: %s", msgResp.Error.Message))
	}
	if len(msgResp.Content) == 0 {
		return nil, model.NewModelUnavailable(p.model, fmt.Errorf("no content returned from claude"))
	}

	return parseProviderCorrections(msgResp.Content[0].Text, len(items))
}
