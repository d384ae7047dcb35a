package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Generator performs one generation round trip for a composed prompt. The
// orchestrator depends on this interface; tests substitute fakes.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// GeminiClient talks to the Gemini generateContent REST endpoint. One request
// per stage; no streaming, no retries.
type GeminiClient struct {
	APIKey          string
	Model           string
	BaseURL         string
	MaxOutputTokens int
	Temperature     float64
	ThinkingBudget  int
	HTTP            *http.Client
}

type geminiRequest struct {
	SystemInstruction *geminiContent `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64               `json:"temperature,omitempty"`
	MaxOutputTokens int                   `json:"maxOutputTokens,omitempty"`
	ThinkingConfig  *geminiThinkingConfig `json:"thinkingConfig,omitempty"`
}

type geminiThinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

func NewGeminiClient(cfg Config) *GeminiClient {
	model := cfg.Model
	if model == "" {
		model = "gemini-3-pro-preview"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	maxTokens := cfg.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = 8192
	}
	temp := cfg.Temperature
	if temp <= 0 {
		temp = 0.7
	}
	return &GeminiClient{
		APIKey:          cfg.GeminiAPIKey,
		Model:           model,
		BaseURL:         baseURL,
		MaxOutputTokens: maxTokens,
		Temperature:     temp,
		ThinkingBudget:  cfg.ThinkingBudget,
		HTTP:            &http.Client{Timeout: 180 * time.Second},
	}
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.APIKey == "mock" || c.BaseURL == "mock://" {
		return mockGenerate(prompt), nil
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return "", ErrCredentialsMissing
	}

	reqBody := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: SystemInstruction}}},
		Contents:          []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenConfig{
			Temperature:     c.Temperature,
			MaxOutputTokens: c.MaxOutputTokens,
		},
	}
	if c.ThinkingBudget > 0 {
		reqBody.GenerationConfig.ThinkingConfig = &geminiThinkingConfig{ThinkingBudget: c.ThinkingBudget}
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(c.BaseURL, "/"), c.Model)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("x-goog-api-key", c.APIKey)

	resp, err := c.HTTP.Do(request)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", fmt.Errorf("gemini status %d: %w", resp.StatusCode, ErrAuthFailed)
	}
	if resp.StatusCode >= 300 {
		var errResp geminiResponse
		_ = json.Unmarshal(bodyBytes, &errResp)
		if errResp.Error != nil {
			if errResp.Error.Status == "UNAUTHENTICATED" || errResp.Error.Status == "PERMISSION_DENIED" {
				return "", fmt.Errorf("gemini: %s: %w", errResp.Error.Message, ErrAuthFailed)
			}
			return "", fmt.Errorf("gemini api error: status %d, message: %s", resp.StatusCode, errResp.Error.Message)
		}
		return "", fmt.Errorf("gemini api error: status %d, response: %s", resp.StatusCode, string(bodyBytes))
	}

	var genResp geminiResponse
	if err := json.Unmarshal(bodyBytes, &genResp); err != nil {
		return "", fmt.Errorf("parse gemini response: %w", err)
	}
	if genResp.Error != nil {
		return "", fmt.Errorf("gemini api error: %s", genResp.Error.Message)
	}
	for _, cand := range genResp.Candidates {
		var b strings.Builder
		for _, part := range cand.Content.Parts {
			b.WriteString(part.Text)
		}
		if text := strings.TrimSpace(b.String()); text != "" {
			return text, nil
		}
	}
	return "", fmt.Errorf("gemini returned no text: %s", string(bodyBytes))
}

// mockGenerate returns deterministic per-stage text. The section header in
// each composed prompt identifies the stage.
func mockGenerate(prompt string) string {
	for i := 1; i <= StageCount; i++ {
		tag := fmt.Sprintf("[PART %d]", i)
		if strings.Contains(prompt, tag) {
			stage := StageAt(i - 1)
			return fmt.Sprintf("mock %s output", stage.Slot)
		}
	}
	return "mock output"
}
