package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/smartform/internal/config"
)

func NewClient(ctx context.Context, cfg config.LLMConfig) (LLMClient, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.Temperature), nil

	case "gemini":
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model, cfg.Temperature)

	case "claude":
		return NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.Temperature), nil

	case "ollama":
		// Ollama is reached through its OpenAI-compatible API.
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}

		// API Key is ignored by Ollama but required by client config
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		return NewOpenAIClient(apiKey, cfg.Model, baseURL, cfg.Temperature), nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
