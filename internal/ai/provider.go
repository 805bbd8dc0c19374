package ai

import (
	"context"
	"fmt"
)

// Provider turns a plot description into raw model output. The caller is
// responsible for parsing the output into a structured result.
type Provider interface {
	Identify(ctx context.Context, plot string) (string, error)
	Name() string
}

type Config struct {
	Provider      string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiAPIKey  string
	GeminiModel   string
}

// NewProvider selects the configured LLM backend. OpenAI is the default.
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "", "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
		return NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}
