package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.5-flash"

type GeminiClient struct {
	apiKey string
	model  string
}

func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiClient{
		apiKey: strings.TrimSpace(apiKey),
		model:  model,
	}
}

func (c *GeminiClient) Name() string { return "gemini" }

// Identify sends the identification prompt to Gemini. The model is asked
// for application/json output, which removes most of the fence-stripping
// work on the way back.
func (c *GeminiClient) Identify(ctx context.Context, plot string) (string, error) {
	cl, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(c.model)
	temp := float32(openAITemperature)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}

	resp, err := m.GenerateContent(ctx, genai.Text(BuildPrompt(plot)))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response from Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}

	return sb.String(), nil
}
