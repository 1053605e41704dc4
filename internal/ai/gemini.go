package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/observability"
)

// GeminiClient implements Completer using Google's Gemini models.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)

	// The matching prompt mandates a tagged plain-text output, so the
	// response stays in text mode; the parser downstream owns the contract.
	model.SetTemperature(0.4)

	return &GeminiClient{client: client, model: model}, nil
}

// Close cleans up the Gemini client resources.
func (c *GeminiClient) Close() {
	c.client.Close()
}

// Complete sends the prompt and concatenates the text parts of the first
// candidate. No retry and no backoff: provider errors propagate to the
// caller, which decides whether to skip the item or surface the failure.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	observability.AICallsTotal.Inc()

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		observability.AIErrors.Inc()
		return "", fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		observability.AIErrors.Inc()
		return "", fmt.Errorf("no response candidates from Gemini")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	return text.String(), nil
}
