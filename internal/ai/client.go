package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/nichenav/nichenav-api/internal/models"
)

// Generator is the boundary to the generative model. The model
// configuration travels with every call so runtime setting changes take
// effect without process-wide mutable state. Tests substitute a stub.
type Generator interface {
	GenerateText(ctx context.Context, setting *models.AISetting, prompt string) (string, error)
}

// GeminiClient calls the Gemini API through the official SDK
type GeminiClient struct {
	client *genai.Client
	apiKey string
}

// NewGeminiClient creates a client bound to the configured API key
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, apiKey: apiKey}, nil
}

// Close releases the underlying connection
func (g *GeminiClient) Close() {
	g.client.Close()
}

// GenerateText sends a single prompt and returns the raw response text.
// One request per user action, awaited sequentially; no retry is attempted
// here, the caller surfaces a generic failure and the user resubmits.
func (g *GeminiClient) GenerateText(ctx context.Context, setting *models.AISetting, prompt string) (string, error) {
	client := g.client

	// Admins may rotate the API key at runtime; an override in the setting
	// gets a dedicated client for this call only.
	if setting.APIKey != "" && setting.APIKey != g.apiKey {
		override, err := genai.NewClient(ctx, option.WithAPIKey(setting.APIKey))
		if err != nil {
			return "", fmt.Errorf("failed to create Gemini client: %w", err)
		}
		defer override.Close()
		client = override
	}

	model := client.GenerativeModel(setting.ModelName)
	model.SetTemperature(setting.Temperature)
	model.SetTopP(setting.TopP)
	model.SetTopK(setting.TopK)
	model.SetMaxOutputTokens(setting.MaxOutputTokens)
	if setting.SystemInstruction != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(setting.SystemInstruction)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	return sb.String(), nil
}
