package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/llm"
)

// Generator implements llm.Generator on top of the Gemini API
type Generator struct {
	apiKey string
	model  string
}

// NewGenerator creates a Gemini generator
func NewGenerator(apiKey, model string) *Generator {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Generator{apiKey: apiKey, model: model}
}

// Name returns the generator identifier
func (g *Generator) Name() string {
	return "gemini"
}

// IsConfigured checks if the generator has an API key
func (g *Generator) IsConfigured() bool {
	return g.apiKey != ""
}

// Generate phrases the reply with Gemini
func (g *Generator) Generate(ctx context.Context, req llm.Request) (string, error) {
	if !g.IsConfigured() {
		return "", fmt.Errorf("gemini generator is not configured (missing API key)")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	var temperature float32 = 0.4
	model.Temperature = &temperature

	resp, err := model.GenerateContent(ctx, genai.Text(llm.BuildPrompt(req)))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned an empty response")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("gemini returned a non-text part")
	}

	return string(text), nil
}
