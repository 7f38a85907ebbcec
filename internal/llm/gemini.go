package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/josephgoksu/FocusFlow/internal/task"
)

// contentGenerator is the part of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiClient calls the Gemini API directly.
type GeminiClient struct {
	models contentGenerator
}

var _ Client = (*GeminiClient)(nil)

// NewGeminiClient creates a Gemini API client for apiKey.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{models: client.Models}, nil
}

// GenerateStructured requests application/json output constrained by req.Schema.
func (c *GeminiClient) GenerateStructured(ctx context.Context, req StructuredRequest) (string, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema.toGenAI(),
	}
	return c.generate(ctx, req.Model, req.Prompt, cfg)
}

// GenerateText requests free-form text, optionally steered by a system instruction.
func (c *GeminiClient) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: req.Temperature,
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	return c.generate(ctx, req.Model, req.Prompt, cfg)
}

func (c *GeminiClient) generate(ctx context.Context, model, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	if model == "" {
		model = DefaultModelID(ProviderGemini, RolePlanner)
	}
	resp, err := c.models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if err != nil {
		return "", task.Transport("gemini "+model, err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}
