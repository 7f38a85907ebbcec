// Package llm provides a provider-agnostic client for the generative model calls
// focusflow makes: structured generation against a response schema, and free-form text.
//
// Gemini is reached through google.golang.org/genai with the schema enforced by the
// service. OpenAI, Anthropic and Ollama go through CloudWeGo Eino chat models; for
// those the schema is written into the prompt and the caller extracts the JSON.
package llm

import (
	"context"
	"fmt"
)

// StructuredRequest asks for JSON matching Schema.
type StructuredRequest struct {
	Model  string
	Prompt string
	Schema *Schema
}

// TextRequest asks for free-form text.
type TextRequest struct {
	Model             string
	Prompt            string
	SystemInstruction string
	Temperature       *float32
}

// Client performs single, non-streaming model calls. Implementations return
// *task.TransportError when the provider cannot be reached or rejects the call.
// The returned text is the raw model output.
type Client interface {
	GenerateStructured(ctx context.Context, req StructuredRequest) (string, error)
	GenerateText(ctx context.Context, req TextRequest) (string, error)
}

// Config holds configuration for creating a Client.
type Config struct {
	Provider Provider
	APIKey   string // Required for every provider except Ollama
	BaseURL  string // Ollama server (default: http://localhost:11434) or an OpenAI-compatible endpoint
}

// NewClient creates a Client for the configured provider.
func NewClient(ctx context.Context, cfg Config) (Client, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = DefaultProvider
	}
	if _, err := ValidateProvider(string(provider)); err != nil {
		return nil, err
	}
	if provider.RequiresAPIKey() && cfg.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", provider)
	}

	switch provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg.APIKey)
	default:
		return NewEinoClient(cfg), nil
	}
}

// Float32 returns a pointer to v, for TextRequest.Temperature.
func Float32(v float32) *float32 { return &v }
