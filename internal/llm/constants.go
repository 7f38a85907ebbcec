package llm

import "fmt"

// Provider identifies the LLM provider to use.
type Provider string

// Provider constants
const (
	// ProviderGemini represents the Google Gemini provider (google.golang.org/genai)
	ProviderGemini Provider = "gemini"

	// ProviderOpenAI represents the OpenAI provider
	ProviderOpenAI Provider = "openai"

	// ProviderAnthropic represents the Anthropic provider
	ProviderAnthropic Provider = "anthropic"

	// ProviderOllama represents a local Ollama server
	ProviderOllama Provider = "ollama"

	// DefaultProvider is the provider used when none is configured
	DefaultProvider = ProviderGemini
)

// DefaultOllamaURL is the default URL for Ollama server
const DefaultOllamaURL = "http://localhost:11434"

// Role is the job a model is picked for.
type Role string

const (
	// RolePlanner covers structured generation: timetables, breakdowns and one-line tips.
	RolePlanner Role = "planner"
	// RoleAdvisor covers long-form prioritization advice.
	RoleAdvisor Role = "advisor"
)

// APIKeyEnvVars lists the environment variables checked for each provider's key, in order.
var APIKeyEnvVars = map[Provider][]string{
	ProviderGemini:    {"GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY"},
	ProviderOpenAI:    {"OPENAI_API_KEY"},
	ProviderAnthropic: {"ANTHROPIC_API_KEY"},
}

// ValidateProvider checks if the given provider string is supported.
func ValidateProvider(p string) (Provider, error) {
	switch Provider(p) {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOllama:
		return Provider(p), nil
	default:
		return "", fmt.Errorf("unsupported provider: %s (supported: gemini, openai, anthropic, ollama)", p)
	}
}

// RequiresAPIKey reports whether the provider needs a key to make requests.
func (p Provider) RequiresAPIKey() bool {
	return p != ProviderOllama
}
