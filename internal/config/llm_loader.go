package config

import (
	"os"
	"strings"

	"github.com/josephgoksu/FocusFlow/internal/llm"
)

// ResolveAPIKey returns the best API key for the configured provider using
// the per-provider config key, then llm.apiKey, then the provider's env vars.
func ResolveAPIKey(c LLMConfig) string {
	provider := llm.Provider(c.Provider)

	for name, key := range c.APIKeys {
		if strings.EqualFold(name, c.Provider) && strings.TrimSpace(key) != "" {
			return strings.TrimSpace(key)
		}
	}
	if key := strings.TrimSpace(c.APIKey); key != "" {
		return key
	}
	return providerEnvKey(provider)
}

func providerEnvKey(provider llm.Provider) string {
	for _, name := range llm.APIKeyEnvVars[provider] {
		if key := strings.TrimSpace(os.Getenv(name)); key != "" {
			return key
		}
	}
	return ""
}

// ClientConfig returns the settings llm.NewClient needs.
func (c LLMConfig) ClientConfig() llm.Config {
	return llm.Config{
		Provider: llm.Provider(c.Provider),
		APIKey:   c.APIKey,
		BaseURL:  c.BaseURL,
	}
}
