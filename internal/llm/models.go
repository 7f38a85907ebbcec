package llm

import "sort"

// Model is one entry in the model registry.
type Model struct {
	ID         string   // Canonical model ID (e.g., "gemini-3-flash-preview")
	Provider   string   // Provider display name (e.g., "Google")
	ProviderID Provider // Internal provider ID
	Aliases    []string // Alternative IDs including dated versions
	DefaultFor []Role   // Roles this model is the provider default for
}

// ModelRegistry lists the models known to focusflow. Any other model ID is still
// accepted; the registry only supplies defaults and provider inference.
var ModelRegistry = []Model{
	// Google
	{
		ID:         "gemini-3-flash-preview",
		Provider:   "Google",
		ProviderID: ProviderGemini,
		DefaultFor: []Role{RolePlanner},
	},
	{
		ID:         "gemini-3-pro-preview",
		Provider:   "Google",
		ProviderID: ProviderGemini,
		DefaultFor: []Role{RoleAdvisor},
	},
	{ID: "gemini-2.5-flash", Provider: "Google", ProviderID: ProviderGemini},
	{ID: "gemini-2.5-pro", Provider: "Google", ProviderID: ProviderGemini},

	// OpenAI
	{
		ID:         "gpt-5-mini",
		Provider:   "OpenAI",
		ProviderID: ProviderOpenAI,
		Aliases:    []string{"gpt-5-mini-2025-08-07"},
		DefaultFor: []Role{RolePlanner},
	},
	{
		ID:         "gpt-5.1",
		Provider:   "OpenAI",
		ProviderID: ProviderOpenAI,
		DefaultFor: []Role{RoleAdvisor},
	},
	{ID: "gpt-4o-mini", Provider: "OpenAI", ProviderID: ProviderOpenAI, Aliases: []string{"gpt-4o-mini-2024-07-18"}},

	// Anthropic
	{
		ID:         "claude-3-5-haiku-latest",
		Provider:   "Anthropic",
		ProviderID: ProviderAnthropic,
		Aliases:    []string{"claude-3-5-haiku-20241022"},
		DefaultFor: []Role{RolePlanner},
	},
	{
		ID:         "claude-3-5-sonnet-latest",
		Provider:   "Anthropic",
		ProviderID: ProviderAnthropic,
		Aliases:    []string{"claude-3-5-sonnet-20241022"},
		DefaultFor: []Role{RoleAdvisor},
	},

	// Ollama
	{
		ID:         "llama3.2",
		Provider:   "Ollama",
		ProviderID: ProviderOllama,
		DefaultFor: []Role{RolePlanner, RoleAdvisor},
	},
}

var modelIndex map[string]*Model

func init() {
	buildModelIndex()
}

func buildModelIndex() {
	modelIndex = make(map[string]*Model)
	for i := range ModelRegistry {
		m := &ModelRegistry[i]
		modelIndex[m.ID] = m
		for _, alias := range m.Aliases {
			modelIndex[alias] = m
		}
	}
}

// GetModel returns the registry entry for an ID or alias, or nil.
func GetModel(modelID string) *Model {
	return modelIndex[modelID]
}

// DefaultModelID returns the default model for a provider and role, or "" if none is registered.
func DefaultModelID(provider Provider, role Role) string {
	for i := range ModelRegistry {
		m := &ModelRegistry[i]
		if m.ProviderID != provider {
			continue
		}
		for _, r := range m.DefaultFor {
			if r == role {
				return m.ID
			}
		}
	}
	return ""
}

// InferProvider guesses the provider from a registered model ID.
func InferProvider(modelID string) (Provider, bool) {
	if m := GetModel(modelID); m != nil {
		return m.ProviderID, true
	}
	return "", false
}

// ModelsForProvider returns the registered model IDs of a provider, sorted.
func ModelsForProvider(provider Provider) []string {
	var ids []string
	for _, m := range ModelRegistry {
		if m.ProviderID == provider {
			ids = append(ids, m.ID)
		}
	}
	sort.Strings(ids)
	return ids
}
