package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/josephgoksu/FocusFlow/internal/llm"
)

// ProviderOption is one row of the provider picker.
type ProviderOption struct {
	ID          llm.Provider
	Name        string
	Description string
	HasAPIKey   bool
}

var providerNames = map[llm.Provider]string{
	llm.ProviderGemini:    "Gemini",
	llm.ProviderOpenAI:    "OpenAI",
	llm.ProviderAnthropic: "Anthropic",
	llm.ProviderOllama:    "Ollama",
}

// BuildProviderOptions lists the supported providers, default first.
// hasKey reports whether a key is already configured for a provider.
func BuildProviderOptions(hasKey func(llm.Provider) bool) []ProviderOption {
	order := []llm.Provider{llm.ProviderGemini, llm.ProviderOpenAI, llm.ProviderAnthropic, llm.ProviderOllama}
	options := make([]ProviderOption, 0, len(order))
	for _, p := range order {
		opt := ProviderOption{ID: p, Name: providerNames[p], HasAPIKey: !p.RequiresAPIKey() || (hasKey != nil && hasKey(p))}

		desc := fmt.Sprintf("planner %s • advisor %s",
			llm.DefaultModelID(p, llm.RolePlanner), llm.DefaultModelID(p, llm.RoleAdvisor))
		switch {
		case !p.RequiresAPIKey():
			desc = "Local, private, free • " + desc
		case !opt.HasAPIKey:
			desc += " • key not set (" + strings.Join(llm.APIKeyEnvVars[p], ", ") + ")"
		}
		opt.Description = desc
		options = append(options, opt)
	}
	return options
}

// PromptLLMProvider prompts the user to select an LLM provider.
func PromptLLMProvider(hasKey func(llm.Provider) bool) (llm.Provider, error) {
	m := providerSelectModel{options: BuildProviderOptions(hasKey)}

	finalModel, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", fmt.Errorf("error running provider selection: %w", err)
	}

	result := finalModel.(providerSelectModel)
	if result.quit {
		return "", fmt.Errorf("provider selection cancelled")
	}
	return result.selected, nil
}

type providerSelectModel struct {
	options  []ProviderOption
	cursor   int
	selected llm.Provider
	quit     bool
}

func (m providerSelectModel) Init() tea.Cmd {
	return nil
}

func (m providerSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quit = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = m.options[m.cursor].ID
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m providerSelectModel) View() string {
	s := "\n" + StyleSelectTitle.Render("🤖 Select AI Provider") + "\n\n"

	for i, opt := range m.options {
		cursor := "  "
		style := StyleSelectNormal
		if m.cursor == i {
			cursor = "▶ "
			style = StyleSelectActive
		}
		s += cursor + style.Render(fmt.Sprintf("%-10s", opt.Name)) + StyleSelectDim.Render(" "+opt.Description) + "\n"
	}

	s += "\n" + StyleSelectDim.Render("↑/↓ navigate • enter select • esc cancel") + "\n"
	return s
}
