package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PromptAPIKey prompts for an API key without echoing it.
// where names the file the key will be written to.
func PromptAPIKey(providerName, where string) (string, error) {
	ti := textinput.New()
	ti.Placeholder = "api-key"
	ti.Focus()
	ti.EchoMode = textinput.EchoPassword
	ti.CharLimit = 256
	ti.Width = 50

	m := apiKeyModel{textInput: ti, provider: providerName, where: where}

	finalModel, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", fmt.Errorf("error running prompt: %w", err)
	}

	result := finalModel.(apiKeyModel)
	if result.quit {
		return "", fmt.Errorf("api key input cancelled")
	}
	return result.value, nil
}

type apiKeyModel struct {
	textInput textinput.Model
	provider  string
	where     string
	value     string
	quit      bool
}

func (m apiKeyModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m apiKeyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			if v := strings.TrimSpace(m.textInput.Value()); v != "" {
				m.value = v
				return m, tea.Quit
			}
			return m, nil
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quit = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m apiKeyModel) View() string {
	s := "\n" + StyleSelectTitle.Render(fmt.Sprintf("🔑 %s API key", m.provider)) + "\n"
	s += StyleSelectDim.Render("It will be stored locally in "+m.where) + "\n\n"
	s += m.textInput.View() + "\n\n"
	s += StyleSelectDim.Render("Press Enter to confirm • Esc to cancel") + "\n"
	return s
}
