package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationModel handles yes/no prompts shown above the status bar.
type ConfirmationModel struct {
	active    bool
	message   string
	detail    string
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the confirmation. Either callback may be nil.
func (m *ConfirmationModel) Show(message, detail string, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.message = message
	m.detail = detail
	m.onConfirm = onConfirm
	m.onCancel = onCancel
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update handles key events for the confirmation
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch msg.String() {
	case "y", "Y", "enter":
		m.active = false
		if m.onConfirm != nil {
			return m.onConfirm()
		}
	case "n", "N", "esc":
		m.active = false
		if m.onCancel != nil {
			return m.onCancel()
		}
	}
	return nil
}

// View renders the prompt centered in width.
func (m *ConfirmationModel) View(width int) string {
	if !m.active {
		return ""
	}

	yes := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Bold(true).Render("[Y]es")
	no := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDanger)).Bold(true).Render("[N]o")
	line := fmt.Sprintf("%s  %s / %s", TitleStyle.Render(m.message), yes, no)
	if m.detail != "" {
		line = lipgloss.JoinVertical(lipgloss.Center, line, DescriptionStyle.Render(truncateLine(m.detail, width-4)))
	}
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(line)
}
