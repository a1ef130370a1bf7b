package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// ViewTitle renders a view heading as white text on a dark block.
type ViewTitle struct {
	text string
}

// NewViewTitle creates a new view title with the given text
func NewViewTitle(text string) *ViewTitle {
	return &ViewTitle{text: text}
}

// View renders the title with one line of padding above and below.
func (v *ViewTitle) View() string {
	if v.text == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWhite)).
		Background(lipgloss.Color("0")).
		Bold(true).
		Padding(0, 1).
		Render("\n" + v.text + "\n")
}

// ViewWithAlignment renders the title left aligned within width.
func (v *ViewTitle) ViewWithAlignment(width int) string {
	if v.text == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Width(width).
		PaddingLeft(2).
		PaddingRight(2).
		Render(NewViewTitle(truncateLine(v.text, max(width-6, 1))).View())
}
