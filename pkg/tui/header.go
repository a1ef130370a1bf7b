package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const logo = `┏━┓┏━┓┏━┓┏┳┓┏━┓╺┳╸┏━╸┏━┓╺┳╸
┣━┛┣┳┛┃ ┃┃┃┃┣━┛ ┃ ┃  ┣━┫ ┃
╹  ╹┗╸┗━┛╹ ╹╹   ╹ ┗━╸╹ ╹ ╹ `

// renderHeader draws the logo on the right and title on the left,
// aligned with the logo's last row.
func renderHeader(width int, title string) string {
	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	headerPadding := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1).
		Width(width)

	logoRendered := logoStyle.Render(logo)
	logoWidth := lipgloss.Width(strings.Split(logo, "\n")[0])
	contentWidth := width - 2

	if title == "" || contentWidth < logoWidth+lipgloss.Width(title)+1 {
		return headerPadding.Render(lipgloss.NewStyle().
			Width(contentWidth).
			Align(lipgloss.Right).
			Render(logoRendered))
	}

	titleRendered := logoStyle.Render(strings.Repeat("\n", 2) + title)
	gap := lipgloss.NewStyle().Width(contentWidth - lipgloss.Width(title) - logoWidth).Render("")
	return headerPadding.Render(lipgloss.JoinHorizontal(lipgloss.Top, titleRendered, gap, logoRendered))
}

// headerHeight is the number of lines renderHeader produces.
func headerHeight() int {
	return strings.Count(logo, "\n") + 1
}
