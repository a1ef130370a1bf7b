package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color constants
const (
	ColorActive   = "170" // Purple/magenta for active elements
	ColorInactive = "240" // Gray for inactive elements
	ColorSelected = "236" // Dark gray for background selection
	ColorNormal   = "245" // Light gray for normal text
	ColorDim      = "241"
	ColorVeryDim  = "242"
	ColorWarning  = "214" // Orange/yellow for warnings
	ColorDanger   = "196"
	ColorSuccess  = "28"
	ColorWhite    = "255"
	ColorDark     = "235"
	ColorPrimary  = "33" // Blue for links and badges
	ColorLike     = "204"
)

// Common styles
var (
	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorActive))

	InactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorInactive))

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Background(lipgloss.Color(ColorSelected)).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal))

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorWarning))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorDim))

	ContentPaddingStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				PaddingRight(1)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim))

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim)).
				Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDanger))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess)).
			Bold(true)

	LinkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimary)).
			Underline(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorVeryDim))

	// Pagination
	PageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal)).
			Padding(0, 1)

	CurrentPageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorWhite)).
				Background(lipgloss.Color(ColorActive)).
				Bold(true).
				Padding(0, 1)

	FocusedPageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorActive)).
				Background(lipgloss.Color(ColorSelected)).
				Underline(true).
				Padding(0, 1)
)

// CategoryBadgeStyle renders the category pill on cards and in the detail
// header.
func CategoryBadgeStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(ColorPrimary)).
		Foreground(lipgloss.Color(ColorWhite)).
		Padding(0, 1)
}

// GetTagChipStyle renders one tag.
func GetTagChipStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(ColorSelected)).
		Foreground(lipgloss.Color(ColorNormal)).
		Padding(0, 1)
}

// GetActiveHeaderStyle colors a pane heading by focus.
func GetActiveHeaderStyle(isActive bool) lipgloss.Style {
	color := ColorInactive
	if isActive {
		color = ColorActive
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(color))
}

// GetCardStyle is the border of a result card.
func GetCardStyle(selected bool, width int) lipgloss.Style {
	style := InactiveBorderStyle
	if selected {
		style = ActiveBorderStyle
	}
	return style.Width(width).Padding(0, 1)
}

// GetLikeStyle colors the like heart.
func GetLikeStyle(liked bool) lipgloss.Style {
	if liked {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLike)).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorNormal))
}

// GetTokenBadgeStyle colors the token estimate of a prompt.
func GetTokenBadgeStyle(tokenCount int) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	switch {
	case tokenCount < 2000:
		return base.Background(lipgloss.Color(ColorSuccess)).Foreground(lipgloss.Color(ColorWhite))
	case tokenCount < 8000:
		return base.Background(lipgloss.Color(ColorWarning)).Foreground(lipgloss.Color(ColorDark))
	default:
		return base.Background(lipgloss.Color(ColorDanger)).Foreground(lipgloss.Color(ColorWhite))
	}
}
