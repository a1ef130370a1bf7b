package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/promptcat/pkg/share"
)

// shareChosenMsg asks the App to share through a channel.
type shareChosenMsg struct {
	channel share.Channel
}

// ShareMenu is the list of share channels in the detail view.
type ShareMenu struct {
	open     bool
	channels []share.Channel
	cursor   int
}

// NewShareMenu creates a closed menu.
func NewShareMenu() *ShareMenu {
	return &ShareMenu{channels: share.Channels()}
}

// Toggle opens or closes the menu.
func (s *ShareMenu) Toggle() {
	s.open = !s.open
	s.cursor = 0
}

// Open reports whether the menu is shown.
func (s *ShareMenu) Open() bool { return s.open }

// Update moves the cursor and picks a channel.
func (s *ShareMenu) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Up), key.Matches(msg, keys.Left):
		s.cursor = max(s.cursor-1, 0)
	case key.Matches(msg, keys.Down), key.Matches(msg, keys.Right):
		s.cursor = min(s.cursor+1, len(s.channels)-1)
	case key.Matches(msg, keys.Cancel), key.Matches(msg, keys.Share):
		s.open = false
	case key.Matches(msg, keys.Submit):
		s.open = false
		return emit(shareChosenMsg{channel: s.channels[s.cursor]})
	}
	return nil
}

// View renders the channels on one line.
func (s *ShareMenu) View() string {
	if !s.open {
		return ""
	}
	parts := make([]string, len(s.channels))
	for i, c := range s.channels {
		if i == s.cursor {
			parts[i] = SelectedStyle.Padding(0, 1).Render(c.Label())
			continue
		}
		parts[i] = NormalStyle.Padding(0, 1).Render(c.Label())
	}
	return InactiveBorderStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Center, HeaderStyle.Render("Share: "), strings.Join(parts, " ")))
}
