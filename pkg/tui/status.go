package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusType represents the type of status message
type StatusType int

const (
	StatusTypeSuccess StatusType = iota
	StatusTypeWarning
	StatusTypeError
	StatusTypeInfo
)

func (t StatusType) icon() string {
	switch t {
	case StatusTypeSuccess:
		return "✓"
	case StatusTypeWarning:
		return "⚠"
	case StatusTypeError:
		return "×"
	default:
		return "ℹ"
	}
}

// StatusMsg shows a transient status bar message.
type StatusMsg struct {
	Text string
	Type StatusType
}

// clearStatusMsg clears the transient message it was scheduled for.
type clearStatusMsg struct {
	seq int
}

// StatusManager holds the status bar text.
type StatusManager struct {
	Message         string
	Type            StatusType
	DefaultDuration time.Duration
	seq             int
}

// NewStatusManager creates a new status manager
func NewStatusManager() *StatusManager {
	return &StatusManager{DefaultDuration: 3 * time.Second}
}

// Show displays msg and schedules its removal. A newer message is never
// cleared by an older timer.
func (sm *StatusManager) Show(msg StatusMsg) tea.Cmd {
	sm.seq++
	sm.Message = msg.Text
	sm.Type = msg.Type
	seq := sm.seq
	return tea.Tick(sm.DefaultDuration, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// Clear handles a clearStatusMsg.
func (sm *StatusManager) Clear(msg clearStatusMsg) {
	if msg.seq == sm.seq {
		sm.Message = ""
	}
}

// Text returns what the status bar shows, if anything.
func (sm *StatusManager) Text() (string, bool) {
	if sm.Message != "" {
		return fmt.Sprintf("%s %s", sm.Type.icon(), sm.Message), true
	}
	return "", false
}

// View renders the status bar across width.
func (sm *StatusManager) View(width int) string {
	text, ok := sm.Text()
	if !ok {
		return ""
	}
	bg := "62"
	if sm.Message != "" && sm.Type == StatusTypeError {
		bg = ColorDanger
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color("230")).
		Padding(0, 1).
		Width(width).
		Render(text)
}

func showStatus(text string, t StatusType) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text, Type: t} }
}

func showSuccess(text string) tea.Cmd { return showStatus(text, StatusTypeSuccess) }

func showError(text string) tea.Cmd { return showStatus(text, StatusTypeError) }

func showInfo(text string) tea.Cmd { return showStatus(text, StatusTypeInfo) }
