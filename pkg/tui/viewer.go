package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/pluqqy/promptcat/internal/logger"
	"github.com/pluqqy/promptcat/pkg/detail"
	"github.com/pluqqy/promptcat/pkg/models"
	"github.com/pluqqy/promptcat/pkg/utils"
)

// Intents emitted by the detail view.
type (
	closeDetailMsg struct{}
	customizeMsg   struct{}
	likeMsg        struct{}
)

// PromptViewerModel shows the open prompt: header, scrollable text, the
// customization input and the share menu.
type PromptViewerModel struct {
	ctrl  *detail.Controller
	log   *logger.Logger
	input textarea.Model
	share *ShareMenu

	viewport  viewport.Model
	editing   bool
	render    bool
	showStats bool
	loading   bool

	// text and width the viewport was last filled for
	renderedText  string
	renderedWidth int

	width  int
	height int
}

// NewPromptViewerModel binds the view to the detail controller.
func NewPromptViewerModel(ctrl *detail.Controller, settings *models.Settings, log *logger.Logger) *PromptViewerModel {
	ta := textarea.New()
	ta.Placeholder = fmt.Sprintf("Describe how to customize this prompt (%d-%d characters)",
		models.MinCustomizationLength, models.MaxCustomizationLength)
	ta.CharLimit = models.MaxCustomizationLength
	ta.ShowLineNumbers = false
	ta.SetHeight(3)

	m := &PromptViewerModel{
		ctrl:     ctrl,
		log:      log,
		input:    ta,
		share:    NewShareMenu(),
		viewport: viewport.New(80, 20),
	}
	if settings != nil {
		m.render = settings.UI.RenderMarkdown
		m.showStats = settings.UI.ShowTokenEstimate
	}
	return m
}

// SetSize lays out the viewport and input.
func (m *PromptViewerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-4, 10)
	// title block, meta line, description, input, counter, help
	m.viewport.Height = max(height-14, 3)
	m.input.SetWidth(max(width-6, 10))
	m.Refresh()
}

// Reset prepares the view for a freshly opened prompt.
func (m *PromptViewerModel) Reset() {
	m.editing = false
	m.input.Blur()
	m.input.Reset()
	m.share.open = false
	m.renderedText = ""
	m.viewport.GotoTop()
	m.Refresh()
}

// Typing reports whether key presses go to the customization input.
func (m *PromptViewerModel) Typing() bool { return m.editing }

// Busy reports whether the view waits on the service.
func (m *PromptViewerModel) Busy() bool {
	s := m.ctrl.State()
	return m.loading || s.Customize.Busy || s.Like.Pending
}

// Refresh re-fills the viewport when the text or width changed.
func (m *PromptViewerModel) Refresh() {
	s := m.ctrl.State()
	if !s.IsOpen() {
		m.viewport.SetContent("")
		m.renderedText = ""
		return
	}
	if s.Text == m.renderedText && m.viewport.Width == m.renderedWidth {
		return
	}
	m.renderedText = s.Text
	m.renderedWidth = m.viewport.Width

	content := wordwrap.String(s.Text, m.viewport.Width)
	if m.render {
		rendered, err := utils.RenderMarkdown(s.Text, m.viewport.Width, false)
		if err != nil {
			m.log.Error(err, "markdown render failed")
		} else {
			content = rendered
		}
	}
	m.viewport.SetContent(content)
}

// ClearInput empties the customization input after a success.
func (m *PromptViewerModel) ClearInput() {
	m.input.Reset()
}

// Update handles keys for the detail view.
func (m *PromptViewerModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.editing {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return cmd
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}

	if m.editing {
		return m.updateInput(keyMsg)
	}
	if m.share.Open() {
		return m.share.Update(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, keys.Cancel):
		return emit(closeDetailMsg{})
	case key.Matches(keyMsg, keys.Customize):
		m.editing = true
		return m.input.Focus()
	case key.Matches(keyMsg, keys.Like):
		return emit(likeMsg{})
	case key.Matches(keyMsg, keys.Share):
		m.share.Toggle()
		return nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *PromptViewerModel) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Cancel):
		m.editing = false
		m.input.Blur()
		return nil
	case key.Matches(msg, keys.SaveForm):
		if !m.ctrl.State().Customize.Enabled() {
			return nil
		}
		m.editing = false
		m.input.Blur()
		return emit(customizeMsg{})
	}

	if m.ctrl.State().Customize.Busy {
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	s, ok := m.ctrl.State().SetInput(m.input.Value())
	if !ok {
		m.input.SetValue(m.ctrl.State().Customize.Input)
		return cmd
	}
	m.ctrl.SetState(s)
	return cmd
}

// View renders the detail view. spin is the spinner frame for busy
// states.
func (m *PromptViewerModel) View(spin string) string {
	s := m.ctrl.State()
	if !s.IsOpen() {
		if m.loading {
			return ContentPaddingStyle.Render(spin + " " + PlaceholderStyle.Render("Loading prompt..."))
		}
		return ""
	}
	p := s.Prompt
	width := max(m.width-4, 10)

	title := NewViewTitle(p.Name).ViewWithAlignment(m.width)

	like := GetLikeStyle(s.Like.Liked).Render(fmt.Sprintf("%s %d", s.Like.Icon(), s.Like.Count))
	if s.Like.Pending {
		like += " " + spin
	}
	meta := []string{CategoryBadgeStyle().Render(p.Category), like}
	for _, tag := range p.Tags {
		meta = append(meta, GetTagChipStyle().Render(tag))
	}
	if m.showStats {
		tokens := utils.EstimateTokens(s.Text)
		meta = append(meta, GetTokenBadgeStyle(tokens).Render(utils.FormatTokenCount(tokens)))
	}
	metaLine := truncateLine(strings.Join(meta, " "), width)

	desc := DescriptionStyle.Render(wordwrap.String(p.Description, width))

	textBox := InactiveBorderStyle
	if !m.editing {
		textBox = ActiveBorderStyle
	}
	body := textBox.Width(width).Render(m.viewport.View())

	sections := []string{
		title,
		ContentPaddingStyle.Render(metaLine),
		ContentPaddingStyle.Render(desc),
		ContentPaddingStyle.Render(body),
		ContentPaddingStyle.Render(m.customizeView(s, spin)),
	}
	if menu := m.share.View(); menu != "" {
		sections = append(sections, ContentPaddingStyle.Render(menu))
	}
	help := helpLine(keys.Customize, keys.Like, keys.Share, keys.Back, keys.Forward, keys.Cancel)
	if m.editing {
		help = helpLine(keys.SaveForm, keys.Cancel)
	}
	sections = append(sections, ContentPaddingStyle.Render(help))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *PromptViewerModel) customizeView(s detail.State, spin string) string {
	c := s.Customize
	label := c.Label()
	labelStyle := HelpStyle
	if c.Enabled() {
		labelStyle = SuccessStyle
	}
	if c.Busy {
		label = spin + " " + label
		labelStyle = TitleStyle
	}

	counter := HelpStyle.Render(c.Counter())
	line := lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render("["+label+"]"), "  ", counter)
	if c.Note != "" {
		noteStyle := ErrorStyle
		if c.Note == detail.CustomizeSuccessNote {
			noteStyle = SuccessStyle
		}
		line += "  " + noteStyle.Render(c.Note)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.input.View(), line)
}
