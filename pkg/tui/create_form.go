package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/promptcat/pkg/models"
)

// Intents emitted by the upload form.
type (
	submitCreateMsg struct{ req models.CreatePromptRequest }
	cancelCreateMsg struct{}
)

const (
	fieldName = iota
	fieldDescription
	fieldCategory
	fieldPrompt
	fieldTags
	fieldAuthor
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Description", "Category", "Prompt", "Tags", "Author ID"}

// CreateFormModel is the upload form.
type CreateFormModel struct {
	inputs     map[int]*textinput.Model
	prompt     textarea.Model
	categories []string
	category   int
	focus      int
	err        string
	submitting bool
	width      int
}

// NewCreateFormModel builds an empty form. authorID pre-fills the author
// field.
func NewCreateFormModel(categories []string, authorID string) *CreateFormModel {
	newInput := func(placeholder string, limit int) *textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = limit
		return &ti
	}

	ta := textarea.New()
	ta.Placeholder = "The prompt text. Use {placeholders} for the parts users fill in."
	ta.ShowLineNumbers = false
	ta.SetHeight(6)

	m := &CreateFormModel{
		inputs: map[int]*textinput.Model{
			fieldName:        newInput("3-100 characters", 100),
			fieldDescription: newInput("10-500 characters", 500),
			fieldTags:        newInput("comma-separated, e.g. email, writing", 200),
			fieldAuthor:      newInput("your author id", 100),
		},
		prompt:     ta,
		categories: categories,
	}
	m.inputs[fieldAuthor].SetValue(authorID)
	m.setFocus(fieldName)
	return m
}

// SetWidth sizes the inputs.
func (m *CreateFormModel) SetWidth(width int) {
	m.width = width
	for _, in := range m.inputs {
		in.Width = max(width-20, 10)
	}
	m.prompt.SetWidth(max(width-6, 10))
}

// SetCategories replaces the category choices.
func (m *CreateFormModel) SetCategories(categories []string) {
	m.categories = categories
	if m.category >= len(categories) {
		m.category = 0
	}
}

// SetError shows err under the form and re-enables it.
func (m *CreateFormModel) SetError(text string) {
	m.err = text
	m.submitting = false
}

// Request collects the form into a request.
func (m *CreateFormModel) Request() models.CreatePromptRequest {
	var category string
	if len(m.categories) > 0 {
		category = m.categories[m.category]
	}
	return models.CreatePromptRequest{
		Name:        strings.TrimSpace(m.inputs[fieldName].Value()),
		Description: strings.TrimSpace(m.inputs[fieldDescription].Value()),
		Category:    category,
		Prompt:      m.prompt.Value(),
		Tags:        models.ParseTags(m.inputs[fieldTags].Value()),
		AuthorID:    strings.TrimSpace(m.inputs[fieldAuthor].Value()),
		IsPublic:    true,
	}
}

func (m *CreateFormModel) setFocus(field int) tea.Cmd {
	m.focus = field
	for f, in := range m.inputs {
		if f != field {
			in.Blur()
		}
	}
	m.prompt.Blur()

	switch field {
	case fieldPrompt:
		return m.prompt.Focus()
	case fieldCategory:
		return nil
	default:
		return m.inputs[field].Focus()
	}
}

// Update handles form keys.
func (m *CreateFormModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateField(msg)
	}
	if m.submitting {
		return nil
	}

	switch {
	case key.Matches(keyMsg, keys.Cancel):
		return emit(cancelCreateMsg{})
	case key.Matches(keyMsg, keys.SaveForm):
		req := m.Request()
		if err := models.ValidateCreatePrompt(req); err != nil {
			m.err = err.Error()
			return nil
		}
		m.err = ""
		m.submitting = true
		return emit(submitCreateMsg{req: req})
	case keyMsg.String() == "tab":
		return m.setFocus((m.focus + 1) % fieldCount)
	case keyMsg.String() == "shift+tab":
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	}

	if m.focus == fieldCategory {
		switch {
		case key.Matches(keyMsg, keys.Left), key.Matches(keyMsg, keys.Up):
			m.category = max(m.category-1, 0)
		case key.Matches(keyMsg, keys.Right), key.Matches(keyMsg, keys.Down):
			m.category = min(m.category+1, max(len(m.categories)-1, 0))
		}
		return nil
	}
	return m.updateField(msg)
}

func (m *CreateFormModel) updateField(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case fieldPrompt:
		m.prompt, cmd = m.prompt.Update(msg)
	case fieldCategory:
	default:
		in := m.inputs[m.focus]
		*in, cmd = in.Update(msg)
	}
	return cmd
}

// View renders the form.
func (m *CreateFormModel) View(spin string) string {
	label := func(field int) string {
		return GetActiveHeaderStyle(m.focus == field).Width(14).Render(fieldLabels[field])
	}

	var rows []string
	for field := 0; field < fieldCount; field++ {
		switch field {
		case fieldCategory:
			value := PlaceholderStyle.Render("no categories loaded")
			if len(m.categories) > 0 {
				value = "‹ " + CategoryBadgeStyle().Render(m.categories[m.category]) + " ›"
			}
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label(field), value))
		case fieldPrompt:
			rows = append(rows, label(field), m.prompt.View())
		default:
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label(field), m.inputs[field].View()))
		}
	}

	if m.submitting {
		rows = append(rows, "", spin+" "+PlaceholderStyle.Render("Uploading..."))
	}
	if m.err != "" {
		rows = append(rows, "", ErrorStyle.Render(m.err))
	}
	rows = append(rows, "", helpLine(keys.SaveForm, keys.NextPane, keys.Cancel))

	return lipgloss.JoinVertical(lipgloss.Left,
		NewViewTitle("Upload a prompt").ViewWithAlignment(m.width),
		ContentPaddingStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}
