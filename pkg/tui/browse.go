package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/pluqqy/promptcat/pkg/catalog"
	"github.com/pluqqy/promptcat/pkg/models"
)

type browseFocus int

const (
	focusSearch browseFocus = iota
	focusCategories
	focusResults
	focusPagination
)

const (
	cardContentHeight = 6
	cardHeight        = cardContentHeight + 2 // border
)

// Intents emitted by the browse pane and handled by the App.
type (
	searchTextMsg     struct{ query string }
	searchCategoryMsg struct{ category string }
	changePageMsg     struct{ page int }
	openPromptMsg     struct{ id models.PromptID }
)

// BrowseModel is the catalog home (category list) and the results grid
// with its pagination control.
type BrowseModel struct {
	search *SearchBar

	categories     []string
	categoryErr    string
	categoryCursor int

	showResults bool
	loading     bool
	heading     string
	placeholder string
	errText     string
	results     catalog.Results
	page        *models.SearchResultPage
	cardCursor  int
	pageCursor  int

	focus    browseFocus
	viewport viewport.Model
	width    int
	height   int
}

// NewBrowseModel starts on the category home view.
func NewBrowseModel() *BrowseModel {
	return &BrowseModel{
		search:   NewSearchBar(),
		focus:    focusCategories,
		viewport: viewport.New(80, 20),
	}
}

// SetSize lays the pane out for the space below the header.
func (m *BrowseModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.search.SetWidth(width)
	m.viewport.Width = max(width-2, 10)
	// search bar, heading, pagination and help
	m.viewport.Height = max(height-8, 3)
	m.refresh()
}

// SetCategories fills the home view.
func (m *BrowseModel) SetCategories(categories []string, err error) {
	m.categories = categories
	m.categoryErr = ""
	if err != nil {
		m.categoryErr = "Failed to load categories"
	}
	if m.categoryCursor >= len(categories) {
		m.categoryCursor = 0
	}
	m.refresh()
}

// ShowHome returns to the category list.
func (m *BrowseModel) ShowHome() {
	m.showResults = false
	m.loading = false
	m.focus = focusCategories
	m.search.SetActive(false)
	m.search.Reset()
	m.refresh()
}

// Begin switches to the results view for a request about to run.
func (m *BrowseModel) Begin(req catalog.Request, heading string) {
	m.showResults = true
	m.heading = heading
	m.ShowPlaceholder(req.Placeholder)
}

// ShowPlaceholder shows text instead of the grid, for loading states.
func (m *BrowseModel) ShowPlaceholder(text string) {
	m.loading = true
	m.placeholder = text
	m.errText = ""
	m.results = catalog.Results{}
	m.page = nil
	m.refresh()
}

// ShowResults displays a finished page of results.
func (m *BrowseModel) ShowResults(results catalog.Results, page *models.SearchResultPage) {
	m.loading = false
	m.errText = ""
	m.results = results
	m.page = page
	m.placeholder = results.Placeholder
	m.cardCursor = 0
	m.pageCursor = m.currentPageIndex()
	if m.showResults && len(results.Cards) > 0 && m.focus != focusSearch {
		m.focus = focusResults
	}
	m.viewport.GotoTop()
	m.refresh()
}

// ShowError displays a failed request.
func (m *BrowseModel) ShowError(text string, err error) {
	m.loading = false
	m.results = catalog.Results{}
	m.page = nil
	m.placeholder = ""
	m.errText = text
	m.refresh()
}

var _ catalog.View = (*BrowseModel)(nil)

// Loading reports whether a request is in flight.
func (m *BrowseModel) Loading() bool { return m.loading }

// Typing reports whether key presses go to the search input.
func (m *BrowseModel) Typing() bool { return m.focus == focusSearch }

// FocusSearch moves focus to the search bar.
func (m *BrowseModel) FocusSearch() tea.Cmd {
	m.focus = focusSearch
	return m.search.SetActive(true)
}

// Update handles keys for the focused pane. Catalog operations are
// returned as intent messages.
func (m *BrowseModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.focus == focusSearch {
			return m.search.Update(msg)
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}

	if m.focus == focusSearch {
		switch {
		case key.Matches(keyMsg, keys.Submit):
			query := m.search.Value()
			m.search.SetActive(false)
			m.focus = focusResults
			return emit(searchTextMsg{query: query})
		case key.Matches(keyMsg, keys.Cancel), key.Matches(keyMsg, keys.NextPane):
			m.search.SetActive(false)
			m.focus = m.defaultFocus()
			m.refresh()
			return nil
		}
		return m.search.Update(msg)
	}

	switch {
	case key.Matches(keyMsg, keys.Search):
		return m.FocusSearch()
	case key.Matches(keyMsg, keys.NextPane):
		m.cycleFocus()
		m.refresh()
		return nil
	case key.Matches(keyMsg, keys.NextPage):
		if next, ok := m.stepPage(1); ok {
			return emit(changePageMsg{page: next})
		}
		return nil
	case key.Matches(keyMsg, keys.PrevPage):
		if prev, ok := m.stepPage(-1); ok {
			return emit(changePageMsg{page: prev})
		}
		return nil
	}

	switch m.focus {
	case focusCategories:
		return m.updateCategories(keyMsg)
	case focusResults:
		return m.updateResults(keyMsg)
	case focusPagination:
		return m.updatePagination(keyMsg)
	}
	return nil
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m *BrowseModel) defaultFocus() browseFocus {
	if m.showResults {
		return focusResults
	}
	return focusCategories
}

func (m *BrowseModel) cycleFocus() {
	order := []browseFocus{focusSearch, focusCategories}
	if m.showResults {
		order = []browseFocus{focusSearch, focusResults}
		if len(m.results.Pagination) > 0 {
			order = append(order, focusPagination)
		}
	}
	next := order[0]
	for i, f := range order {
		if f == m.focus {
			next = order[(i+1)%len(order)]
		}
	}
	m.focus = next
	m.search.SetActive(next == focusSearch)
}

func (m *BrowseModel) updateCategories(msg tea.KeyMsg) tea.Cmd {
	if len(m.categories) == 0 {
		return nil
	}
	cols := m.categoryColumns()
	switch {
	case key.Matches(msg, keys.Left):
		m.categoryCursor = max(m.categoryCursor-1, 0)
	case key.Matches(msg, keys.Right):
		m.categoryCursor = min(m.categoryCursor+1, len(m.categories)-1)
	case key.Matches(msg, keys.Up):
		if m.categoryCursor-cols >= 0 {
			m.categoryCursor -= cols
		}
	case key.Matches(msg, keys.Down):
		if m.categoryCursor+cols < len(m.categories) {
			m.categoryCursor += cols
		}
	case key.Matches(msg, keys.Submit):
		return emit(searchCategoryMsg{category: m.categories[m.categoryCursor]})
	}
	m.refresh()
	return nil
}

func (m *BrowseModel) updateResults(msg tea.KeyMsg) tea.Cmd {
	cards := m.results.Cards
	if len(cards) == 0 {
		return nil
	}
	cols := m.cardColumns()
	switch {
	case key.Matches(msg, keys.Left):
		m.cardCursor = max(m.cardCursor-1, 0)
	case key.Matches(msg, keys.Right):
		m.cardCursor = min(m.cardCursor+1, len(cards)-1)
	case key.Matches(msg, keys.Up):
		if m.cardCursor-cols >= 0 {
			m.cardCursor -= cols
		}
	case key.Matches(msg, keys.Down):
		if m.cardCursor+cols < len(cards) {
			m.cardCursor += cols
		} else if len(m.results.Pagination) > 0 {
			m.focus = focusPagination
		}
	case key.Matches(msg, keys.Submit):
		return emit(openPromptMsg{id: cards[m.cardCursor].ID})
	}
	m.refresh()
	m.scrollToCursor()
	return nil
}

func (m *BrowseModel) updatePagination(msg tea.KeyMsg) tea.Cmd {
	controls := m.results.Pagination
	if len(controls) == 0 {
		m.focus = focusResults
		return nil
	}
	switch {
	case key.Matches(msg, keys.Left):
		m.pageCursor = m.nextSelectable(m.pageCursor, -1)
	case key.Matches(msg, keys.Right):
		m.pageCursor = m.nextSelectable(m.pageCursor, 1)
	case key.Matches(msg, keys.Up):
		m.focus = focusResults
	case key.Matches(msg, keys.Submit):
		c := controls[m.pageCursor]
		if c.Selectable() {
			return emit(changePageMsg{page: c.Page})
		}
	}
	m.refresh()
	return nil
}

func (m *BrowseModel) nextSelectable(from, step int) int {
	controls := m.results.Pagination
	for i := from + step; i >= 0 && i < len(controls); i += step {
		if controls[i].Kind != catalog.ControlEllipsis {
			return i
		}
	}
	return from
}

func (m *BrowseModel) currentPageIndex() int {
	for i, c := range m.results.Pagination {
		if c.Current {
			return i
		}
	}
	return 0
}

// stepPage returns the page a Previous/Next control would go to.
func (m *BrowseModel) stepPage(step int) (int, bool) {
	want := catalog.ControlNext
	if step < 0 {
		want = catalog.ControlPrevious
	}
	for _, c := range m.results.Pagination {
		if c.Kind == want {
			return c.Page, true
		}
	}
	return 0, false
}

func (m *BrowseModel) cardColumns() int {
	switch {
	case m.width >= 110:
		return 3
	case m.width >= 70:
		return 2
	default:
		return 1
	}
}

func (m *BrowseModel) categoryColumns() int {
	return max(m.viewport.Width/24, 1)
}

func (m *BrowseModel) scrollToCursor() {
	row := m.cardCursor / m.cardColumns()
	top := row * cardHeight
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case top+cardHeight > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(top + cardHeight - m.viewport.Height)
	}
}

// refresh re-renders the scrollable body into the viewport.
func (m *BrowseModel) refresh() {
	var body string
	switch {
	case !m.showResults:
		body = m.renderCategories()
	case m.errText != "":
		body = ErrorStyle.Render(m.errText)
	case len(m.results.Cards) == 0:
		body = PlaceholderStyle.Render(m.placeholder)
	default:
		body = m.renderCards()
	}
	m.viewport.SetContent(body)
}

func (m *BrowseModel) renderCategories() string {
	if m.categoryErr != "" {
		return ErrorStyle.Render(m.categoryErr)
	}
	if len(m.categories) == 0 {
		return PlaceholderStyle.Render(catalog.MsgLoading)
	}
	cols := m.categoryColumns()
	width := m.viewport.Width/cols - 2
	var rows []string
	var row []string
	for i, c := range m.categories {
		style := InactiveBorderStyle
		if i == m.categoryCursor && m.focus == focusCategories {
			style = ActiveBorderStyle
		}
		row = append(row, style.Width(width).Align(lipgloss.Center).Render(truncateLine(c, width)))
		if len(row) == cols || i == len(m.categories)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *BrowseModel) renderCards() string {
	cols := m.cardColumns()
	width := m.viewport.Width/cols - 4 // border and padding
	var rows []string
	var row []string
	for i, c := range m.results.Cards {
		selected := i == m.cardCursor && m.focus == focusResults
		row = append(row, renderCard(c, width, selected))
		if len(row) == cols || i == len(m.results.Cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCard draws one result: name, description, category badge and
// tags when present.
func renderCard(c catalog.Card, width int, selected bool) string {
	width = max(width, 10)
	name := TitleStyle.Render(truncateLine(c.Name, width))

	desc := strings.Split(wordwrap.String(c.Description, width), "\n")
	if len(desc) > 2 {
		desc = desc[:2]
		desc[1] = truncateLine(desc[1]+"…", width)
	}

	meta := CategoryBadgeStyle().Render(c.Category)
	if c.LikeCount > 0 {
		meta += " " + GetLikeStyle(false).Render(fmt.Sprintf("♡ %d", c.LikeCount))
	}

	lines := []string{name, DescriptionStyle.Render(strings.Join(desc, "\n")), meta}
	if len(c.Tags) > 0 {
		lines = append(lines, HelpStyle.Render(truncateLine("#"+strings.Join(c.Tags, " #"), width)))
	}

	return GetCardStyle(selected, width).
		Height(cardContentHeight).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *BrowseModel) renderPagination() string {
	controls := m.results.Pagination
	if len(controls) == 0 {
		return ""
	}
	parts := make([]string, len(controls))
	for i, c := range controls {
		style := PageStyle
		switch {
		case m.focus == focusPagination && i == m.pageCursor:
			style = FocusedPageStyle
		case c.Current:
			style = CurrentPageStyle
		}
		parts[i] = style.Render(c.Label())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

// View renders the pane. spin is the spinner frame shown while loading.
func (m *BrowseModel) View(spin string) string {
	heading := "Categories"
	if m.showResults {
		heading = m.heading
	}
	headingLine := GetActiveHeaderStyle(m.focus != focusSearch).Render(heading)
	if m.loading {
		headingLine += " " + spin
	}
	if m.page != nil && m.showResults && !m.loading {
		headingLine += HelpStyle.Render(fmt.Sprintf("  (%d prompts)", m.page.TotalItems))
	}

	sections := []string{
		m.search.View(),
		ContentPaddingStyle.Render(headingLine),
		ContentPaddingStyle.Render(m.viewport.View()),
	}
	if m.showResults {
		if p := m.renderPagination(); p != "" {
			sections = append(sections, ContentPaddingStyle.Render(p))
		}
	}

	help := helpLine(keys.Search, keys.Submit, keys.NextPane, keys.ViewAll, keys.MyPrompts, keys.Create, keys.Home, keys.Quit)
	if m.showResults && len(m.results.Pagination) > 0 {
		help = helpLine(keys.Search, keys.Submit, keys.NextPage, keys.PrevPage, keys.ViewAll, keys.Home, keys.Quit)
	}
	sections = append(sections, ContentPaddingStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
