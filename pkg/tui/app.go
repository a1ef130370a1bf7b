// Package tui is the interactive catalog browser.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/promptcat/internal/logger"
	"github.com/pluqqy/promptcat/pkg/api"
	"github.com/pluqqy/promptcat/pkg/catalog"
	"github.com/pluqqy/promptcat/pkg/detail"
	"github.com/pluqqy/promptcat/pkg/models"
	"github.com/pluqqy/promptcat/pkg/share"
)

// Options wires the browser to its collaborators.
type Options struct {
	Service  api.Service
	Settings *models.Settings
	// Home is the page location without a prompt; Start is where the
	// browser opens and may name one.
	Home      detail.Location
	Start     detail.Location
	Log       *logger.Logger
	Clipboard share.Clipboard
	Open      share.Opener
}

type sessionState int

const (
	browseView sessionState = iota
	detailView
	createView
)

// Results of service calls, delivered back to Update.
type (
	categoriesLoadedMsg struct {
		categories []string
		err        error
	}
	searchDoneMsg struct {
		outcome catalog.Outcome
	}
	promptLoadedMsg struct {
		id     models.PromptID
		prompt *models.Prompt
		err    error
	}
	navigatedMsg struct {
		loc    detail.Location
		prompt *models.Prompt
		err    error
	}
	customizeDoneMsg struct {
		id   models.PromptID
		text string
		err  error
	}
	// noteExpiredMsg ends the customization success note it was scheduled for.
	noteExpiredMsg struct {
		seq int
	}
	likeDoneMsg struct {
		id   models.PromptID
		resp *models.LikeResponse
		err  error
	}
	createDoneMsg struct {
		resp *models.CreatePromptResponse
		err  error
	}
	linkOpenedMsg struct {
		link string
		err  error
	}
)

// customizeNoteDuration is how long the customization success note stays.
const customizeNoteDuration = 3 * time.Second

// App is the root bubbletea model.
type App struct {
	opts    Options
	ctx     context.Context
	state   sessionState
	catalog *catalog.Controller
	detail  *detail.Controller

	browse  *BrowseModel
	viewer  *PromptViewerModel
	form    *CreateFormModel
	confirm *ConfirmationModel
	status  *StatusManager
	spinner spinner.Model
	noteSeq int
	log     *logger.Logger

	categories []string
	width      int
	height     int
}

// NewApp builds the browser. The start location is resolved by Init.
func NewApp(opts Options) *App {
	if opts.Settings == nil {
		opts.Settings = models.DefaultSettings()
	}
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = share.SystemClipboard{}
	}
	if opts.Open == nil {
		opts.Open = share.OpenInBrowser
	}

	d := detail.NewController(opts.Service, opts.Home, opts.Log)
	if opts.Start.HasPrompt() {
		d.History().Replace(opts.Start)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorActive))
	log := opts.Log.Component(logger.ComponentBrowser)

	return &App{
		opts:    opts,
		ctx:     context.Background(),
		state:   browseView,
		catalog: catalog.NewController(opts.Service, opts.Log),
		detail:  d,
		browse:  NewBrowseModel(),
		viewer:  NewPromptViewerModel(d, opts.Settings, log),
		confirm: NewConfirmation(),
		status:  NewStatusManager(),
		spinner: s,
		log:     log,
	}
}

// Run starts the browser on the alternate screen and blocks until it
// quits.
func Run(opts Options) error {
	p := tea.NewProgram(NewApp(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loadCategories()}
	if loc := a.detail.Location(); loc.HasPrompt() {
		a.viewer.loading = true
		a.state = detailView
		cmds = append(cmds, a.resolve(loc), a.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case spinner.TickMsg:
		if !a.busy() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case StatusMsg:
		return a, a.status.Show(msg)

	case clearStatusMsg:
		a.status.Clear(msg)
		return a, nil

	case categoriesLoadedMsg:
		if msg.err != nil {
			a.log.Error(msg.err, "Error loading categories")
		}
		a.categories = msg.categories
		a.browse.SetCategories(msg.categories, msg.err)
		if a.form != nil {
			a.form.SetCategories(msg.categories)
		}
		return a, nil

	// catalog intents
	case searchTextMsg:
		return a, a.runRequest(a.catalog.SearchByText(msg.query))
	case searchCategoryMsg:
		return a, a.runRequest(a.catalog.SearchByCategory(msg.category))
	case changePageMsg:
		return a, a.runRequest(a.catalog.ChangePage(msg.page))
	case searchDoneMsg:
		a.applyOutcome(msg.outcome)
		return a, nil

	// detail intents
	case openPromptMsg:
		return a, a.openPrompt(msg.id)
	case promptLoadedMsg:
		return a, a.promptLoaded(msg)
	case navigatedMsg:
		return a, a.navigated(msg)
	case closeDetailMsg:
		a.closeDetail()
		return a, nil
	case customizeMsg:
		return a, a.customize()
	case customizeDoneMsg:
		return a, a.customizeDone(msg)
	case noteExpiredMsg:
		if msg.seq == a.noteSeq {
			a.detail.SetState(a.detail.State().ExpireNote())
		}
		return a, nil
	case likeMsg:
		return a, a.like()
	case likeDoneMsg:
		return a, a.likeDone(msg)
	case shareChosenMsg:
		return a, a.share(msg.channel)
	case linkOpenedMsg:
		if msg.err != nil {
			a.log.Error(msg.err, "Error opening link")
			return a, showError("Failed to open link: " + msg.err.Error())
		}
		return a, showSuccess("Opened in browser")

	// upload intents
	case submitCreateMsg:
		return a, a.createPrompt(msg.req)
	case createDoneMsg:
		return a, a.createDone(msg)
	case cancelCreateMsg:
		a.form = nil
		a.state = browseView
		return a, nil
	}

	return a, a.routeToActive(msg)
}

func (a *App) routeToActive(msg tea.Msg) tea.Cmd {
	switch a.state {
	case detailView:
		return a.viewer.Update(msg)
	case createView:
		if a.form != nil {
			return a.form.Update(msg)
		}
	default:
		return a.browse.Update(msg)
	}
	return nil
}

func (a *App) resize() {
	body := max(a.height-headerHeight()-1, 5)
	a.browse.SetSize(a.width, body)
	a.viewer.SetSize(a.width, body)
	if a.form != nil {
		a.form.SetWidth(a.width)
	}
}

// typing reports whether the active view captures printable keys.
func (a *App) typing() bool {
	switch a.state {
	case detailView:
		return a.viewer.Typing()
	case createView:
		return true
	default:
		return a.browse.Typing()
	}
}

func (a *App) busy() bool {
	return a.browse.Loading() || a.viewer.Busy() || (a.form != nil && a.form.submitting)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	if a.confirm.Active() {
		return a.confirm.Update(msg)
	}

	switch {
	case key.Matches(msg, keys.Back) && !a.typing():
		return a.navigate(false)
	case key.Matches(msg, keys.Forward) && !a.typing():
		return a.navigate(true)
	}

	if a.typing() || (a.state == detailView && a.viewer.share.Open()) {
		return a.routeToActive(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Home):
		a.resetHome()
		return nil
	case key.Matches(msg, keys.ViewAll) && a.state == browseView:
		return a.runRequest(a.catalog.ViewAll())
	case key.Matches(msg, keys.MyPrompts) && a.state == browseView:
		return a.myPrompts()
	case key.Matches(msg, keys.Create) && a.state == browseView:
		a.form = NewCreateFormModel(a.categories, a.opts.Settings.Author.ID)
		a.form.SetWidth(a.width)
		a.state = createView
		return nil
	}
	return a.routeToActive(msg)
}

// runRequest shows the request's placeholder and executes it off the
// update loop. Outcomes apply in arrival order.
func (a *App) runRequest(req catalog.Request) tea.Cmd {
	a.browse.Begin(req, a.heading(req))
	ctrl, ctx := a.catalog, a.ctx
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		return searchDoneMsg{outcome: ctrl.Execute(ctx, req)}
	})
}

func (a *App) applyOutcome(out catalog.Outcome) {
	if out.Err != nil {
		a.browse.ShowError(out.Request.ErrorMessage, out.Err)
		return
	}
	a.browse.ShowResults(out.Results(), out.Page)
}

func (a *App) heading(req catalog.Request) string {
	if req.Kind == catalog.RequestAuthor {
		return "My prompts"
	}
	f := a.catalog.State().Filter
	switch f.Kind() {
	case catalog.FilterQuery:
		return fmt.Sprintf("Results for %q", f.Query())
	case catalog.FilterCategory:
		return "Category: " + f.Category()
	default:
		return "All prompts"
	}
}

func (a *App) myPrompts() tea.Cmd {
	id := strings.TrimSpace(a.opts.Settings.Author.ID)
	if id == "" {
		return showError("No author id configured. Run 'promptcat init' first.")
	}
	return a.runRequest(a.catalog.AuthorPrompts(id))
}

// resetHome restores the default catalog state without fetching and
// closes any open prompt.
func (a *App) resetHome() {
	a.catalog.ResetHome()
	if a.detail.State().IsOpen() {
		a.detail.Close()
	}
	a.form = nil
	a.state = browseView
	a.browse.ShowHome()
}

func (a *App) loadCategories() tea.Cmd {
	svc, ctx := a.opts.Service, a.ctx
	return func() tea.Msg {
		categories, err := svc.Categories(ctx)
		return categoriesLoadedMsg{categories: categories, err: err}
	}
}

func (a *App) openPrompt(id models.PromptID) tea.Cmd {
	ctrl, ctx, loc := a.detail, a.ctx, a.opts.Home.WithPrompt(id)
	a.viewer.loading = true
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		p, err := ctrl.Resolve(ctx, loc)
		return promptLoadedMsg{id: id, prompt: p, err: err}
	})
}

func (a *App) promptLoaded(msg promptLoadedMsg) tea.Cmd {
	a.viewer.loading = false
	if msg.err != nil {
		return showError("Error loading prompt: " + api.Message(msg.err))
	}
	if msg.prompt == nil {
		return showError("Prompt not found")
	}
	a.detail.Open(*msg.prompt)
	a.state = detailView
	a.viewer.Reset()
	return nil
}

func (a *App) closeDetail() {
	a.detail.Close()
	a.viewer.Reset()
	a.state = browseView
}

// navigate moves through history and resolves the new location.
func (a *App) navigate(forward bool) tea.Cmd {
	h := a.detail.History()
	var (
		loc detail.Location
		ok  bool
	)
	if forward {
		loc, ok = h.Forward()
	} else {
		loc, ok = h.Back()
	}
	if !ok {
		return nil
	}
	if loc.HasPrompt() {
		a.viewer.loading = true
	}
	return tea.Batch(a.spinner.Tick, a.resolve(loc))
}

func (a *App) resolve(loc detail.Location) tea.Cmd {
	ctrl, ctx := a.detail, a.ctx
	return func() tea.Msg {
		p, err := ctrl.Resolve(ctx, loc)
		return navigatedMsg{loc: loc, prompt: p, err: err}
	}
}

func (a *App) navigated(msg navigatedMsg) tea.Cmd {
	if msg.loc.String() != a.detail.Location().String() {
		// history moved again while this one was loading
		return nil
	}
	a.viewer.loading = false
	a.detail.Arrive(msg.loc, msg.prompt)
	a.viewer.Reset()
	if a.detail.State().IsOpen() {
		a.state = detailView
	} else if a.state == detailView {
		a.state = browseView
	}
	if msg.err != nil {
		return showError("Error loading prompt: " + api.Message(msg.err))
	}
	return nil
}

func (a *App) customize() tea.Cmd {
	s, req, err := a.detail.State().BeginCustomize()
	if err != nil {
		a.log.Error(err, "Customization error")
		s.Customize.Note = api.Message(err)
		a.detail.SetState(s)
		return nil
	}
	a.detail.SetState(s)

	svc, ctx := a.opts.Service, a.ctx
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		text, err := svc.Customize(ctx, req)
		return customizeDoneMsg{id: req.PromptID, text: text, err: err}
	})
}

func (a *App) customizeDone(msg customizeDoneMsg) tea.Cmd {
	if msg.err != nil {
		a.log.WithFields(map[string]any{"prompt_id": msg.id.String()}).Error(msg.err, "Customization error")
	}
	a.detail.SetState(a.detail.State().FinishCustomize(msg.id, msg.text, msg.err))
	if s := a.detail.State(); msg.err != nil || !s.IsOpen() || s.Prompt.ID != msg.id {
		return nil
	}
	a.viewer.ClearInput()
	a.viewer.Refresh()
	a.viewer.viewport.GotoTop()

	a.noteSeq++
	seq := a.noteSeq
	return tea.Tick(customizeNoteDuration, func(time.Time) tea.Msg {
		return noteExpiredMsg{seq: seq}
	})
}

func (a *App) like() tea.Cmd {
	s, id, err := a.detail.State().BeginLike()
	if err != nil {
		return showError(err.Error())
	}
	a.detail.SetState(s)

	svc, ctx := a.opts.Service, a.ctx
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		resp, err := svc.LikePrompt(ctx, id)
		return likeDoneMsg{id: id, resp: resp, err: err}
	})
}

func (a *App) likeDone(msg likeDoneMsg) tea.Cmd {
	if msg.err != nil {
		a.log.WithFields(map[string]any{"prompt_id": msg.id.String()}).Error(msg.err, "Error liking prompt")
	}
	s, failure := a.detail.State().FinishLike(msg.id, msg.resp, msg.err)
	a.detail.SetState(s)
	if failure != "" {
		return showError(failure)
	}
	if s.IsOpen() && s.Prompt.ID == msg.id && s.Like.Liked {
		return showSuccess("Liked!")
	}
	return nil
}

func (a *App) share(channel share.Channel) tea.Cmd {
	s := a.detail.State()
	if !s.IsOpen() {
		return nil
	}
	target := share.Target{Title: s.Prompt.Name, Text: s.Text, PageURL: a.detail.Location().String()}

	if channel.IsCopy() {
		msg, err := share.Copy(a.opts.Clipboard, channel, target)
		if err != nil {
			a.log.Error(err, "clipboard copy failed")
			return showError(msg)
		}
		return showSuccess(msg)
	}

	link, err := share.Link(channel, target)
	if err != nil {
		return showError(err.Error())
	}
	open := a.opts.Open
	a.confirm.Show("Open "+channel.Label()+" in your browser?", link,
		func() tea.Cmd {
			return func() tea.Msg { return linkOpenedMsg{link: link, err: open(link)} }
		},
		func() tea.Cmd { return showInfo(link) })
	return nil
}

func (a *App) createPrompt(req models.CreatePromptRequest) tea.Cmd {
	svc, ctx := a.opts.Service, a.ctx
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		resp, err := svc.CreatePrompt(ctx, req)
		return createDoneMsg{resp: resp, err: err}
	})
}

func (a *App) createDone(msg createDoneMsg) tea.Cmd {
	if msg.err != nil {
		a.log.Error(msg.err, "Error uploading prompt")
		if a.form != nil {
			a.form.SetError("Failed to upload prompt: " + api.Message(msg.err))
		}
		return nil
	}
	a.form = nil
	a.state = browseView
	text := "Prompt created successfully"
	if msg.resp != nil && msg.resp.Message != "" {
		text = msg.resp.Message
	}
	return showSuccess(text)
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	spin := a.spinner.View()
	var title, content string
	switch a.state {
	case detailView:
		title = "Prompt"
		content = a.viewer.View(spin)
	case createView:
		title = "Upload"
		if a.form != nil {
			content = a.form.View(spin)
		}
	default:
		title = "Prompt catalog"
		content = a.browse.View(spin)
	}

	sections := []string{renderHeader(a.width, title), content}
	if c := a.confirm.View(a.width); c != "" {
		sections = append(sections, c)
	}
	if bar := a.status.View(a.width); bar != "" {
		sections = append(sections, bar)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
