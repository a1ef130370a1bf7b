package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/promptcat/pkg/api"
	"github.com/pluqqy/promptcat/pkg/catalog"
	"github.com/pluqqy/promptcat/pkg/detail"
	"github.com/pluqqy/promptcat/pkg/models"
	"github.com/pluqqy/promptcat/pkg/share"
)

var testHome = detail.MustParseLocation("https://prompts.example/")

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func newTestApp(t *testing.T, start detail.Location) (*App, *fakeClipboard, *[]string) {
	t.Helper()
	cb := &fakeClipboard{}
	var opened []string
	settings := models.DefaultSettings()
	settings.Author.ID = "demo-author"
	app := NewApp(Options{
		Service:   api.NewSeededCatalog(),
		Settings:  settings,
		Home:      testHome,
		Start:     start,
		Clipboard: cb,
		Open: func(link string) error {
			opened = append(opened, link)
			return nil
		},
	})
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return app, cb, &opened
}

// exec runs cmd, giving up on timers such as cursor blinks and status
// expiry.
func exec(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(250 * time.Millisecond):
		return nil
	}
}

// run executes cmd and feeds every resulting message back into the app
// until nothing is left. Spinner frames are not followed.
func run(a *App, cmd tea.Cmd) []tea.Msg {
	var seen []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := exec(c)
		switch m := msg.(type) {
		case nil, spinner.TickMsg:
			continue
		case tea.BatchMsg:
			queue = append(queue, m...)
			continue
		}
		seen = append(seen, msg)
		_, next := a.Update(msg)
		if _, ok := msg.(StatusMsg); ok {
			continue
		}
		queue = append(queue, next)
	}
	return seen
}

func send(a *App, msg tea.Msg) []tea.Msg {
	_, cmd := a.Update(msg)
	return run(a, cmd)
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+b":
		return tea.KeyMsg{Type: tea.KeyCtrlB}
	case "ctrl+f":
		return tea.KeyMsg{Type: tea.KeyCtrlF}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func cardNames(a *App) []string {
	var names []string
	for _, c := range a.browse.results.Cards {
		names = append(names, c.Name)
	}
	return names
}

func TestAppInitLoadsCategories(t *testing.T) {
	app, _, _ := newTestApp(t, testHome)
	run(app, app.Init())

	assert.Len(t, app.browse.categories, len(api.SeedCategories()))
	assert.False(t, app.browse.showResults)
	assert.Equal(t, browseView, app.state)
	assert.Contains(t, app.View(), "Categories")
}

func TestAppSearchByText(t *testing.T) {
	app, _, _ := newTestApp(t, testHome)

	_, cmd := app.Update(searchTextMsg{query: "email"})
	assert.True(t, app.browse.Loading())
	assert.Equal(t, catalog.MsgSearching, app.browse.placeholder)
	assert.Equal(t, catalog.FilterQuery, app.catalog.State().Filter.Kind())

	run(app, cmd)
	assert.False(t, app.browse.Loading())
	assert.Contains(t, cardNames(app), "Professional Email Writer")
	assert.Equal(t, `Results for "email"`, app.browse.heading)
	assert.Empty(t, app.browse.results.Pagination)
}

func TestAppNoResultsPlaceholder(t *testing.T) {
	app, _, _ := newTestApp(t, testHome)
	send(app, searchTextMsg{query: "zzz-nothing-matches"})

	assert.Empty(t, app.browse.results.Cards)
	assert.Equal(t, catalog.MsgNoResults, app.browse.placeholder)
	assert.Contains(t, app.View(), catalog.MsgNoResults)
}

func TestAppViewAllAndPaging(t *testing.T) {
	app, _, _ := newTestApp(t, testHome)
	send(app, keyPress("a"))

	require.Len(t, app.browse.results.Cards, catalog.PageSize)
	require.NotEmpty(t, app.browse.results.Pagination)
	assert.Equal(t, 2, app.browse.page.TotalPages)

	// "n" follows the Next control
	send(app, keyPress("n"))
	assert.Equal(t, 2, app.catalog.State().Page)
	assert.Len(t, app.browse.results.Cards, len(api.SeedPrompts())-catalog.PageSize)

	send(app, keyPress("n"))
	assert.Equal(t, 2, app.catalog.State().Page, "no Next on the last page")
}

func TestAppCategoryKeepsFilterAcrossPages(t *testing.T) {
	app, _, _ := newTestApp(t, testHome)
	send(app, searchCategoryMsg{category: "Creative"})

	state := app.catalog.State()
	assert.Equal(t, catalog.FilterCategory, state.Filter.Kind())
	assert.Equal(t, "Category: Creative", app.browse.heading)
	for _, c := range app.browse.results.Cards {
		assert.Equal(t, "Creative", c.Category)
	}
}

func TestAppResetHome(t *testing.T) {
	app, _, _ := newTestApp(t, testHome)
	send(app, searchTextMsg{query: "code"})
	send(app, openPromptMsg{id: "3"})
	require.True(t, app.detail.State().IsOpen())

	_, cmd := app.Update(keyPress("H"))
	assert.Nil(t, cmd, "reset home fetches nothing")
	assert.Equal(t, catalog.NewState(), app.catalog.State())
	assert.False(t, app.browse.showResults)
	assert.False(t, app.detail.State().IsOpen())
	assert.False(t, app.detail.Location().HasPrompt())
	assert.Equal(t, browseView, app.state)
}

func TestAppOpenAndClosePrompt(t *testing.T) {
	app, _, _ := newTestApp(t, testHome)

	send(app, openPromptMsg{id: "3"})
	require.Equal(t, detailView, app.state)
	assert.Equal(t, "Code Reviewer", app.detail.State().Prompt.Name)
	assert.Equal(t, models.PromptID("3"), app.detail.Location().PromptID())
	assert.Contains(t, app.View(), "Code Reviewer")

	send(app, keyPress("esc"))
	assert.Equal(t, browseView, app.state)
	assert.False(t, app.detail.State().IsOpen())
	assert.False(t, app.detail.Location().HasPrompt())
}

func TestAppOpenUnknownPrompt(t *testing.T) {
	app, _, _ := newTestApp(t, testHome)
	send(app, openPromptMsg{id: "999"})

	assert.Equal(t, browseView, app.state)
	assert.False(t, app.detail.State().IsOpen())
	assert.Contains(t, app.status.Message, "Prompt not found")
}

func TestAppHistoryBackForward(t *testing.T) {
	app, _, _ := newTestApp(t, testHome)
	send(app, openPromptMsg{id: "3"})
	send(app, keyPress("esc"))
	require.False(t, app.detail.State().IsOpen())

	send(app, keyPress("ctrl+b"))
	assert.Equal(t, detailView, app.state)
	require.True(t, app.detail.State().IsOpen())
	assert.Equal(t, models.PromptID("3"), app.detail.State().Prompt.ID)

	send(app, keyPress("ctrl+f"))
	assert.Equal(t, browseView, app.state)
	assert.False(t, app.detail.State().IsOpen())

	send(app, keyPress("ctrl+f"))
	assert.False(t, app.detail.State().IsOpen(), "no entry past the end")
}

func TestAppStartLocation(t *testing.T) {
	tests := []struct {
		name     string
		start    detail.Location
		wantOpen bool
	}{
		{name: "resolvable id opens", start: testHome.WithPrompt("2"), wantOpen: true},
		{name: "unknown id stays closed", start: testHome.WithPrompt("999"), wantOpen: false},
		{name: "no id stays closed", start: testHome, wantOpen: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, _ := newTestApp(t, tt.start)
			run(app, app.Init())

			assert.Equal(t, tt.wantOpen, app.detail.State().IsOpen())
			if tt.wantOpen {
				assert.Equal(t, detailView, app.state)
				assert.Equal(t, "Short Story Generator", app.detail.State().Prompt.Name)
			} else {
				assert.Equal(t, browseView, app.state)
			}
		})
	}
}

func TestAppCustomize(t *testing.T) {
	app, _, _ := newTestApp(t, testHome)
	send(app, openPromptMsg{id: "1"})

	s, ok := app.detail.State().SetInput("make it friendlier please")
	require.True(t, ok)
	app.detail.SetState(s)

	_, cmd := app.Update(customizeMsg{})
	assert.True(t, app.detail.State().Customize.Busy)
	assert.Contains(t, app.View(), detail.CustomizeBusyLabel)

	run(app, cmd)
	got := app.detail.State()
	assert.False(t, got.Customize.Busy)
	assert.Equal(t, detail.CustomizeSuccessNote, got.Customize.Note)
	assert.True(t, strings.HasSuffix(got.Text, "Customized with: make it friendlier please"))
	assert.Empty(t, got.Customize.Input)
}

func TestAppCustomizeNoteExpires(t *testing.T) {
	app, _, _ := newTestApp(t, testHome)
	send(app, openPromptMsg{id: "1"})

	_, cmd := app.Update(customizeDoneMsg{id: "1", text: "first rewrite"})
	require.NotNil(t, cmd, "success schedules the note's removal")
	first := app.noteSeq
	assert.Equal(t, detail.CustomizeSuccessNote, app.detail.State().Customize.Note)

	app.Update(customizeDoneMsg{id: "1", text: "second rewrite"})
	app.Update(noteExpiredMsg{seq: first})
	assert.Equal(t, detail.CustomizeSuccessNote, app.detail.State().Customize.Note,
		"an older timer leaves the newer note alone")

	app.Update(noteExpiredMsg{seq: app.noteSeq})
	assert.Empty(t, app.detail.State().Customize.Note)
	assert.Equal(t, "second rewrite", app.detail.State().Text)
	assert.NotContains(t, app.View(), detail.CustomizeSuccessNote)

	_, cmd = app.Update(customizeDoneMsg{id: "1", err: errors.New("boom")})
	assert.Nil(t, cmd)
	app.Update(noteExpiredMsg{seq: app.noteSeq})
	assert.NotEmpty(t, app.detail.State().Customize.Note, "error notes stay")
}

func TestAppCustomizeTooShort(t *testing.T) {
	app, _, _ := newTestApp(t, testHome)
	send(app, openPromptMsg{id: "1"})
	before := app.detail.State().Text

	s, _ := app.detail.State().SetInput("short")
	app.detail.SetState(s)
	_, cmd := app.Update(customizeMsg{})

	assert.Nil(t, cmd)
	assert.False(t, app.detail.State().Customize.Busy)
	assert.NotEmpty(t, app.detail.State().Customize.Note)
	assert.Equal(t, before, app.detail.State().Text)
}

func TestAppCustomizeInputFromKeys(t *testing.T) {
	app, _, _ := newTestApp(t, testHome)
	send(app, openPromptMsg{id: "1"})

	send(app, keyPress("c"))
	require.True(t, app.viewer.Typing())
	send(app, keyPress("shorter"))
	assert.Equal(t, "shorter", app.detail.State().Customize.Input)
	assert.Equal(t, "7/1000 characters", app.detail.State().Customize.Counter())

	// too short, ctrl+s does nothing
	_, cmd := app.Update(keyPress("ctrl+s"))
	assert.Nil(t, cmd)
	assert.True(t, app.viewer.Typing())

	send(app, keyPress("esc"))
	assert.False(t, app.viewer.Typing())
}

func TestAppLikeOnce(t *testing.T) {
	app, _, _ := newTestApp(t, testHome)
	send(app, openPromptMsg{id: "1"})
	before := app.detail.State().Like.Count

	send(app, keyPress("L"))
	got := app.detail.State().Like
	assert.Equal(t, before+1, got.Count)
	assert.True(t, got.Liked)
	assert.False(t, got.Enabled())

	send(app, keyPress("L"))
	assert.Equal(t, before+1, app.detail.State().Like.Count)
	assert.Equal(t, detail.AlreadyLikedMessage, app.status.Message)
	assert.Equal(t, StatusTypeError, app.status.Type)
}

func TestAppShareCopy(t *testing.T) {
	app, cb, _ := newTestApp(t, testHome)
	send(app, openPromptMsg{id: "1"})

	send(app, shareChosenMsg{channel: share.CopyLink})
	assert.Equal(t, "https://prompts.example/?prompt_id=1", cb.text)
	assert.Equal(t, share.CopiedMessage, app.status.Message)

	send(app, shareChosenMsg{channel: share.CopyPrompt})
	assert.Equal(t, app.detail.State().Text, cb.text)

	cb.err = errors.New("no clipboard")
	send(app, shareChosenMsg{channel: share.CopyLink})
	assert.Equal(t, share.CopyFailedMessage, app.status.Message)
}

func TestAppShareLinkAsksBeforeOpening(t *testing.T) {
	app, _, opened := newTestApp(t, testHome)
	send(app, openPromptMsg{id: "1"})

	send(app, shareChosenMsg{channel: share.Twitter})
	require.True(t, app.confirm.Active())
	assert.Empty(t, *opened)

	send(app, keyPress("y"))
	require.Len(t, *opened, 1)
	assert.True(t, strings.HasPrefix((*opened)[0], "https://twitter.com/intent/tweet?"))
	assert.Equal(t, "Opened in browser", app.status.Message)

	send(app, shareChosenMsg{channel: share.LinkedIn})
	send(app, keyPress("n"))
	assert.Len(t, *opened, 1)
}

func TestAppShareMenuKeys(t *testing.T) {
	app, cb, _ := newTestApp(t, testHome)
	send(app, openPromptMsg{id: "1"})

	send(app, keyPress("s"))
	require.True(t, app.viewer.share.Open())

	// walk to "copy link"
	for i, c := range share.Channels() {
		if c == share.CopyLink {
			for j := 0; j < i; j++ {
				send(app, keyPress("j"))
			}
		}
	}
	send(app, keyPress("enter"))
	assert.False(t, app.viewer.share.Open())
	assert.Equal(t, "https://prompts.example/?prompt_id=1", cb.text)
}

func TestAppMyPrompts(t *testing.T) {
	app, _, _ := newTestApp(t, testHome)
	send(app, keyPress("m"))

	assert.Equal(t, "My prompts", app.browse.heading)
	require.NotEmpty(t, app.browse.results.Cards)
	assert.Equal(t, catalog.NewState(), app.catalog.State(), "author listings leave the catalog state alone")
}

func TestAppCreatePrompt(t *testing.T) {
	app, _, _ := newTestApp(t, testHome)
	run(app, app.Init())

	send(app, keyPress("u"))
	require.Equal(t, createView, app.state)
	require.NotNil(t, app.form)

	send(app, submitCreateMsg{req: models.CreatePromptRequest{
		Name:        "Release notes",
		Description: "Turns a commit log into release notes",
		Category:    "Technical",
		Prompt:      "Summarise these commits as release notes: {log}",
		AuthorID:    "demo-author",
		IsPublic:    true,
	}})
	assert.Equal(t, browseView, app.state)
	assert.Nil(t, app.form)
	assert.Equal(t, StatusTypeSuccess, app.status.Type)

	send(app, searchTextMsg{query: "release notes"})
	assert.Contains(t, cardNames(app), "Release notes")
}

func TestAppCreateFormValidation(t *testing.T) {
	app, _, _ := newTestApp(t, testHome)
	run(app, app.Init())
	send(app, keyPress("u"))

	_, cmd := app.Update(keyPress("ctrl+s"))
	assert.Nil(t, cmd)
	assert.NotEmpty(t, app.form.err)
	assert.Equal(t, createView, app.state)

	send(app, keyPress("esc"))
	assert.Equal(t, browseView, app.state)
}

func TestStatusManagerKeepsNewerMessage(t *testing.T) {
	sm := NewStatusManager()
	sm.Show(StatusMsg{Text: "first"})
	sm.Show(StatusMsg{Text: "second"})

	sm.Clear(clearStatusMsg{seq: 1})
	assert.Equal(t, "second", sm.Message)

	sm.Clear(clearStatusMsg{seq: 2})
	_, ok := sm.Text()
	assert.False(t, ok)
}
