package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/pluqqy/promptcat/internal/logger"
	"github.com/pluqqy/promptcat/pkg/api"
	"github.com/pluqqy/promptcat/pkg/models"
)

// Placeholder and error texts shown in place of the results grid.
const (
	MsgSearching       = "Searching..."
	MsgLoading         = "Loading..."
	MsgNoResults       = "No results found"
	MsgNoCategoryMatch = "No prompts found in this category"
	MsgNoAuthorPrompts = "No prompts found for this author"
	MsgSearchError     = "An error occurred while searching"
	MsgError           = "An error occurred"
	MsgAuthorError     = "Failed to load your prompts"
)

// RequestKind distinguishes catalog searches from author listings.
type RequestKind int

const (
	RequestSearch RequestKind = iota
	RequestAuthor
)

// Request is one fetch prepared by a controller operation.
type Request struct {
	Kind         RequestKind
	Params       models.SearchParams
	AuthorID     string
	Placeholder  string
	EmptyMessage string
	ErrorMessage string
}

func (r Request) String() string {
	if r.Kind == RequestAuthor {
		return "author " + r.AuthorID
	}
	return r.Params.Encode()
}

// Outcome is the result of executing a Request.
type Outcome struct {
	Request Request
	Page    *models.SearchResultPage
	Err     error
}

// Results lays the outcome out for display. A failed outcome shows the
// request's error placeholder.
func (o Outcome) Results() Results {
	if o.Err != nil {
		return Results{Placeholder: o.Request.ErrorMessage}
	}
	return Layout(o.Page, o.Request.Params.Page, o.Request.EmptyMessage)
}

// View receives what the controller wants displayed.
type View interface {
	ShowPlaceholder(text string)
	ShowResults(results Results, page *models.SearchResultPage)
	ShowError(text string, err error)
}

// Controller owns the catalog state. Operations mutate the state and
// return the Request to execute; the caller decides whether to run it
// inline (Run) or asynchronously (Execute). A Controller is not safe for
// concurrent use.
type Controller struct {
	svc   api.Service
	state State
	log   *logger.Logger
}

// NewController creates a controller in the default state.
func NewController(svc api.Service, log *logger.Logger) *Controller {
	return &Controller{svc: svc, state: NewState(), log: log.Component(logger.ComponentCatalog)}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// SearchByText filters by free text and returns to page 1. A blank query
// is the same as ViewAll.
func (c *Controller) SearchByText(query string) Request {
	filter := QueryFilter(query)
	if filter.Kind() == FilterNone {
		return c.ViewAll()
	}
	c.state = State{Page: 1, Filter: filter}
	return c.searchRequest(MsgSearching, MsgNoResults, MsgSearchError)
}

// SearchByCategory filters by category and returns to page 1.
func (c *Controller) SearchByCategory(category string) Request {
	filter := CategoryFilter(category)
	if filter.Kind() == FilterNone {
		return c.ViewAll()
	}
	c.state = State{Page: 1, Filter: filter}
	return c.searchRequest(MsgLoading, MsgNoCategoryMatch, MsgError)
}

// ChangePage moves to page n keeping the active filter.
func (c *Controller) ChangePage(n int) Request {
	if n < 1 {
		n = 1
	}
	c.state.Page = n
	empty := MsgNoResults
	if c.state.Filter.Kind() == FilterCategory {
		empty = MsgNoCategoryMatch
	}
	return c.searchRequest(MsgLoading, empty, MsgError)
}

// ViewAll clears the filter and returns to page 1.
func (c *Controller) ViewAll() Request {
	c.state = NewState()
	return c.searchRequest(MsgLoading, MsgNoResults, MsgError)
}

// ResetHome restores the default state. Nothing is fetched.
func (c *Controller) ResetHome() {
	c.state = NewState()
}

// AuthorPrompts prepares a listing of one author's prompts. The catalog
// state is left untouched.
func (c *Controller) AuthorPrompts(authorID string) Request {
	return Request{
		Kind:         RequestAuthor,
		AuthorID:     strings.TrimSpace(authorID),
		Params:       models.SearchParams{Page: 1, PageSize: PageSize},
		Placeholder:  MsgLoading,
		EmptyMessage: MsgNoAuthorPrompts,
		ErrorMessage: MsgAuthorError,
	}
}

func (c *Controller) searchRequest(placeholder, empty, failure string) Request {
	return Request{
		Kind:         RequestSearch,
		Params:       c.state.Params(),
		Placeholder:  placeholder,
		EmptyMessage: empty,
		ErrorMessage: failure,
	}
}

// Execute performs exactly one service call for req. Errors are logged
// and returned in the outcome; nothing is retried.
func (c *Controller) Execute(ctx context.Context, req Request) Outcome {
	var (
		page *models.SearchResultPage
		err  error
	)
	switch req.Kind {
	case RequestAuthor:
		page, err = c.svc.AuthorPrompts(ctx, req.AuthorID)
	default:
		page, err = c.svc.Search(ctx, req.Params)
	}
	if err != nil {
		err = fmt.Errorf("%s: %w", strings.ToLower(req.ErrorMessage), err)
		c.log.WithFields(map[string]any{"request": req.String()}).Error(err, "Search error")
		return Outcome{Request: req, Err: err}
	}
	return Outcome{Request: req, Page: page}
}

// Run shows the placeholder, executes req and reports the outcome to view.
func (c *Controller) Run(ctx context.Context, req Request, view View) Outcome {
	view.ShowPlaceholder(req.Placeholder)
	out := c.Execute(ctx, req)
	if out.Err != nil {
		view.ShowError(req.ErrorMessage, out.Err)
		return out
	}
	view.ShowResults(out.Results(), out.Page)
	return out
}
