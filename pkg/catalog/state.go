// Package catalog holds the browse state of the prompt catalog and the
// controller that turns user actions into search requests.
package catalog

import (
	"strings"

	"github.com/pluqqy/promptcat/pkg/api"
	"github.com/pluqqy/promptcat/pkg/models"
)

// PageSize is the fixed number of prompts per results page.
const PageSize = 9

// FilterKind identifies which filter is active.
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterQuery
	FilterCategory
)

func (k FilterKind) String() string {
	switch k {
	case FilterQuery:
		return "query"
	case FilterCategory:
		return "category"
	default:
		return "none"
	}
}

// Filter is the active search filter. A free-text query and a category
// are never active together.
type Filter struct {
	kind  FilterKind
	value string
}

// NoFilter matches every prompt.
func NoFilter() Filter {
	return Filter{}
}

// QueryFilter filters by free text. A blank query is no filter.
func QueryFilter(query string) Filter {
	query = strings.TrimSpace(query)
	if query == "" {
		return NoFilter()
	}
	return Filter{kind: FilterQuery, value: query}
}

// CategoryFilter filters by category. A blank category is no filter.
func CategoryFilter(category string) Filter {
	category = strings.TrimSpace(category)
	if category == "" {
		return NoFilter()
	}
	return Filter{kind: FilterCategory, value: category}
}

// Kind returns the filter kind.
func (f Filter) Kind() FilterKind { return f.kind }

// Query returns the free-text query, or "" when the filter is not a query.
func (f Filter) Query() string {
	if f.kind != FilterQuery {
		return ""
	}
	return f.value
}

// Category returns the category, or "" when the filter is not a category.
func (f Filter) Category() string {
	if f.kind != FilterCategory {
		return ""
	}
	return f.value
}

func (f Filter) String() string {
	if f.kind == FilterNone {
		return "all prompts"
	}
	return f.kind.String() + ": " + f.value
}

// State is the current browse position.
type State struct {
	Page   int
	Filter Filter
}

// NewState returns the default state: page 1, no filter.
func NewState() State {
	return State{Page: 1}
}

// PageSize returns the fixed page size.
func (s State) PageSize() int {
	return PageSize
}

// Params serializes the state for the search endpoint.
func (s State) Params() models.SearchParams {
	page := s.Page
	if page < 1 {
		page = 1
	}
	return models.SearchParams{
		Query:     s.Filter.Query(),
		Category:  s.Filter.Category(),
		Page:      page,
		PageSize:  PageSize,
		SortBy:    api.DefaultSortBy,
		SortOrder: api.DefaultSortOrder,
	}
}
