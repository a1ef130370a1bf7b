package catalog

import (
	"strconv"

	"github.com/pluqqy/promptcat/pkg/models"
)

// windowRadius is how many pages are shown either side of the current one.
const windowRadius = 2

// ControlKind identifies a pagination control.
type ControlKind int

const (
	ControlPage ControlKind = iota
	ControlEllipsis
	ControlPrevious
	ControlNext
)

// Control is one element of the pagination bar.
type Control struct {
	Kind    ControlKind
	Page    int // target page; zero for an ellipsis
	Current bool
}

// Label returns the text shown for the control.
func (c Control) Label() string {
	switch c.Kind {
	case ControlEllipsis:
		return "..."
	case ControlPrevious:
		return "Previous"
	case ControlNext:
		return "Next"
	default:
		return strconv.Itoa(c.Page)
	}
}

// Selectable reports whether activating the control changes page.
func (c Control) Selectable() bool {
	return c.Kind != ControlEllipsis && !c.Current
}

// Window returns the pagination bar for the current page out of total.
// It is empty when there is at most one page.
func Window(current, total int) []Control {
	if total <= 1 {
		return nil
	}
	current = max(1, min(current, total))

	var controls []Control
	if current > 1 {
		controls = append(controls, Control{Kind: ControlPrevious, Page: current - 1})
	}

	start := max(1, current-windowRadius)
	end := min(total, current+windowRadius)

	if start > 1 {
		controls = append(controls, Control{Kind: ControlPage, Page: 1})
		if start > 2 {
			controls = append(controls, Control{Kind: ControlEllipsis})
		}
	}
	for i := start; i <= end; i++ {
		controls = append(controls, Control{Kind: ControlPage, Page: i, Current: i == current})
	}
	if end < total {
		if end < total-1 {
			controls = append(controls, Control{Kind: ControlEllipsis})
		}
		controls = append(controls, Control{Kind: ControlPage, Page: total})
	}

	if current < total {
		controls = append(controls, Control{Kind: ControlNext, Page: current + 1})
	}
	return controls
}

// Card is the display form of one search result.
type Card struct {
	ID          models.PromptID
	Name        string
	Description string
	Category    string
	Tags        []string
	LikeCount   int
}

// Results is what a results view shows for one page.
type Results struct {
	Cards      []Card
	Pagination []Control
	// Placeholder replaces the grid when there are no cards.
	Placeholder string
}

// Layout arranges a results page. Pagination appears only when the
// results span more than one page.
func Layout(page *models.SearchResultPage, current int, emptyMessage string) Results {
	if page.IsEmpty() {
		if emptyMessage == "" {
			emptyMessage = MsgNoResults
		}
		return Results{Placeholder: emptyMessage}
	}

	cards := make([]Card, 0, len(page.Items))
	for _, item := range page.Items {
		cards = append(cards, Card{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Category:    item.Category,
			Tags:        item.Tags,
			LikeCount:   item.LikeCount,
		})
	}

	return Results{Cards: cards, Pagination: Window(current, page.TotalPages)}
}
