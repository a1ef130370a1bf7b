// Package detail drives the prompt detail view: the open/closed state
// machine, its page location and history, customization and likes.
package detail

import (
	"fmt"

	"github.com/pluqqy/promptcat/pkg/models"
)

// Phase is the detail view phase.
type Phase int

const (
	Closed Phase = iota
	Open
)

func (p Phase) String() string {
	if p == Open {
		return "open"
	}
	return "closed"
}

// State is the detail view state. Prompt is set only when open.
type State struct {
	Phase     Phase
	Prompt    *models.Prompt
	Like      Like
	Customize Customization
	// Text is the prompt text on display; customization replaces it.
	Text string
}

// IsOpen reports whether a prompt is shown.
func (s State) IsOpen() bool {
	return s.Phase == Open && s.Prompt != nil
}

// Event is an input to Apply.
type Event interface {
	event()
}

// OpenEvent shows a prompt.
type OpenEvent struct {
	Prompt models.Prompt
}

// CloseEvent hides the detail view.
type CloseEvent struct{}

// NavigateEvent re-derives the state from a location. Prompt holds the
// prompt the location's id resolved to, or nil when it named none or
// could not be resolved.
type NavigateEvent struct {
	Location Location
	Prompt   *models.Prompt
}

func (OpenEvent) event()     {}
func (CloseEvent) event()    {}
func (NavigateEvent) event() {}

// Apply returns the state after e.
func Apply(s State, e Event) State {
	switch e := e.(type) {
	case OpenEvent:
		return opened(e.Prompt)
	case CloseEvent:
		return State{Phase: Closed}
	case NavigateEvent:
		if !e.Location.HasPrompt() || e.Prompt == nil {
			return State{Phase: Closed}
		}
		return opened(*e.Prompt)
	default:
		panic(fmt.Sprintf("detail: unknown event %T", e))
	}
}

func opened(p models.Prompt) State {
	return State{
		Phase:     Open,
		Prompt:    &p,
		Like:      NewLike(p),
		Customize: Customization{},
		Text:      p.Text,
	}
}
