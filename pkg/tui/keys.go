package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

type keyMap struct {
	Quit       key.Binding
	Search     key.Binding
	Submit     key.Binding
	Cancel     key.Binding
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	NextPane   key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	ViewAll    key.Binding
	Home       key.Binding
	MyPrompts  key.Binding
	Create     key.Binding
	Back       key.Binding
	Forward    key.Binding
	Like       key.Binding
	Customize  key.Binding
	Share      key.Binding
	SaveForm   key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Up:         key.NewBinding(key.WithKeys("up", "k")),
	Down:       key.NewBinding(key.WithKeys("down", "j")),
	Left:       key.NewBinding(key.WithKeys("left", "h")),
	Right:      key.NewBinding(key.WithKeys("right", "l")),
	NextPane:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	NextPage:   key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n", "next page")),
	PrevPage:   key.NewBinding(key.WithKeys("p", "pgup"), key.WithHelp("p", "prev page")),
	ViewAll:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "view all")),
	Home:       key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "home")),
	MyPrompts:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "my prompts")),
	Create:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload")),
	Back:       key.NewBinding(key.WithKeys("alt+left", "ctrl+b"), key.WithHelp("ctrl+b", "history back")),
	Forward:    key.NewBinding(key.WithKeys("alt+right", "ctrl+f"), key.WithHelp("ctrl+f", "history forward")),
	Like:       key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "like")),
	Customize:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "customize")),
	Share:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "share")),
	SaveForm:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
	ScrollUp:   key.NewBinding(key.WithKeys("up", "k", "pgup")),
	ScrollDown: key.NewBinding(key.WithKeys("down", "j", "pgdown")),
}

// helpLine renders "key action" pairs separated by bullets.
func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return HelpStyle.Render(strings.Join(parts, " • "))
}

// truncateLine shortens s to width cells with an ellipsis.
func truncateLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.PrintableRuneWidth(s) <= width {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}
