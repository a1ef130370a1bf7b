package utils

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders text for a terminal of the given width. Plain
// output drops colors for pipes and --no-color.
func RenderMarkdown(text string, width int, plain bool) (string, error) {
	style := glamour.WithAutoStyle()
	if plain {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(text)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}
