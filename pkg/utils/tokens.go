// Package utils holds small text helpers shared by the CLI and the TUI.
package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	wordPattern      = regexp.MustCompile(`\S+`)
	codeBlockPattern = regexp.MustCompile("```[\\s\\S]*?```")
	// {placeholder} slots in catalog prompts
	placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_ -]*)\}`)
)

// EstimateTokens roughly estimates how many model tokens text will use.
// It averages a 4-characters-per-token estimate with a 1.3-tokens-per-word
// estimate and counts fenced code at 3 characters per token.
func EstimateTokens(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	charEstimate := utf8.RuneCountInString(text) / 4
	wordEstimate := int(float64(len(wordPattern.FindAllString(text, -1))) * 1.3)
	estimate := (charEstimate + wordEstimate) / 2

	for _, block := range codeBlockPattern.FindAllString(text, -1) {
		n := utf8.RuneCountInString(block)
		estimate += n/3 - n/4
	}

	return max(estimate, 1)
}

// FormatTokenCount formats the token count for display
func FormatTokenCount(tokens int) string {
	switch {
	case tokens < 1000:
		return fmt.Sprintf("~%d tokens", tokens)
	case tokens < 10000:
		return fmt.Sprintf("~%.1fK tokens", float64(tokens)/1000)
	default:
		return fmt.Sprintf("~%.0fK tokens", float64(tokens)/1000)
	}
}

// Placeholders returns the distinct {name} slots in a prompt, in order of
// first appearance.
func Placeholders(text string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// PromptStats summarises a prompt's size for the detail footer.
func PromptStats(text string) string {
	stats := fmt.Sprintf("%s · %d characters", FormatTokenCount(EstimateTokens(text)), utf8.RuneCountInString(text))
	if slots := Placeholders(text); len(slots) > 0 {
		stats += fmt.Sprintf(" · fill in: %s", strings.Join(slots, ", "))
	}
	return stats
}
