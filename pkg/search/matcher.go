package search

import (
	"strings"

	"github.com/pluqqy/promptcat/pkg/models"
)

// Matcher evaluates parsed queries against prompts
type Matcher struct {
	parser *Parser
}

// NewMatcher creates a new matcher
func NewMatcher() *Matcher {
	return &Matcher{parser: NewParser()}
}

// Filter returns the prompts matching queryStr, preserving order. An empty
// query matches everything.
func (m *Matcher) Filter(queryStr string, prompts []models.Prompt) []models.Prompt {
	query := m.parser.Parse(queryStr)
	if query.IsEmpty() {
		return append([]models.Prompt(nil), prompts...)
	}

	var matched []models.Prompt
	for _, p := range prompts {
		if Matches(query, p) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Matches reports whether a prompt satisfies every condition of the query.
func Matches(query *Query, p models.Prompt) bool {
	if query.IsEmpty() {
		return true
	}
	for _, cond := range query.Conditions {
		if !evaluateCondition(cond, p) {
			return false
		}
	}
	return true
}

func evaluateCondition(cond Condition, p models.Prompt) bool {
	value := strings.ToLower(cond.Value)

	switch cond.Field {
	case FieldTag:
		want := models.NormalizeTagName(cond.Value)
		for _, tag := range p.Tags {
			if strings.HasPrefix(models.NormalizeTagName(tag), want) {
				return true
			}
		}
		return false
	case FieldCategory:
		return strings.EqualFold(p.Category, cond.Value)
	case FieldName:
		return strings.Contains(strings.ToLower(p.Name), value)
	default:
		return strings.Contains(strings.ToLower(p.Name), value) ||
			strings.Contains(strings.ToLower(p.Description), value) ||
			strings.Contains(strings.ToLower(p.Text), value)
	}
}
