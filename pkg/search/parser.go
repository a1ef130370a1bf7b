package search

import (
	"regexp"
	"strings"
)

// FieldType represents the prompt field a condition applies to
type FieldType string

const (
	FieldTag      FieldType = "tag"
	FieldCategory FieldType = "category"
	FieldName     FieldType = "name"
	FieldContent  FieldType = "content"
)

// Operator represents how a condition compares its value
type Operator string

const (
	OperatorEquals   Operator = "="
	OperatorContains Operator = "contains"
)

// Condition represents a single search condition
type Condition struct {
	Field    FieldType
	Operator Operator
	Value    string
}

// Query represents a parsed search query. Every condition must hold.
type Query struct {
	Conditions []Condition
	Raw        string // Original query string
}

// IsEmpty reports whether the query matches everything
func (q *Query) IsEmpty() bool {
	return q == nil || len(q.Conditions) == 0
}

// Parser handles parsing of search queries
type Parser struct {
	fieldPattern  *regexp.Regexp
	quotedPattern *regexp.Regexp
}

// NewParser creates a new search query parser
func NewParser() *Parser {
	return &Parser{
		fieldPattern:  regexp.MustCompile(`^(\w+):(.+)$`),
		quotedPattern: regexp.MustCompile(`^"([^"]*)"$`),
	}
}

// Parse parses a search query string into a Query object.
//
// The fields tag:, category: (or cat:) and name: become their own
// conditions. All remaining words, in order and joined by single spaces,
// form one substring matched against name, description and prompt text.
// Words such as "and" or "not" are plain text.
func (p *Parser) Parse(input string) *Query {
	query := &Query{Raw: input, Conditions: []Condition{}}

	var text []string
	for _, token := range p.tokenize(input) {
		if cond, ok := p.parseField(token); ok {
			query.Conditions = append(query.Conditions, cond)
			continue
		}
		text = append(text, p.unquote(token))
	}

	if phrase := strings.TrimSpace(strings.Join(text, " ")); phrase != "" {
		query.Conditions = append(query.Conditions, Condition{
			Field:    FieldContent,
			Operator: OperatorContains,
			Value:    phrase,
		})
	}

	return query
}

// tokenize splits the input on whitespace outside double quotes
func (p *Parser) tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case (r == ' ' || r == '\t') && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return tokens
}

// parseField recognises a field term. An unknown prefix is plain text, so
// "note:" in a query still matches literally.
func (p *Parser) parseField(token string) (Condition, bool) {
	matches := p.fieldPattern.FindStringSubmatch(token)
	if len(matches) != 3 {
		return Condition{}, false
	}
	value := p.unquote(matches[2])
	switch strings.ToLower(matches[1]) {
	case "tag":
		return Condition{Field: FieldTag, Operator: OperatorEquals, Value: value}, true
	case "category", "cat":
		return Condition{Field: FieldCategory, Operator: OperatorEquals, Value: value}, true
	case "name":
		return Condition{Field: FieldName, Operator: OperatorContains, Value: value}, true
	}
	return Condition{}, false
}

// unquote removes quotes from a string if present
func (p *Parser) unquote(s string) string {
	if matches := p.quotedPattern.FindStringSubmatch(s); len(matches) == 2 {
		return matches[1]
	}
	return s
}
