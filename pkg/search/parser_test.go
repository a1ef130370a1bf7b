package search

import (
	"testing"

	"github.com/pluqqy/promptcat/pkg/models"
)

func TestTokenize(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "simple tokens",
			input:    "tag:email category:Professional",
			expected: []string{"tag:email", "category:Professional"},
		},
		{
			name:     "quoted value",
			input:    `name:"code review" story`,
			expected: []string{`name:"code review"`, "story"},
		},
		{
			name:     "extra whitespace",
			input:    "  email \t writer  ",
			expected: []string{"email", "writer"},
		},
		{
			name:     "empty",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.tokenize(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("tokenize(%q) = %v, want %v", tt.input, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("tokenize(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestParse(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name      string
		input     string
		wantConds []Condition
	}{
		{
			name:      "plain word",
			input:     "email",
			wantConds: []Condition{{Field: FieldContent, Operator: OperatorContains, Value: "email"}},
		},
		{
			name:  "field terms",
			input: "tag:writing cat:Creative",
			wantConds: []Condition{
				{Field: FieldTag, Operator: OperatorEquals, Value: "writing"},
				{Field: FieldCategory, Operator: OperatorEquals, Value: "Creative"},
			},
		},
		{
			name:      "words form one phrase",
			input:     "  code \t review ",
			wantConds: []Condition{{Field: FieldContent, Operator: OperatorContains, Value: "code review"}},
		},
		{
			name:  "phrase around a field term",
			input: `rock name:"Poem in" or`,
			wantConds: []Condition{
				{Field: FieldName, Operator: OperatorContains, Value: "Poem in"},
				{Field: FieldContent, Operator: OperatorContains, Value: "rock or"},
			},
		},
		{
			name:      "operator words are text",
			input:     "AND",
			wantConds: []Condition{{Field: FieldContent, Operator: OperatorContains, Value: "AND"}},
		},
		{
			name:      "unknown field is text",
			input:     "note:this",
			wantConds: []Condition{{Field: FieldContent, Operator: OperatorContains, Value: "note:this"}},
		},
		{
			name:      "empty",
			input:     "   ",
			wantConds: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := parser.Parse(tt.input)
			if len(query.Conditions) != len(tt.wantConds) {
				t.Fatalf("Parse(%q) conditions = %+v, want %+v", tt.input, query.Conditions, tt.wantConds)
			}
			for i, c := range query.Conditions {
				if c != tt.wantConds[i] {
					t.Errorf("condition[%d] = %+v, want %+v", i, c, tt.wantConds[i])
				}
			}
		})
	}
}

func TestMatcherFilter(t *testing.T) {
	prompts := []models.Prompt{
		{ID: "1", Name: "Professional Email Writer", Description: "Writes emails", Category: "Professional", Text: "Act as an email writer", Tags: []string{"email", "business"}},
		{ID: "2", Name: "Story Generator", Description: "Short stories and poems", Category: "Creative", Text: "You are a creative story generator", Tags: []string{"fiction"}},
		{ID: "3", Name: "Code Reviewer", Description: "Review code and tests", Category: "Technical", Text: "Act as a senior software engineer", Tags: []string{"code", "review"}},
	}

	tests := []struct {
		query string
		want  []models.PromptID
	}{
		{query: "", want: []models.PromptID{"1", "2", "3"}},
		{query: "EMAIL", want: []models.PromptID{"1"}},
		{query: "act as", want: []models.PromptID{"1", "3"}},
		{query: "code review", want: nil},
		{query: "review code", want: []models.PromptID{"3"}},
		{query: "and", want: []models.PromptID{"2", "3"}},
		{query: "stories and", want: []models.PromptID{"2"}},
		{query: "cat:creative", want: []models.PromptID{"2"}},
		{query: "tag:rev", want: []models.PromptID{"3"}},
		{query: "act tag:code", want: []models.PromptID{"3"}},
		{query: "nothing-matches-this", want: nil},
	}

	matcher := NewMatcher()
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := matcher.Filter(tt.query, prompts)
			if len(got) != len(tt.want) {
				t.Fatalf("Filter(%q) returned %d prompts, want %d", tt.query, len(got), len(tt.want))
			}
			for i, p := range got {
				if p.ID != tt.want[i] {
					t.Errorf("Filter(%q)[%d] = %s, want %s", tt.query, i, p.ID, tt.want[i])
				}
			}
		})
	}
}
