package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// PromptID identifies a prompt. The remote service has sent it both as a
// JSON string and as a number, so it is kept as a string either way.
type PromptID string

// UnmarshalJSON accepts a string or a number
func (id *PromptID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = PromptID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("prompt id must be a string or number: %w", err)
	}
	*id = PromptID(n.String())
	return nil
}

func (id PromptID) String() string {
	return string(id)
}

// Prompt is the full detail of a catalog entry.
type Prompt struct {
	ID          PromptID  `json:"prompt_id" yaml:"prompt_id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Category    string    `json:"category" yaml:"category"`
	Text        string    `json:"original_prompt,omitempty" yaml:"original_prompt,omitempty"`
	Tags        []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	LikeCount   int       `json:"like_count" yaml:"like_count"`
	IsLiked     bool      `json:"is_liked,omitempty" yaml:"is_liked,omitempty"`
	AuthorID    string    `json:"author_id,omitempty" yaml:"author_id,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero" yaml:"created_at,omitempty"`
}

// PromptSummary is what the search endpoint returns per item. The full
// text may be absent.
type PromptSummary = Prompt

// SearchResultPage is one page of search results.
type SearchResultPage struct {
	Items       []PromptSummary `json:"items" yaml:"items"`
	TotalItems  int             `json:"total_items" yaml:"total_items"`
	TotalPages  int             `json:"total_pages" yaml:"total_pages"`
	CurrentPage int             `json:"current_page" yaml:"current_page"`
}

// IsEmpty reports whether the page has no items to show
func (p *SearchResultPage) IsEmpty() bool {
	return p == nil || len(p.Items) == 0
}

// SearchParams is the serialized catalog state sent to the search endpoint.
type SearchParams struct {
	Query     string
	Category  string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// Encode returns the query string for the search endpoint. Empty filters
// are omitted.
func (p SearchParams) Encode() string {
	values := make([]string, 0, 6)
	add := func(key, value string) {
		values = append(values, url.QueryEscape(key)+"="+url.QueryEscape(value))
	}
	if p.Query != "" {
		add("query", p.Query)
	}
	if p.Category != "" {
		add("category", p.Category)
	}
	add("page", strconv.Itoa(p.Page))
	add("page_size", strconv.Itoa(p.PageSize))
	if p.SortBy != "" {
		add("sort_by", p.SortBy)
	}
	if p.SortOrder != "" {
		add("sort_order", p.SortOrder)
	}

	var buf bytes.Buffer
	for i, v := range values {
		if i > 0 {
			buf.WriteByte('&')
		}
		buf.WriteString(v)
	}
	return buf.String()
}

// LikeResponse is returned by the like endpoint.
type LikeResponse struct {
	Success bool   `json:"success" yaml:"success"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// CustomizationRequest asks the service for a rewritten variant of a prompt.
type CustomizationRequest struct {
	PromptID PromptID `json:"prompt_id" validate:"required"`
	Message  string   `json:"customization_message" validate:"required,customization"`
}

// CustomizationResponse carries the rewritten prompt text.
type CustomizationResponse struct {
	CustomizedPrompt string `json:"customized_prompt" yaml:"customized_prompt"`
}

// CreatePromptRequest uploads a new prompt to the catalog.
type CreatePromptRequest struct {
	Name        string   `json:"name" validate:"required,min=3,max=100"`
	Description string   `json:"description" validate:"required,min=10,max=500"`
	Category    string   `json:"category" validate:"required"`
	Prompt      string   `json:"prompt" validate:"required,min=10"`
	AuthorID    string   `json:"author_id" validate:"required,min=3"`
	Tags        []string `json:"tags"`
	IsPublic    bool     `json:"is_public"`
}

// CreatePromptResponse is the service acknowledgement of an upload.
type CreatePromptResponse struct {
	Message string `json:"message" yaml:"message"`
}
