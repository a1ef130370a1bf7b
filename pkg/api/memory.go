package api

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pluqqy/promptcat/internal/logger"
	"github.com/pluqqy/promptcat/pkg/models"
	"github.com/pluqqy/promptcat/pkg/search"
)

// Search bounds enforced by the catalog service.
const (
	MaxPageSize     = 100
	notFoundMessage = "Prompt not found"
	alreadyLiked    = "Prompt Already Liked"
)

// MemoryCatalog serves the catalog contract from memory. It backs demo
// mode and the mock server.
type MemoryCatalog struct {
	mu         sync.RWMutex
	prompts    []models.Prompt
	categories []string
	liked      map[models.PromptID]bool
	nextID     int
	matcher    *search.Matcher
	now        func() time.Time
	log        *logger.Logger
}

// MemoryOption configures a MemoryCatalog.
type MemoryOption func(*MemoryCatalog)

// WithClock sets the time source used for created prompts.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryCatalog) {
		m.now = now
	}
}

// WithMemoryLogger sets the logger.
func WithMemoryLogger(l *logger.Logger) MemoryOption {
	return func(m *MemoryCatalog) {
		m.log = l.Component(logger.ComponentAPI)
	}
}

// NewMemoryCatalog creates a catalog holding the given prompts and
// categories. Numeric prompt ids continue from the highest one present.
func NewMemoryCatalog(prompts []models.Prompt, categories []string, opts ...MemoryOption) *MemoryCatalog {
	m := &MemoryCatalog{
		prompts:    append([]models.Prompt(nil), prompts...),
		categories: append([]string(nil), categories...),
		liked:      make(map[models.PromptID]bool),
		matcher:    search.NewMatcher(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	for _, p := range m.prompts {
		if n, err := strconv.Atoi(p.ID.String()); err == nil && n > m.nextID {
			m.nextID = n
		}
	}
	return m
}

// NewSeededCatalog creates a catalog holding the bundled demo prompts.
func NewSeededCatalog(opts ...MemoryOption) *MemoryCatalog {
	return NewMemoryCatalog(SeedPrompts(), SeedCategories(), opts...)
}

func (m *MemoryCatalog) fail(err error, method, path string) error {
	m.log.WithFields(map[string]any{"method": method, "path": path}).Error(err, "API Error")
	return err
}

// Categories lists the category names.
func (m *MemoryCatalog) Categories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewNetworkError(http.MethodGet, PathCategories, err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.categories...), nil
}

// Search filters, sorts newest first and paginates.
func (m *MemoryCatalog) Search(ctx context.Context, params models.SearchParams) (*models.SearchResultPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewNetworkError(http.MethodGet, PathSearch, err)
	}
	if params.Page < 1 {
		return nil, m.fail(NewAPIError(http.StatusUnprocessableEntity, http.MethodGet, PathSearch,
			"page must be greater than or equal to 1"), http.MethodGet, PathSearch)
	}
	if params.PageSize < 1 || params.PageSize > MaxPageSize {
		return nil, m.fail(NewAPIError(http.StatusUnprocessableEntity, http.MethodGet, PathSearch,
			fmt.Sprintf("page_size must be between 1 and %d", MaxPageSize)), http.MethodGet, PathSearch)
	}

	m.mu.RLock()
	matched := m.matcher.Filter(params.Query, m.prompts)
	m.mu.RUnlock()

	if params.Category != "" {
		filtered := matched[:0]
		for _, p := range matched {
			if strings.EqualFold(p.Category, params.Category) {
				filtered = append(filtered, p)
			}
		}
		matched = filtered
	}

	sortPrompts(matched, params.SortBy, params.SortOrder)
	return paginate(matched, params.Page, params.PageSize), nil
}

func sortPrompts(prompts []models.Prompt, by, order string) {
	less := func(a, b models.Prompt) bool {
		switch by {
		case "name":
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case "like_count":
			return a.LikeCount < b.LikeCount
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	asc := strings.EqualFold(order, "asc")
	sort.SliceStable(prompts, func(i, j int) bool {
		if asc {
			return less(prompts[i], prompts[j])
		}
		return less(prompts[j], prompts[i])
	})
}

func paginate(prompts []models.Prompt, page, size int) *models.SearchResultPage {
	total := len(prompts)
	result := &models.SearchResultPage{
		Items:       []models.PromptSummary{},
		TotalItems:  total,
		TotalPages:  (total + size - 1) / size,
		CurrentPage: page,
	}
	start := (page - 1) * size
	if start >= total {
		return result
	}
	end := min(start+size, total)
	for _, p := range prompts[start:end] {
		result.Items = append(result.Items, summarize(p))
	}
	return result
}

// summarize drops the full text, as the search endpoint does.
func summarize(p models.Prompt) models.PromptSummary {
	p.Text = ""
	p.Tags = append([]string(nil), p.Tags...)
	return p
}

func (m *MemoryCatalog) indexOf(id models.PromptID) int {
	for i, p := range m.prompts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// GetPrompt returns the full detail of one prompt.
func (m *MemoryCatalog) GetPrompt(ctx context.Context, id models.PromptID) (*models.Prompt, error) {
	path := fmt.Sprintf(pathPrompt, id)
	if err := ctx.Err(); err != nil {
		return nil, NewNetworkError(http.MethodGet, path, err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, m.fail(NewAPIError(http.StatusNotFound, http.MethodGet, path, notFoundMessage), http.MethodGet, path)
	}
	p := m.prompts[i]
	p.Tags = append([]string(nil), p.Tags...)
	p.IsLiked = m.liked[id]
	return &p, nil
}

// LikePrompt records a like. A second like of the same prompt is refused.
func (m *MemoryCatalog) LikePrompt(ctx context.Context, id models.PromptID) (*models.LikeResponse, error) {
	path := fmt.Sprintf(pathLike, id)
	if err := ctx.Err(); err != nil {
		return nil, NewNetworkError(http.MethodPost, path, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, m.fail(NewAPIError(http.StatusNotFound, http.MethodPost, path, notFoundMessage), http.MethodPost, path)
	}
	if m.liked[id] {
		return nil, m.fail(NewAPIError(http.StatusBadRequest, http.MethodPost, path, alreadyLiked), http.MethodPost, path)
	}
	m.liked[id] = true
	m.prompts[i].LikeCount++
	return &models.LikeResponse{Success: true, Message: "Prompt liked successfully"}, nil
}

// Customize returns the prompt text followed by the instruction.
func (m *MemoryCatalog) Customize(ctx context.Context, req models.CustomizationRequest) (string, error) {
	if err := models.ValidateCustomization(req); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", NewNetworkError(http.MethodPost, PathCustomize, err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(req.PromptID)
	if i < 0 {
		return "", m.fail(NewAPIError(http.StatusNotFound, http.MethodPost, PathCustomize, notFoundMessage),
			http.MethodPost, PathCustomize)
	}
	return m.prompts[i].Text + "\n\nCustomized with: " + strings.TrimSpace(req.Message), nil
}

// CreatePrompt validates and stores a new prompt.
func (m *MemoryCatalog) CreatePrompt(ctx context.Context, req models.CreatePromptRequest) (*models.CreatePromptResponse, error) {
	if err := models.ValidateCreatePrompt(req); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, NewNetworkError(http.MethodPost, PathCreatePrompt, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.prompts = append(m.prompts, models.Prompt{
		ID:          models.PromptID(strconv.Itoa(m.nextID)),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Category:    req.Category,
		Text:        req.Prompt,
		Tags:        append([]string(nil), req.Tags...),
		AuthorID:    req.AuthorID,
		CreatedAt:   m.now().UTC(),
	})
	return &models.CreatePromptResponse{Message: "Prompt created successfully"}, nil
}

// AuthorPrompts lists an author's prompts, newest first, on one page.
func (m *MemoryCatalog) AuthorPrompts(ctx context.Context, authorID string) (*models.SearchResultPage, error) {
	authorID = strings.TrimSpace(authorID)
	if authorID == "" {
		return nil, models.NewValidationError("author_id", "author ID is required", nil)
	}
	path := fmt.Sprintf(pathAuthorPrompts, authorID)
	if err := ctx.Err(); err != nil {
		return nil, NewNetworkError(http.MethodGet, path, err)
	}
	m.mu.RLock()
	var mine []models.Prompt
	for _, p := range m.prompts {
		if p.AuthorID == authorID {
			mine = append(mine, p)
		}
	}
	m.mu.RUnlock()

	sortPrompts(mine, DefaultSortBy, DefaultSortOrder)
	page := &models.SearchResultPage{Items: []models.PromptSummary{}, TotalItems: len(mine), CurrentPage: 1}
	if len(mine) > 0 {
		page.TotalPages = 1
	}
	for _, p := range mine {
		page.Items = append(page.Items, summarize(p))
	}
	return page, nil
}

var _ Service = (*MemoryCatalog)(nil)
