package api

import (
	"context"

	"github.com/pluqqy/promptcat/pkg/models"
)

// Endpoint paths relative to the service base URL.
const (
	PathCategories    = "/categories"
	PathSearch        = "/prompts/search"
	PathCustomize     = "/prompts/customize"
	PathCreatePrompt  = "/create_prompt"
	pathPrompt        = "/prompts/%s"
	pathLike          = "/prompts/%s/like"
	pathAuthorPrompts = "/prompts/author/%s"
)

// Default search ordering sent with every search.
const (
	DefaultSortBy    = "created_at"
	DefaultSortOrder = "desc"
)

// Service is the catalog contract. Client talks to the remote service over
// HTTP; MemoryCatalog serves the same contract from memory.
type Service interface {
	Categories(ctx context.Context) ([]string, error)
	Search(ctx context.Context, params models.SearchParams) (*models.SearchResultPage, error)
	GetPrompt(ctx context.Context, id models.PromptID) (*models.Prompt, error)
	LikePrompt(ctx context.Context, id models.PromptID) (*models.LikeResponse, error)
	Customize(ctx context.Context, req models.CustomizationRequest) (string, error)
	CreatePrompt(ctx context.Context, req models.CreatePromptRequest) (*models.CreatePromptResponse, error)
	AuthorPrompts(ctx context.Context, authorID string) (*models.SearchResultPage, error)
}
