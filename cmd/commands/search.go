package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pluqqy/promptcat/internal/cli"
	"github.com/pluqqy/promptcat/pkg/catalog"
	"github.com/pluqqy/promptcat/pkg/models"
)

var (
	searchCategory string
	searchPage     int
)

// SearchResultOutput represents the formatted search results
type SearchResultOutput struct {
	Query       string             `json:"query,omitempty" yaml:"query,omitempty"`
	Category    string             `json:"category,omitempty" yaml:"category,omitempty"`
	AuthorID    string             `json:"author_id,omitempty" yaml:"author_id,omitempty"`
	Page        int                `json:"page" yaml:"page"`
	TotalPages  int                `json:"total_pages" yaml:"total_pages"`
	TotalItems  int                `json:"total_items" yaml:"total_items"`
	Results     []SearchItemOutput `json:"results" yaml:"results"`
	Placeholder string             `json:"message,omitempty" yaml:"message,omitempty"`
}

// SearchItemOutput represents a single search result item
type SearchItemOutput struct {
	ID          string   `json:"prompt_id" yaml:"prompt_id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Category    string   `json:"category" yaml:"category"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Likes       int      `json:"like_count" yaml:"like_count"`
}

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the prompt catalog",
		Long: `Search the catalog by free text or browse a category.

Without a query or category every prompt is listed, newest first.
A query and a category cannot be combined: --category wins.

Examples:
  # Free-text search
  promptcat search email writer

  # Browse a category
  promptcat search --category Technical

  # Second page of everything, as JSON
  promptcat search --page 2 -o json`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidatePage(searchPage)
		},
		RunE: runSearch,
	}

	cmd.Flags().StringVarP(&searchCategory, "category", "c", "", "Browse a category instead of searching text")
	cmd.Flags().IntVarP(&searchPage, "page", "p", 1, "Results page")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	ctrl := catalog.NewController(rt.Service, rt.Log)

	var req catalog.Request
	switch {
	case strings.TrimSpace(searchCategory) != "":
		if strings.TrimSpace(query) != "" {
			cli.PrintWarning("ignoring query %q: a category and a query cannot be combined", query)
		}
		req = ctrl.SearchByCategory(searchCategory)
	default:
		req = ctrl.SearchByText(query)
	}
	if searchPage > 1 {
		req = ctrl.ChangePage(searchPage)
	}

	return runCatalogRequest(cmd, ctrl, req)
}

// runCatalogRequest executes req and prints the page in the chosen format.
func runCatalogRequest(cmd *cobra.Command, ctrl *catalog.Controller, req catalog.Request) error {
	view := &textView{out: cmd.OutOrStdout(), structured: output().IsStructured()}
	out := ctrl.Run(cmd.Context(), req, view)
	if out.Err != nil {
		return out.Err
	}

	filter := ctrl.State().Filter
	result := SearchResultOutput{
		Page:    req.Params.Page,
		Results: []SearchItemOutput{},
	}
	if req.Kind == catalog.RequestAuthor {
		result.AuthorID = req.AuthorID
	} else {
		result.Query = filter.Query()
		result.Category = filter.Category()
	}
	if out.Page != nil {
		result.TotalPages = out.Page.TotalPages
		result.TotalItems = out.Page.TotalItems
		for _, item := range out.Page.Items {
			result.Results = append(result.Results, searchItem(item))
		}
	}

	if output().IsStructured() {
		result.Placeholder = out.Results().Placeholder
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	}
	return nil
}

func searchItem(p models.PromptSummary) SearchItemOutput {
	return SearchItemOutput{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Tags:        p.Tags,
		Likes:       p.LikeCount,
	}
}

// textView prints controller output as text. Structured formats print
// nothing here; the caller encodes the whole result instead.
type textView struct {
	out        io.Writer
	structured bool
}

func (v *textView) ShowPlaceholder(text string) {
	if !v.structured {
		cli.PrintInfo("%s", text)
	}
}

func (v *textView) ShowError(text string, err error) {
	// the error is returned to cobra and printed by main
}

func (v *textView) ShowResults(results catalog.Results, page *models.SearchResultPage) {
	if v.structured {
		return
	}
	if len(results.Cards) == 0 {
		cli.PrintInfo("%s", results.Placeholder)
		return
	}

	table := cli.NewTableFormatter(v.out)
	table.Header("ID", "Name", "Category", "Likes", "Tags")
	for _, card := range results.Cards {
		table.Row(card.ID.String(), cli.TruncateString(card.Name, 36), card.Category,
			strconv.Itoa(card.LikeCount), cli.TruncateString(cli.FormatTags(card.Tags), 30))
	}
	table.Flush()

	if len(results.Pagination) > 0 {
		fmt.Fprintf(v.out, "\n%s\n", cli.FormatPagination(results.Pagination))
	}
	fmt.Fprintf(v.out, "\nPage %d of %d (%d prompts)\n", max(page.CurrentPage, 1), max(page.TotalPages, 1), page.TotalItems)
}
