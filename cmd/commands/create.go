package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/pluqqy/promptcat/internal/cli"
	"github.com/pluqqy/promptcat/pkg/models"
)

var (
	createName        string
	createDescription string
	createCategory    string
	createPrompt      string
	createTags        string
	createAuthor      string
	createPrivate     bool
	createInteractive bool
)

// NewCreateCommand creates the create command
func NewCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"upload"},
		Short:   "Upload a new prompt to the catalog",
		Long: `Upload a new prompt to the catalog.

Missing fields are asked for interactively. The author id defaults to
the one in your config (see 'promptcat init').

Examples:
  # Fully interactive
  promptcat create

  # From flags
  promptcat create --name "Release notes" --category Technical \
    --description "Turns a commit log into release notes" \
    --prompt "Summarise these commits as release notes: {log}" \
    --tags release,changelog`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	cmd.Flags().StringVar(&createName, "name", "", "Prompt title (3-100 characters)")
	cmd.Flags().StringVar(&createDescription, "description", "", "Short description (10-500 characters)")
	cmd.Flags().StringVar(&createCategory, "category", "", "Category")
	cmd.Flags().StringVar(&createPrompt, "prompt", "", "Prompt text (at least 10 characters)")
	cmd.Flags().StringVar(&createTags, "tags", "", "Tags (comma-separated)")
	cmd.Flags().StringVar(&createAuthor, "author", "", "Author id (default from config)")
	cmd.Flags().BoolVar(&createPrivate, "private", false, "Do not list the prompt publicly")
	cmd.Flags().BoolVarP(&createInteractive, "interactive", "i", false, "Ask for every field")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	req := models.CreatePromptRequest{
		Name:        strings.TrimSpace(createName),
		Description: strings.TrimSpace(createDescription),
		Category:    strings.TrimSpace(createCategory),
		Prompt:      createPrompt,
		AuthorID:    strings.TrimSpace(createAuthor),
		Tags:        models.ParseTags(createTags),
		IsPublic:    !createPrivate,
	}
	if req.AuthorID == "" {
		req.AuthorID = rt.Settings.Author.ID
	}

	categories, err := rt.Service.Categories(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	if createInteractive || req.Name == "" || req.Description == "" || req.Category == "" || req.Prompt == "" {
		if err := askCreateFields(&req, categories); err != nil {
			return err
		}
	}
	if req.Category != "" {
		canonical, err := cli.ValidateCategory(req.Category, categories)
		if err != nil {
			return err
		}
		req.Category = canonical
	}

	resp, err := rt.Service.CreatePrompt(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("failed to upload prompt: %w", err)
	}

	if output().IsStructured() {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, resp)
	}
	cli.PrintSuccess("%s", resp.Message)
	return nil
}

// askCreateFields fills the request interactively. Fields given as flags
// become the defaults.
func askCreateFields(req *models.CreatePromptRequest, categories []string) error {
	var err error
	if req.Name, err = ask("Prompt title", req.Name, lengthRule(3, 100)); err != nil {
		return err
	}
	if req.Description, err = ask("Description", req.Description, lengthRule(10, 500)); err != nil {
		return err
	}

	if len(categories) > 0 {
		sel := promptui.Select{Label: "Category", Items: categories, Size: 10}
		for i, c := range categories {
			if strings.EqualFold(c, req.Category) {
				sel.CursorPos = i
			}
		}
		if _, req.Category, err = sel.Run(); err != nil {
			return fmt.Errorf("category selection: %w", err)
		}
	} else if req.Category, err = ask("Category", req.Category, lengthRule(1, 100)); err != nil {
		return err
	}

	if req.Prompt, err = ask("Prompt text", req.Prompt, lengthRule(10, 0)); err != nil {
		return err
	}

	tags, err := ask("Tags (comma-separated)", strings.Join(req.Tags, ", "), nil)
	if err != nil {
		return err
	}
	req.Tags = models.ParseTags(tags)

	if req.AuthorID, err = ask("Author ID", req.AuthorID, lengthRule(3, 0)); err != nil {
		return err
	}
	return nil
}

func ask(label, def string, validate promptui.ValidateFunc) (string, error) {
	p := promptui.Prompt{Label: label, Default: def, Validate: validate, AllowEdit: def != ""}
	value, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("%s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(value), nil
}

// lengthRule accepts trimmed input of min..max characters; max 0 is
// unbounded.
func lengthRule(minLen, maxLen int) promptui.ValidateFunc {
	return func(input string) error {
		n := len([]rune(strings.TrimSpace(input)))
		if n < minLen {
			return fmt.Errorf("must be at least %d characters", minLen)
		}
		if maxLen > 0 && n > maxLen {
			return fmt.Errorf("must be at most %d characters", maxLen)
		}
		return nil
	}
}

var errNoAuthor = errors.New("no author id given and none configured; run 'promptcat init' or pass one")
