package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pluqqy/promptcat/pkg/catalog"
)

var authorAsk bool

// NewAuthorCommand creates the author command
func NewAuthorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "author [author_id]",
		Short: "List the prompts uploaded by an author",
		Long: `List the prompts uploaded by an author.

Without an argument the author id from your config is used.

Examples:
  promptcat author
  promptcat author 5f0c1e2a-7f8b-4c1d-9a51-0f9b8d7c6e5f -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAuthor,
	}

	cmd.Flags().BoolVarP(&authorAsk, "ask", "a", false, "Ask for the author id")

	return cmd
}

func runAuthor(cmd *cobra.Command, args []string) error {
	authorID := rt.Settings.Author.ID
	if len(args) == 1 {
		authorID = args[0]
	}
	if authorAsk || strings.TrimSpace(authorID) == "" {
		if !authorAsk && output().IsStructured() {
			return errNoAuthor
		}
		id, err := ask("Please enter your Author ID", authorID, lengthRule(1, 0))
		if err != nil {
			return err
		}
		authorID = id
	}

	ctrl := catalog.NewController(rt.Service, rt.Log)
	return runCatalogRequest(cmd, ctrl, ctrl.AuthorPrompts(authorID))
}
