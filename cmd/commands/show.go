package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pluqqy/promptcat/internal/cli"
	"github.com/pluqqy/promptcat/pkg/detail"
	"github.com/pluqqy/promptcat/pkg/models"
	"github.com/pluqqy/promptcat/pkg/utils"
)

var (
	showRender bool
	showRaw    bool
)

// PromptOutput is the structured form of one prompt.
type PromptOutput struct {
	ID          string   `json:"prompt_id" yaml:"prompt_id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Category    string   `json:"category" yaml:"category"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Likes       int      `json:"like_count" yaml:"like_count"`
	Liked       bool     `json:"is_liked" yaml:"is_liked"`
	AuthorID    string   `json:"author_id,omitempty" yaml:"author_id,omitempty"`
	URL         string   `json:"url" yaml:"url"`
	Prompt      string   `json:"prompt" yaml:"prompt"`
}

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <prompt_id|url>",
		Short: "Display a prompt",
		Long: `Display the full detail of a prompt.

The prompt can be named by id or by a shared page URL carrying
?prompt_id=<id>.

Examples:
  promptcat show 42
  promptcat show "https://prompt.harshiitkgp.in/?prompt_id=42"
  promptcat show 42 --render
  promptcat show 42 --raw | pbcopy`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}

	cmd.Flags().BoolVar(&showRender, "render", false, "Render the prompt text as markdown")
	cmd.Flags().BoolVar(&showRaw, "raw", false, "Print only the prompt text")

	return cmd
}

// openPrompt resolves arg and opens the prompt it names.
func openPrompt(cmd *cobra.Command, arg string) (*detail.Controller, error) {
	loc, err := detail.ResolveArg(rt.Home, arg)
	if err != nil {
		return nil, err
	}
	if !loc.HasPrompt() {
		return nil, models.NewValidationError("prompt_id", "prompt ID is required", nil)
	}

	ctrl := detail.NewController(rt.Service, rt.Home, rt.Log)
	if err := ctrl.Start(cmd.Context(), rt.Home.WithPrompt(loc.PromptID())); err != nil {
		return nil, fmt.Errorf("failed to load prompt %s: %w", loc.PromptID(), err)
	}
	if !ctrl.State().IsOpen() {
		return nil, fmt.Errorf("prompt %s not found", loc.PromptID())
	}
	return ctrl, nil
}

func promptOutput(ctrl *detail.Controller) PromptOutput {
	s := ctrl.State()
	p := s.Prompt
	return PromptOutput{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Tags:        p.Tags,
		Likes:       s.Like.Count,
		Liked:       s.Like.Liked,
		AuthorID:    p.AuthorID,
		URL:         ctrl.Location().String(),
		Prompt:      s.Text,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	ctrl, err := openPrompt(cmd, args[0])
	if err != nil {
		return err
	}
	result := promptOutput(ctrl)

	if output().IsStructured() {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	}
	if showRaw {
		fmt.Fprintln(cmd.OutOrStdout(), result.Prompt)
		return nil
	}
	return printPrompt(cmd, result, showRender || rt.Settings.UI.RenderMarkdown)
}

func printPrompt(cmd *cobra.Command, p PromptOutput, render bool) error {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "\n%s\n", p.Name)
	fmt.Fprintln(w, strings.Repeat("=", min(len(p.Name), 80)))
	fmt.Fprintf(w, "Category:  %s\n", p.Category)
	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "Tags:      %s\n", cli.FormatTags(p.Tags))
	}
	heart := "♡"
	if p.Liked {
		heart = "♥"
	}
	fmt.Fprintf(w, "Likes:     %s %d\n", heart, p.Likes)
	fmt.Fprintf(w, "Link:      %s\n", p.URL)
	if p.Description != "" {
		fmt.Fprintf(w, "\n%s\n", p.Description)
	}
	fmt.Fprintln(w, strings.Repeat("-", 80))

	text := p.Prompt
	if render {
		rendered, err := utils.RenderMarkdown(text, 80, noColorMode)
		if err != nil {
			rt.Log.Error(err, "markdown render failed")
		} else {
			text = rendered
		}
	}
	fmt.Fprintln(w, strings.TrimRight(text, "\n"))

	if rt.Settings.UI.ShowTokenEstimate {
		fmt.Fprintf(w, "\n%s\n", utils.PromptStats(p.Prompt))
	}
	return nil
}
