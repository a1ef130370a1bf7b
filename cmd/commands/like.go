package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/pluqqy/promptcat/internal/cli"
)

// NewLikeCommand creates the like command
func NewLikeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "like <prompt_id|url>",
		Short: "Like a prompt",
		Long: `Record a like for a prompt. Each prompt can be liked once.

Examples:
  promptcat like 42`,
		Args: cobra.ExactArgs(1),
		RunE: runLike,
	}
}

func runLike(cmd *cobra.Command, args []string) error {
	ctrl, err := openPrompt(cmd, args[0])
	if err != nil {
		return err
	}

	msg, err := ctrl.Like(cmd.Context())
	if msg != "" {
		return errors.New(msg)
	}
	if err != nil {
		return err
	}

	result := promptOutput(ctrl)
	if output().IsStructured() {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	}
	if !ctrl.State().Like.Liked {
		cli.PrintWarning("The like for %q was not recorded", result.Name)
		return nil
	}
	cli.PrintSuccess("Liked %q (%d likes)", result.Name, result.Likes)
	return nil
}
