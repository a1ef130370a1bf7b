package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/promptcat/internal/cli"
	"github.com/pluqqy/promptcat/pkg/share"
)

var (
	shareVia  string
	shareOpen bool
)

// ShareOutput is the structured result of a share.
type ShareOutput struct {
	ID      string `json:"prompt_id" yaml:"prompt_id"`
	Channel string `json:"channel" yaml:"channel"`
	Link    string `json:"link,omitempty" yaml:"link,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// NewShareCommand creates the share command
func NewShareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share <prompt_id|url>",
		Short: "Share a prompt by email, Twitter, LinkedIn or clipboard",
		Long: `Build a sharing link for a prompt, or copy it to the clipboard.

Channels:
  email        mailto link with the prompt title and text
  twitter      tweet with the title and page link
  linkedin     LinkedIn share of the page link
  copy         copy the page link to the clipboard
  copy-prompt  copy the prompt text to the clipboard

Examples:
  promptcat share 42 --via twitter
  promptcat share 42 --via email --open
  promptcat share 42 --via copy`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := cli.ValidateShareChannel(shareVia)
			return err
		},
		RunE: runShare,
	}

	cmd.Flags().StringVar(&shareVia, "via", string(share.CopyLink), "Share channel (email, twitter, linkedin, copy, copy-prompt)")
	cmd.Flags().BoolVar(&shareOpen, "open", false, "Open the link in the default browser or mail client")

	return cmd
}

func runShare(cmd *cobra.Command, args []string) error {
	channel, err := cli.ValidateShareChannel(shareVia)
	if err != nil {
		return err
	}
	ctrl, err := openPrompt(cmd, args[0])
	if err != nil {
		return err
	}

	s := ctrl.State()
	target := share.Target{Title: s.Prompt.Name, Text: s.Text, PageURL: ctrl.Location().String()}
	result := ShareOutput{ID: s.Prompt.ID.String(), Channel: string(channel)}

	if channel.IsCopy() {
		msg, err := share.Copy(clipboardWriter, channel, target)
		if err != nil {
			rt.Log.Error(err, "clipboard copy failed")
			return fmt.Errorf("%s: %w", msg, err)
		}
		result.Message = msg
	} else {
		link, err := share.Link(channel, target)
		if err != nil {
			return err
		}
		result.Link = link
		if shareOpen {
			if err := openLink(link); err != nil {
				return fmt.Errorf("failed to open link: %w", err)
			}
		}
	}

	if output().IsStructured() {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	}
	if result.Link != "" {
		fmt.Fprintln(cmd.OutOrStdout(), result.Link)
		return nil
	}
	cli.PrintSuccess("%s", result.Message)
	return nil
}
