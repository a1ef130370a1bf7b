package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pluqqy/promptcat/internal/cli"
	"github.com/pluqqy/promptcat/pkg/detail"
	"github.com/pluqqy/promptcat/pkg/models"
)

// CustomizeOutput is the structured result of a customization.
type CustomizeOutput struct {
	ID          string `json:"prompt_id" yaml:"prompt_id"`
	Name        string `json:"name" yaml:"name"`
	Instruction string `json:"customization_message" yaml:"customization_message"`
	Prompt      string `json:"customized_prompt" yaml:"customized_prompt"`
}

// NewCustomizeCommand creates the customize command
func NewCustomizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "customize <prompt_id|url> <instruction>",
		Short: "Rewrite a prompt to your needs",
		Long: fmt.Sprintf(`Ask the catalog service to rewrite a prompt following your instruction.

The instruction must be %d to %d characters long.

Examples:
  promptcat customize 42 "make it suitable for a legal audience"
  promptcat customize 42 shorter and friendlier, with bullet points`,
			models.MinCustomizationLength, models.MaxCustomizationLength),
		Args: cobra.MinimumNArgs(2),
		RunE: runCustomize,
	}
}

func runCustomize(cmd *cobra.Command, args []string) error {
	instruction := strings.Join(args[1:], " ")
	if !models.CustomizationLengthOK(instruction) {
		return models.NewValidationError("customization_message",
			fmt.Sprintf("instruction is %d characters, must be between %d and %d",
				models.CustomizationLength(instruction), models.MinCustomizationLength, models.MaxCustomizationLength), nil)
	}

	ctrl, err := openPrompt(cmd, args[0])
	if err != nil {
		return err
	}

	s, ok := ctrl.State().SetInput(instruction)
	if !ok {
		return errors.New("instruction is too long")
	}
	ctrl.SetState(s)

	if !output().IsStructured() {
		cli.PrintInfo("%s", detail.CustomizeBusyLabel)
	}
	if err := ctrl.Customize(cmd.Context()); err != nil {
		return fmt.Errorf("failed to customize prompt: %w", err)
	}

	result := CustomizeOutput{
		ID:          ctrl.State().Prompt.ID.String(),
		Name:        ctrl.State().Prompt.Name,
		Instruction: strings.TrimSpace(instruction),
		Prompt:      ctrl.State().Text,
	}
	if output().IsStructured() {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	}

	cli.PrintSuccess("%s", ctrl.State().Customize.Note)
	fmt.Fprintln(cmd.OutOrStdout(), result.Prompt)
	return nil
}
