package commands

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pluqqy/promptcat/internal/cli"
	"github.com/pluqqy/promptcat/pkg/config"
)

var (
	initForce bool
	initYes   bool
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with a fresh author id",
		Long: `Write the current settings to the config file.

An author id is generated when none is configured. It identifies the
prompts you upload and is used by 'promptcat author'.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}

	cmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
	cmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(rt.ConfigPath); err == nil {
		if !initForce {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", rt.ConfigPath)
		}
		if !initYes {
			ok, err := cli.Confirm(fmt.Sprintf("Overwrite %s?", rt.ConfigPath), false)
			if err != nil {
				return err
			}
			if !ok {
				cli.PrintInfo("Init cancelled")
				return nil
			}
		}
	}

	settings := *rt.Settings
	if settings.Author.ID == "" {
		settings.Author.ID = uuid.NewString()
	}
	if err := config.Save(rt.ConfigPath, &settings); err != nil {
		return err
	}

	cli.PrintSuccess("Wrote %s", rt.ConfigPath)
	cli.PrintInfo("Author ID: %s", settings.Author.ID)
	return nil
}
