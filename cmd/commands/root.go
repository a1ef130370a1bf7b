// Package commands implements the promptcat command tree.
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pluqqy/promptcat/internal/cli"
	"github.com/pluqqy/promptcat/internal/logger"
	"github.com/pluqqy/promptcat/pkg/api"
	"github.com/pluqqy/promptcat/pkg/config"
	"github.com/pluqqy/promptcat/pkg/detail"
	"github.com/pluqqy/promptcat/pkg/models"
	"github.com/pluqqy/promptcat/pkg/share"
	"github.com/pluqqy/promptcat/pkg/tui"
)

// Global flags
var (
	configPath   string
	apiURL       string
	demoMode     bool
	outputFormat string
	quietMode    bool
	noColorMode  bool
	logLevel     string
	startURL     string
)

// Swapped out by tests.
var (
	clipboardWriter share.Clipboard = share.SystemClipboard{}
	openLink        share.Opener    = share.OpenInBrowser
	runTUI                          = tui.Run
)

// Runtime is what every command needs once flags and config are resolved.
type Runtime struct {
	Settings   *models.Settings
	ConfigPath string
	Log        *logger.Logger
	Service    api.Service
	Home       detail.Location
}

var rt *Runtime

// NewRootCommand builds the command tree.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "promptcat [prompt_id]",
		Short: "Browse, customize and share prompts from the prompt catalog",
		Long: `promptcat is a terminal client for a catalog of reusable AI prompts.

Run it without a subcommand to open the interactive browser. Pass a
prompt id or a shared page URL to open that prompt straight away.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		RunE: runBrowser,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default is $XDG_CONFIG_HOME/promptcat/config.yaml)")
	flags.StringVar(&apiURL, "api-url", "", "Catalog API base URL")
	flags.BoolVar(&demoMode, "demo", false, "Use the built-in demo catalog instead of the remote API")
	flags.StringVarP(&outputFormat, "output", "o", "text", "Output format (text, json, yaml)")
	flags.BoolVarP(&quietMode, "quiet", "q", false, "Suppress informational output")
	flags.BoolVar(&noColorMode, "no-color", false, "Disable colored output")
	flags.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.Flags().StringVar(&startURL, "url", "", "Open the prompt named by this page URL")

	root.AddCommand(
		NewSearchCommand(),
		NewCategoriesCommand(),
		NewShowCommand(),
		NewLikeCommand(),
		NewCustomizeCommand(),
		NewCreateCommand(),
		NewAuthorCommand(),
		NewShareCommand(),
		NewMockServerCommand(),
		NewInitCommand(),
		NewVersionCommand(version),
	)

	return root
}

// setup resolves configuration in order defaults < file < .env < env <
// flags and builds the runtime.
func setup(cmd *cobra.Command) error {
	cli.SetGlobalFlags(quietMode, noColorMode, false)
	cli.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())

	if err := cli.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	settings, err := config.Load(path)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, settings)
	if err := config.Validate(settings); err != nil {
		return err
	}

	log, err := newLogger(settings, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	home, err := detail.ParseLocation(settings.Share.PageURL)
	if err != nil {
		return err
	}

	rt = &Runtime{
		Settings:   settings,
		ConfigPath: path,
		Log:        log,
		Service:    newService(settings, log),
		Home:       home.WithoutPrompt(),
	}
	return nil
}

func applyFlagOverrides(cmd *cobra.Command, s *models.Settings) {
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		s.API.BaseURL = apiURL
	}
	if flags.Changed("demo") {
		s.API.Demo = demoMode
	}
	if flags.Changed("log-level") {
		s.Logging.Level = logLevel
	}
}

func newLogger(s *models.Settings, w io.Writer) (*logger.Logger, error) {
	return logger.New(logger.Options{
		Level:   s.Logging.Level,
		Format:  s.Logging.Format,
		NoColor: noColorMode,
		Writer:  w,
	})
}

func newService(s *models.Settings, log *logger.Logger) api.Service {
	if s.API.Demo {
		return api.NewSeededCatalog(api.WithMemoryLogger(log))
	}
	return api.NewClient(s.API.BaseURL, api.WithLogger(log))
}

// openLogFile opens the browser's log file. The alternate screen leaves
// no room for log lines on stderr.
func openLogFile(s *models.Settings) (*os.File, error) {
	path := s.Logging.File
	if path == "" {
		dir, err := config.Dir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, config.LogFileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func runBrowser(cmd *cobra.Command, args []string) error {
	start := rt.Home
	arg := startURL
	if len(args) == 1 {
		arg = args[0]
	}
	if arg != "" {
		loc, err := detail.ResolveArg(rt.Home, arg)
		if err != nil {
			return err
		}
		start = loc
	}

	logFile, err := openLogFile(rt.Settings)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	log, err := newLogger(&models.Settings{Logging: models.LoggingSettings{
		Level:  rt.Settings.Logging.Level,
		Format: logger.FormatJSON,
	}}, logFile)
	if err != nil {
		return err
	}

	if err := runTUI(tui.Options{
		Service:   newService(rt.Settings, log),
		Settings:  rt.Settings,
		Home:      rt.Home,
		Start:     start,
		Log:       log,
		Clipboard: clipboardWriter,
		Open:      openLink,
	}); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}

// NewVersionCommand creates the version command
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of promptcat",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "promptcat version %s\n", version)
		},
	}
}

// output returns the requested output format.
func output() cli.OutputFormat {
	return cli.OutputFormat(outputFormat)
}
