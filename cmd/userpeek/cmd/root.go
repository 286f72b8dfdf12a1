// Package cmd provides the CLI commands for userpeek.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/userpeek/userpeek/internal/avatar"
	"github.com/userpeek/userpeek/internal/config"
	"github.com/userpeek/userpeek/internal/logging"
	"github.com/userpeek/userpeek/internal/platform"
	"github.com/userpeek/userpeek/internal/search"
	"github.com/userpeek/userpeek/internal/ui"
	"github.com/userpeek/userpeek/pkg/version"
)

// Debug logging flag
var (
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the userpeek CLI.
func NewRootCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "userpeek",
		Short: "Interactive user search with avatar previews",
		Long: `Userpeek is a terminal widget for looking up user profiles.

Type to search; results appear in a dropdown as you pause typing,
with avatar thumbnails resolved in the background. Select a result
to open the full profile view.

Run 'userpeek' with no arguments to start the interactive widget,
or use the one-shot subcommands for scripting.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			return runWidget(noColor)
		},
	}

	cmd.SetVersionTemplate("userpeek version {{.Version}}\n")

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	// Debug logging flag
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.userpeek/logs/")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newAvatarCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging sets up file logging. The TUI owns the terminal, so
// nothing is ever written to stderr.
func startLogging(_ *cobra.Command, _ []string) error {
	logCfg := logging.DefaultConfig()
	if cfg, err := config.Load(); err == nil {
		logCfg.Level = cfg.LogLevel
	}
	if debugMode {
		logCfg = logging.DebugConfig()
	}

	logger, cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)

	if debugMode {
		slog.Info("debug logging enabled",
			slog.String("log_file", logging.DefaultLogPath()),
			slog.String("version", version.Version))
	}
	return nil
}

// stopLogging flushes and closes the log file.
func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// runWidget wires the client, resolver and controller together and
// runs the interactive widget until the user quits.
func runWidget(noColor bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client := platform.NewClient(platform.Config{
		BaseURL:      cfg.Endpoints.BaseURL,
		ThumbnailURL: cfg.Endpoints.ThumbnailURL,
		ProfileURL:   cfg.Endpoints.ProfileURL,
	})
	defer client.Close()

	resolver := avatar.NewResolver(client, avatar.NewCache(), avatar.Config{
		Size:           cfg.Avatar.Size,
		Format:         cfg.Avatar.Format,
		PlaceholderURL: cfg.Avatar.PlaceholderURL,
	}, slog.Default())

	controller := search.NewController(client, search.Config{
		Window:         cfg.Search.DebounceWindow,
		MinQueryLength: cfg.Search.MinQueryLength,
		Limit:          cfg.Search.Limit,
	}, slog.Default())
	defer controller.Stop()

	slog.Info("widget_started",
		slog.String("base_url", cfg.Endpoints.BaseURL),
		slog.Duration("debounce", cfg.Search.DebounceWindow))

	return ui.Run(ui.Config{
		Controller: controller,
		Avatars:    resolver,
		Linker:     client,
		NoColor:    noColor,
	})
}
