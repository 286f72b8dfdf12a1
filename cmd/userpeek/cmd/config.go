package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/userpeek/userpeek/configs"
	"github.com/userpeek/userpeek/internal/config"
	"github.com/userpeek/userpeek/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage user configuration",
		Long: `Manage the user configuration file.

Configuration precedence (lowest to highest):
  1. Hardcoded defaults
  2. User config (~/.config/userpeek/config.yaml)
  3. Environment variables (USERPEEK_*)`,
		Example: `  # Create user config from defaults
  userpeek config init

  # Show effective configuration (merged from all sources)
  userpeek config show

  # Print user config file path
  userpeek config path`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create user configuration file",
		Long: `Create the user configuration file populated with defaults.

The file is created at ~/.config/userpeek/config.yaml
(or $XDG_CONFIG_HOME/userpeek/config.yaml if XDG_CONFIG_HOME is set).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	out := output.New(cmd.OutOrStdout())
	path := config.UserConfigPath()

	if _, err := os.Stat(path); err == nil && !force {
		out.Warningf("Configuration already exists at %s (use --force to overwrite)", path)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configs.UserConfigTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	out.Success("Created " + path)
	return nil
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long: `Show the effective configuration after merging all sources:
defaults, the user config file, then USERPEEK_* environment variables.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runConfigShow(cmd *cobra.Command, jsonOutput bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if jsonOutput {
		return output.New(cmd.OutOrStdout()).JSON(cfg)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
	return err
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print user config file path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.UserConfigPath())
			return err
		},
	}
}
