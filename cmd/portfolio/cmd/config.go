package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/portfolio/config"
	"github.com/rustyeddy/portfolio/internal/logger"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage portfolio configuration files.

Subcommands:
  init     - Generate an example configuration file
  validate - Validate an existing configuration file

Examples:
  portfolio config init -o portfolio.yaml
  portfolio config validate -f portfolio.yaml`,
	// config files are handled here, not loaded
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Init(logLevel, nil)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate an example configuration file",
	Long: `Create a new configuration file with two example sources.

Example:
  portfolio config init -o portfolio.yaml`,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Check if a configuration file is valid and can be loaded.

Example:
  portfolio config validate -f portfolio.yaml`,
	RunE: runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", defaultConfig, "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", defaultConfig, "path to config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := config.Example().SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created example configuration: %s\n", configInitOutput)
	fmt.Fprintln(out, "\nEdit the source paths and run with:")
	fmt.Fprintf(out, "  portfolio summary --config %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	c, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Configuration valid: %s\n", configValidatePath)
	for _, s := range c.Sources {
		state := "disabled"
		if s.Enabled {
			state = "enabled"
		}
		fmt.Fprintf(out, "  Source: %s (%s) %s\n", s.Label(), state, s.Path)
	}
	fmt.Fprintf(out, "  Cache: %ds TTL, %d entries\n", c.Cache.TTLSeconds, c.Cache.MaxSize)
	fmt.Fprintf(out, "  Log: %s\n", c.Log.Level)
	return nil
}
