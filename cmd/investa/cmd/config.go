package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/investa/finserve/internal/config"
	"github.com/investa/finserve/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate or validate configuration and scenario files",
		Long: `Manage configuration files.

Subcommands:
  init      - Generate a default configuration file (YAML, or TOML for .toml)
  validate  - Validate a configuration file
  scenarios - Generate an example scenario file for "calc file"

Examples:
  investa config init -o investa.yaml
  investa config validate -f investa.toml
  investa config scenarios -o scenarios.yaml`,
	}

	cmd.AddCommand(
		newConfigInitCmd(),
		newConfigValidateCmd(),
		newConfigScenariosCmd(),
	)
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.NewDefaultConfig().SaveToFile(out); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Created default configuration: %s\n", out)
			fmt.Fprintf(cmd.OutOrStdout(), "\nEdit the file and run with:\n  investa serve --config %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "investa.yaml", "output config file path")
	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			cfg, err := config.LoadConfig(path)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "✓ Configuration valid: %s\n", path)
			fmt.Fprintf(w, "  Server: %s (%s)\n", cfg.Server.Addr(), cfg.Environment)
			fmt.Fprintf(w, "  NAV feed: %s every %s\n", cfg.NAV.BaseURL, cfg.NAV.GetRefreshInterval())
			fmt.Fprintf(w, "  Cache: %s\n", cfg.Cache.Backend)
			fmt.Fprintf(w, "  SMTP: %s:%d (credentials set: %t)\n", cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Enabled())
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "path to config file (required)")
	cmd.MarkFlagRequired("file")
	return cmd
}

func newConfigScenariosCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Generate an example scenario file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set := config.NewInputParser().CreateExampleScenarioSet()
			if err := output.SaveScenarioSet(*set, out); err != nil {
				return fmt.Errorf("save scenarios: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d example scenarios: %s\n", len(set.Scenarios), out)
			fmt.Fprintf(cmd.OutOrStdout(), "\nRun them with:\n  investa calc file %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "scenarios.yaml", "output scenario file path")
	return cmd
}
