package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/investa/finserve/internal/config"
	"github.com/investa/finserve/internal/logging"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
}

// loadConfig reads the --config file (if any) with environment overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *logging.Logger {
	if strings.EqualFold(cfg.Logging.Format, "json") {
		return logging.NewJSONLogger(cfg.Logging.Level)
	}
	return logging.NewLogger(cfg.Logging.Level)
}

// NewRootCmd builds the investa command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "investa",
		Short: "Investment calculators, fund returns and the Investa Finserve API",
		Long: `investa runs the Investa Finserve investment calculators from the command
line and serves them, together with live mutual fund returns and the contact
form relay, over HTTP.

Calculators:
  sip, lumpsum, swp, stepup, stp, retirement

Examples:
  investa calc sip --monthly 10000 --rate 12 --years 15
  investa calc file scenarios.yaml --format csv
  investa nav returns 122639
  investa serve --config investa.yaml`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML or TOML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")

	root.AddCommand(
		newCalcCmd(opts),
		newNavCmd(opts),
		newServeCmd(opts),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
