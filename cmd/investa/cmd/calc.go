package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/investa/finserve/internal/calculation"
	"github.com/investa/finserve/internal/config"
	"github.com/investa/finserve/internal/domain"
	"github.com/investa/finserve/internal/output"
)

type calcOptions struct {
	root      *rootOptions
	format    string
	outputDir string
	chart     string
	name      string
}

func newCalcCmd(root *rootOptions) *cobra.Command {
	opts := &calcOptions{root: root}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Run an investment calculator",
		Long: `Run one of the calculators with flag values, or every scenario in a file.

Unset flags keep the calculator's opening values.

Examples:
  investa calc sip --monthly 5000 --rate 12 --years 10
  investa calc swp --principal 1000000 --withdrawal 8000 --format json
  investa calc retirement --age 35 --retire-at 58 --expenses 60000 --chart corpus.png
  investa calc file scenarios.yaml --format all --output-dir reports`,
	}

	cmd.PersistentFlags().StringVarP(&opts.format, "format", "f", "console", "output format: "+formatHelp())
	cmd.PersistentFlags().StringVarP(&opts.outputDir, "output-dir", "o", "", "write report files here instead of stdout")
	cmd.PersistentFlags().StringVar(&opts.chart, "chart", "", "write a PNG projection chart (single scenario) to this path")
	cmd.PersistentFlags().StringVar(&opts.name, "name", "", "scenario name shown in reports")

	cmd.AddCommand(
		newSIPCmd(opts),
		newLumpsumCmd(opts),
		newSWPCmd(opts),
		newStepUpCmd(opts),
		newSTPCmd(opts),
		newRetirementCmd(opts),
		newCalcFileCmd(opts),
	)
	return cmd
}

func formatHelp() string {
	names := append(output.AvailableFormatterNames(), "all")
	return fmt.Sprint(names)
}

// kindCmd builds a calculator subcommand. bind registers the flags onto a
// copy of the opening values and returns a getter for the final input.
func kindCmd(opts *calcOptions, kind domain.ScenarioKind, short string, bind func(*pflag.FlagSet) func() domain.CalculationInput) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(kind),
		Short: short,
		Args:  cobra.NoArgs,
	}
	input := bind(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		name := opts.name
		if name == "" {
			name = kind.Title()
		}
		return opts.run(cmd, []domain.NamedScenario{{Name: name, Input: input()}})
	}
	return cmd
}

func newSIPCmd(opts *calcOptions) *cobra.Command {
	return kindCmd(opts, domain.KindSIP, "Future value of a monthly SIP", func(fs *pflag.FlagSet) func() domain.CalculationInput {
		in := mustDefault(domain.KindSIP).(domain.SIPInput)
		fs.Float64Var(&in.MonthlyContribution, "monthly", in.MonthlyContribution, "monthly investment")
		fs.Float64Var(&in.AnnualRatePercent, "rate", in.AnnualRatePercent, "expected annual return (%)")
		fs.IntVar(&in.Years, "years", in.Years, "investment period in years")
		return func() domain.CalculationInput { return in }
	})
}

func newLumpsumCmd(opts *calcOptions) *cobra.Command {
	return kindCmd(opts, domain.KindLumpsum, "Future value of a one-time investment", func(fs *pflag.FlagSet) func() domain.CalculationInput {
		in := mustDefault(domain.KindLumpsum).(domain.LumpsumInput)
		fs.Float64Var(&in.Principal, "principal", in.Principal, "amount invested")
		fs.Float64Var(&in.AnnualRatePercent, "rate", in.AnnualRatePercent, "expected annual return (%)")
		fs.IntVar(&in.Years, "years", in.Years, "investment period in years")
		return func() domain.CalculationInput { return in }
	})
}

func newSWPCmd(opts *calcOptions) *cobra.Command {
	return kindCmd(opts, domain.KindSWP, "Systematic withdrawal from a corpus", func(fs *pflag.FlagSet) func() domain.CalculationInput {
		in := mustDefault(domain.KindSWP).(domain.SWPInput)
		fs.Float64Var(&in.Principal, "principal", in.Principal, "starting corpus")
		fs.Float64Var(&in.MonthlyWithdrawal, "withdrawal", in.MonthlyWithdrawal, "monthly withdrawal")
		fs.Float64Var(&in.AnnualRatePercent, "rate", in.AnnualRatePercent, "expected annual return (%)")
		fs.IntVar(&in.Years, "years", in.Years, "withdrawal period in years")
		return func() domain.CalculationInput { return in }
	})
}

func newStepUpCmd(opts *calcOptions) *cobra.Command {
	return kindCmd(opts, domain.KindStepUp, "SIP whose instalment grows every year", func(fs *pflag.FlagSet) func() domain.CalculationInput {
		in := mustDefault(domain.KindStepUp).(domain.StepUpInput)
		fs.Float64Var(&in.InitialMonthlyContribution, "monthly", in.InitialMonthlyContribution, "first year's monthly investment")
		fs.Float64Var(&in.AnnualStepUpPercent, "step-up", in.AnnualStepUpPercent, "yearly increase in the instalment (%)")
		fs.Float64Var(&in.AnnualRatePercent, "rate", in.AnnualRatePercent, "expected annual return (%)")
		fs.IntVar(&in.Years, "years", in.Years, "investment period in years")
		return func() domain.CalculationInput { return in }
	})
}

func newSTPCmd(opts *calcOptions) *cobra.Command {
	return kindCmd(opts, domain.KindSTP, "Systematic transfer from a debt fund to equity", func(fs *pflag.FlagSet) func() domain.CalculationInput {
		in := mustDefault(domain.KindSTP).(domain.STPInput)
		fs.Float64Var(&in.InitialDebtPrincipal, "principal", in.InitialDebtPrincipal, "amount parked in the debt fund")
		fs.Float64Var(&in.MonthlyTransferAmount, "transfer", in.MonthlyTransferAmount, "monthly transfer to equity")
		fs.Float64Var(&in.DebtAnnualRatePercent, "debt-rate", in.DebtAnnualRatePercent, "debt fund annual return (%)")
		fs.Float64Var(&in.EquityAnnualRatePercent, "equity-rate", in.EquityAnnualRatePercent, "equity fund annual return (%)")
		fs.IntVar(&in.Years, "years", in.Years, "period in years")
		return func() domain.CalculationInput { return in }
	})
}

func newRetirementCmd(opts *calcOptions) *cobra.Command {
	return kindCmd(opts, domain.KindRetirement, "Corpus needed to retire", func(fs *pflag.FlagSet) func() domain.CalculationInput {
		in := mustDefault(domain.KindRetirement).(domain.RetirementInput)
		fs.IntVar(&in.CurrentAge, "age", in.CurrentAge, "current age")
		fs.IntVar(&in.RetirementAge, "retire-at", in.RetirementAge, "retirement age")
		fs.Float64Var(&in.CurrentMonthlyExpenses, "expenses", in.CurrentMonthlyExpenses, "current monthly expenses")
		fs.Float64Var(&in.AnnualInflationPercent, "inflation", in.AnnualInflationPercent, "expected annual inflation (%)")
		return func() domain.CalculationInput { return in }
	})
}

func newCalcFileCmd(opts *calcOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "file <scenarios.yaml>",
		Short: "Run every scenario in a YAML file",
		Long: `Run every scenario listed in a scenario file.

Generate a starting file with:
  investa config scenarios -o scenarios.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			return opts.run(cmd, set.Scenarios)
		},
	}
}

func mustDefault(kind domain.ScenarioKind) domain.CalculationInput {
	in, err := domain.DefaultInput(kind)
	if err != nil {
		panic(err)
	}
	return in
}

func (o *calcOptions) run(cmd *cobra.Command, scenarios []domain.NamedScenario) error {
	cfg, err := o.root.loadConfig()
	if err != nil {
		return err
	}
	engine := calculation.NewEngine()
	engine.SetLogger(newLogger(cfg))

	set, err := engine.RunAll(cmd.Context(), scenarios)
	if err != nil {
		return err
	}

	if o.chart != "" {
		if len(set.Reports) != 1 {
			return fmt.Errorf("--chart needs exactly one scenario, got %d", len(set.Reports))
		}
		if err := writeChart(o.chart, set.Reports[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "chart written to %s\n", o.chart)
	}

	if o.outputDir != "" {
		if err := os.MkdirAll(o.outputDir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		files, err := output.GenerateReport(set, o.format, o.outputDir)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", f)
		}
		return nil
	}

	data, err := output.Render(set, o.format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func writeChart(path string, report domain.ScenarioReport) error {
	png, err := output.RenderScheduleChart(report.Name, report.Kind, report.Schedule)
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create chart dir: %w", err)
		}
	}
	return os.WriteFile(path, png, 0644)
}
