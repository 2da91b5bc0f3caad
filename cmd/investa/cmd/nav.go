package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/investa/finserve/internal/calculation"
	"github.com/investa/finserve/internal/domain"
	"github.com/investa/finserve/internal/navdata"
	"github.com/investa/finserve/internal/output"
	"github.com/investa/finserve/internal/tracker"
)

func newNavCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nav",
		Short: "Mutual fund NAV history and trailing returns",
		Long: `Fetch NAV history from the mfapi.in feed (or a local CSV) and compute
trailing returns. 1Y is a simple return; 3Y, 5Y and 10Y are annualized.

Subcommands:
  returns - Trailing returns for one scheme
  history - Dump a scheme's NAV history as CSV
  funds   - Returns table for the curated fund lists

Examples:
  investa nav returns 122639
  investa nav returns 122639 --file navs.csv
  investa nav history 122639 --csv navs.csv
  investa nav funds --list popular`,
	}

	cmd.AddCommand(
		newNavReturnsCmd(root),
		newNavHistoryCmd(root),
		newNavFundsCmd(root),
	)
	return cmd
}

func parseSchemeCode(s string) (int, error) {
	code, err := strconv.Atoi(s)
	if err != nil || code <= 0 {
		return 0, fmt.Errorf("scheme code must be a positive integer, got %q", s)
	}
	return code, nil
}

func newNavReturnsCmd(root *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "returns <scheme-code>",
		Short: "Trailing 1Y/3Y/5Y/10Y returns for a scheme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := parseSchemeCode(args[0])
			if err != nil {
				return err
			}

			var history *domain.NavHistory
			if file != "" {
				series, err := navdata.LoadCSV(file)
				if err != nil {
					return err
				}
				history = &domain.NavHistory{Meta: domain.SchemeMeta{SchemeCode: code}, Observations: series}
			} else {
				cfg, err := root.loadConfig()
				if err != nil {
					return err
				}
				history, err = newNAVClient(cfg, newLogger(cfg)).FetchHistory(cmd.Context(), code)
				if err != nil {
					return err
				}
			}

			return writeReturns(cmd.OutOrStdout(), history)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "read NAVs from a date,nav CSV instead of the feed")
	return cmd
}

func writeReturns(w io.Writer, history *domain.NavHistory) error {
	latest, ok := calculation.LatestObservation(history.Observations)
	if !ok {
		return navdata.ErrNoData
	}

	title := history.Meta.SchemeName
	if title == "" {
		title = "Scheme " + strconv.Itoa(history.Meta.SchemeCode)
	}
	fmt.Fprintf(w, "%s\n", title)
	if history.Meta.FundHouse != "" {
		fmt.Fprintf(w, "%s\n", history.Meta.FundHouse)
	}
	nav := latest.NAV
	fmt.Fprintf(w, "NAV %s as of %s\n\n", output.FormatNAV(&nav), latest.Date.Format("02-01-2006"))

	returns := calculation.ComputeReturns(history.Observations)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Window\tReturn\tBasis")
	for _, win := range domain.StandardWindows() {
		basis := "absolute"
		if win.Annualized() {
			basis = "CAGR"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", win.Label(), output.FormatReturn(returns[win]), basis)
	}
	return tw.Flush()
}

func newNavHistoryCmd(root *rootOptions) *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "history <scheme-code>",
		Short: "Write a scheme's NAV history as date,nav CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := parseSchemeCode(args[0])
			if err != nil {
				return err
			}
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			history, err := newNAVClient(cfg, newLogger(cfg)).FetchHistory(cmd.Context(), code)
			if err != nil {
				return err
			}

			if csvPath == "" {
				return navdata.WriteCSV(cmd.OutOrStdout(), history.Observations)
			}
			f, err := os.Create(csvPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", csvPath, err)
			}
			defer f.Close()
			if err := navdata.WriteCSV(f, history.Observations); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d observations written to %s\n", len(history.Observations), csvPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "output file (default stdout)")
	return cmd
}

func newNavFundsCmd(root *rootOptions) *cobra.Command {
	var list string

	cmd := &cobra.Command{
		Use:   "funds",
		Short: "Fetch every curated fund once and print its returns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := tracker.ParseListKind(list)
			if err != nil {
				return err
			}
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			tr := tracker.New(newNAVClient(cfg, logger), tracker.WithFunds(tracker.Funds(kind)), tracker.WithLogger(logger))
			if err := tr.Refresh(cmd.Context()); err != nil {
				logger.Warn().Err(err).Msg("some funds could not be fetched")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s funds\n\n", kind.Title())
			return output.WriteFundTable(cmd.OutOrStdout(), tr.Snapshots(kind))
		},
	}
	cmd.Flags().StringVar(&list, "list", string(tracker.DefaultList), "fund list: top or popular")
	return cmd
}
