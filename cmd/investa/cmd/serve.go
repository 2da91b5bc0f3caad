package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ternarybob/banner"

	"github.com/investa/finserve/internal/calculation"
	"github.com/investa/finserve/internal/config"
	"github.com/investa/finserve/internal/contact"
	"github.com/investa/finserve/internal/logging"
	"github.com/investa/finserve/internal/server"
	"github.com/investa/finserve/internal/tracker"
	"github.com/investa/finserve/internal/version"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var (
		host      string
		port      int
		noTracker bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators, fund returns and contact relay over HTTP",
		Long: `Start the HTTP API.

Fund returns refresh every nav.refresh_interval (60s by default). Contact
enquiries are relayed through SMTP when SMTP_EMAIL and SMTP_PASSWORD are set,
and logged otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if port != 0 {
				cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, !noTracker, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "override server.host")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "override server.port")
	cmd.Flags().BoolVar(&noTracker, "no-tracker", false, "do not poll the NAV feed")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, withTracker bool, bannerOut io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := newLogger(cfg)
	printBanner(bannerOut, cfg, logger)
	defer printShutdownBanner(bannerOut, logger)

	engine := calculation.NewEngine()
	engine.SetLogger(logger.With("component", "calculation"))

	deps := server.Deps{
		Engine:  engine,
		Contact: newContactService(cfg, logger),
		Logger:  logger,
	}

	trackerDone := make(chan struct{})
	if withTracker {
		source, closeSource, err := newCachedSource(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer closeSource()

		tr := tracker.New(source,
			tracker.WithInterval(cfg.NAV.GetRefreshInterval()),
			tracker.WithLogger(logger.With("component", "tracker")),
		)
		deps.Tracker = tr
		go func() {
			defer close(trackerDone)
			if err := tr.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Msg("fund tracker stopped")
			}
		}()
	} else {
		close(trackerDone)
	}

	srv := server.NewServer(cfg, deps)
	err := srv.Run(ctx)
	cancel()
	<-trackerDone
	return err
}

func newContactService(cfg *config.Config, logger *logging.Logger) *contact.Service {
	var sender contact.Sender
	if cfg.SMTP.Enabled() {
		sender = contact.NewSMTPSender(contact.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Email,
			Password: cfg.SMTP.Password,
		})
	} else {
		logger.Warn().Msg("SMTP_EMAIL/SMTP_PASSWORD not set; contact enquiries will only be logged")
		sender = contact.LogSender{Logger: logger}
	}
	return contact.NewService(cfg.SMTP.Email, sender, logger.With("component", "contact"))
}

func printBanner(w io.Writer, cfg *config.Config, logger *logging.Logger) {
	info := version.Get()
	serviceURL := fmt.Sprintf("http://%s", cfg.Server.Addr())
	smtp := "log only"
	if cfg.SMTP.Enabled() {
		smtp = fmt.Sprintf("%s:%d", cfg.SMTP.Host, cfg.SMTP.Port)
	}

	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	hr := lineColor + strings.Repeat("═", 60) + banner.ColorReset

	fmt.Fprintf(w, "\n%s\n\n", hr)
	fmt.Fprintf(w, "%s  INVESTA FINSERVE%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(w, "%s  Calculators, fund returns and enquiries%s\n\n", textColor, banner.ColorReset)

	kvLines := [][2]string{
		{"Version", info.Version},
		{"Build", info.Build},
		{"Commit", info.Commit},
		{"Environment", cfg.Environment},
		{"Service URL", serviceURL},
		{"NAV feed", cfg.NAV.BaseURL},
		{"NAV cache", cfg.Cache.Backend},
		{"SMTP", smtp},
	}
	for _, kv := range kvLines {
		fmt.Fprintf(w, "%s  %-14s %s%s\n", textColor, kv[0], kv[1], banner.ColorReset)
	}
	fmt.Fprintf(w, "\n%s\n\n", hr)

	logger.Info().
		Str("version", info.Version).
		Str("environment", cfg.Environment).
		Str("service_url", serviceURL).
		Msg("Application started")
}

func printShutdownBanner(w io.Writer, logger *logging.Logger) {
	hr := banner.ColorCyan + strings.Repeat("═", 42) + banner.ColorReset
	fmt.Fprintf(w, "\n%s\n", hr)
	fmt.Fprintf(w, "%s  INVESTA, SHUTTING DOWN%s\n", banner.ColorBold+banner.ColorWhite, banner.ColorReset)
	fmt.Fprintf(w, "%s\n\n", hr)

	logger.Info().Msg("Application shutting down")
}
