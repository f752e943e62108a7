package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	cfg "github.com/sand/wallet-dashboard/backend/config"
	"github.com/sand/wallet-dashboard/backend/internal/core/ports"
	"github.com/sand/wallet-dashboard/backend/internal/dashboard"
	"github.com/sand/wallet-dashboard/backend/internal/gateway"
	"github.com/sand/wallet-dashboard/backend/internal/usecases"
)

type rootOptions struct {
	gatewayURL string
	pageSize   int
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "dashboard",
		Short:         "Browse wallet transactions through the gateway",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.gatewayURL, "gateway", "", "gateway base URL (defaults to DASHBOARD_GATEWAY_URL)")
	root.PersistentFlags().IntVar(&opts.pageSize, "page-size", 0, "rows per page (defaults to DASHBOARD_PAGE_SIZE)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "verbose logging to stderr")

	root.AddCommand(newListCmd(opts), newTUICmd(opts), newProbeCmd(opts))
	return root
}

// setup loads configuration and applies flag overrides.
func setup(opts *rootOptions) (*cfg.Config, *slog.Logger, error) {
	config, err := cfg.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if opts.gatewayURL != "" {
		config.Dashboard.GatewayURL = opts.gatewayURL
	}
	if opts.pageSize > 0 {
		config.Dashboard.PageSize = opts.pageSize
	}

	level := slog.LevelWarn
	if opts.debug || config.App.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return config, logger, nil
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		account string
		search  string
		page    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of an account's transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, logger, err := setup(opts)
			if err != nil {
				return err
			}
			if account == "" && len(config.Dashboard.Accounts) > 0 {
				account = config.Dashboard.Accounts[0]
			}

			client := dashboard.NewGatewayClient(logger, config.Dashboard.GatewayURL, config.Upstream.Timeout+5*time.Second, nil)
			session := usecases.NewSession(logger, client, account, config.Dashboard.PageSize)

			if err = session.Refresh(cmd.Context()); err != nil {
				return err
			}
			session.SetSearch(search)
			if !session.GoTo(page - 1) {
				fmt.Fprintf(cmd.ErrOrStderr(), "page %d does not exist, showing page 1\n", page)
			}

			return dashboard.RenderView(cmd.OutOrStdout(), session.View())
		},
	}

	cmd.Flags().StringVarP(&account, "account", "a", "", "account to view (defaults to the first configured account)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive text to match against id, sender, receiver and cause")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number, starting at 1")
	return cmd
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive transaction browser",
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, logger, err := setup(opts)
			if err != nil {
				return err
			}
			// the alternate screen owns the terminal
			if !opts.debug {
				logger = slog.New(slog.NewTextHandler(io.Discard, nil))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			client := dashboard.NewGatewayClient(logger, config.Dashboard.GatewayURL, config.Upstream.Timeout+5*time.Second, nil)
			session := usecases.NewSession(logger, client, "", config.Dashboard.PageSize)
			return dashboard.Run(ctx, session, client, config.Dashboard.Accounts)
		},
	}
}

// newProbeCmd calls the upstream directly with the signing credentials and
// prints what comes back. It is a diagnostic tool and bypasses the gateway.
func newProbeCmd(opts *rootOptions) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Call find-by-user and search on the upstream directly",
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, logger, err := setup(opts)
			if err != nil {
				return err
			}
			if err = config.Validate(); err != nil {
				return err
			}

			client, err := gateway.NewClient(logger, gateway.Config{
				APIKey:    config.Upstream.APIKey,
				APISecret: config.Upstream.APISecret,
				BaseURL:   config.Upstream.BaseURL,
				Timeout:   ports.ProbeTimeout,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ctx := cmd.Context()

			fmt.Fprintf(out, "\n1) GET %s\n", gateway.FindByUserPath)
			printProbeResult(out, func() (json.RawMessage, error) { return client.FindByUser(ctx) })

			if query != "" {
				fmt.Fprintf(out, "\n2) POST %s with query\n", gateway.SearchPath)
				printProbeResult(out, func() (json.RawMessage, error) { return client.Search(ctx, query) })
			}

			fmt.Fprintln(out, "\nData fetching done.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "search text for the search call; skipped when empty")
	return cmd
}

func printProbeResult(out io.Writer, call func() (json.RawMessage, error)) {
	raw, err := call()
	if err != nil {
		if upErr, ok := gateway.AsUpstreamError(err); ok {
			fmt.Fprintf(out, "HTTP %d response for %s %s: %s\n", upErr.StatusCode, upErr.Method, upErr.Path, upErr.Body)
			return
		}
		fmt.Fprintf(out, "Request error: %v\n", err)
		return
	}

	var pretty bytes.Buffer
	if err = json.Indent(&pretty, raw, "", "  "); err != nil {
		fmt.Fprintln(out, string(raw))
		return
	}
	fmt.Fprintln(out, pretty.String())
}
