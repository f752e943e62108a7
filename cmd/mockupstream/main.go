package main

import (
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	cfg "github.com/sand/wallet-dashboard/backend/config"
	"github.com/sand/wallet-dashboard/backend/internal/usecases/mocked"
)

// mockupstream serves sample transactions behind the same signing scheme as
// the real provider, for running the gateway and dashboard locally.
func main() {
	addr := flag.String("addr", ":4500", "listen address")
	perAccount := flag.Int("per-account", 8, "transactions generated per account")
	flag.Parse()

	config, err := cfg.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if err = config.Validate(); err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	transactions := mocked.GenerateInitialTransactions(config.Dashboard.Accounts, *perAccount, time.Now())
	upstream := mocked.NewUpstream(logger, config.Upstream.APIKey, config.Upstream.APISecret, transactions)

	server := &http.Server{
		Addr:              *addr,
		Handler:           upstream.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("Mock upstream listening", "address", *addr, "transactions", len(transactions))
	log.Fatal(server.ListenAndServe())
}
