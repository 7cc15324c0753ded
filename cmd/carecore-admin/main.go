// Command carecore-admin runs agency maintenance tasks against the configured
// persistent store: a dashboard summary, a credentialing expiry report, and
// the batch submission of billable claims.
//
// Storage and blob backends come from the environment (CARECORE_STORAGE_DRIVER,
// CARECORE_BLOB_DRIVER and friends); see internal/core/storage.go and
// internal/blob/blob.go for the full variable list.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"carecore/internal/analytics"
	"carecore/internal/blob"
	"carecore/internal/core"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	var (
		task     = flag.String("task", "summary", "task to run: summary, alerts, submit-ready")
		stateDir = flag.String("state-dir", defaultStateDir(), "directory for session and preference files")
		latency  = flag.Duration("simulated-latency", 0, "artificial per-operation delay, for demos")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if err := run(context.Background(), *task, *stateDir, *latency, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "carecore-admin: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, task, stateDir string, latency time.Duration, verbose bool) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	store, err := core.OpenPersistentStore(core.NewDefaultRulesEngine())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	opts := []core.ServiceOption{
		core.WithLogger(core.NewSlogLogger(logger)),
		core.WithMetricsRecorder(core.NewPrometheusMetricsRecorder(prometheus.NewRegistry())),
		core.WithSessionCache(core.NewFileSessionCache(filepath.Join(stateDir, "session.json"))),
	}
	if latency > 0 {
		opts = append(opts, core.WithSimulatedLatency(latency))
	}
	if blobs, err := blob.Open(ctx); err == nil {
		opts = append(opts, core.WithBlobStore(blobs))
	} else {
		logger.Warn("blob store unavailable, document tasks disabled", "error", err)
	}

	svc := core.NewService(store, opts...)

	switch task {
	case "summary":
		return printSummary(ctx, svc)
	case "alerts":
		return printAlerts(ctx, svc)
	case "submit-ready":
		return submitReady(ctx, svc, logger)
	default:
		return fmt.Errorf("unknown task %q", task)
	}
}

func printSummary(ctx context.Context, svc *core.Service) error {
	state, err := svc.State(ctx)
	if err != nil {
		return err
	}
	kpis := analytics.Summarize(state.Clients, state.Providers, state.Claims)
	totals := analytics.SummarizeBilling(state.Claims)

	fmt.Printf("Active clients:    %d\n", kpis.ActiveClients)
	fmt.Printf("Active providers:  %d\n", kpis.ActiveProviders)
	fmt.Printf("Pending claims:    %s\n", analytics.FormatUSD(kpis.PendingClaims))
	fmt.Printf("Revenue MTD:       %s\n", analytics.FormatUSD(kpis.RevenueMTD))
	fmt.Printf("Ready to bill:     %s\n", analytics.FormatUSD(totals.ReadyToBill))
	fmt.Printf("Submitted:         %s\n", analytics.FormatUSD(totals.Submitted))
	fmt.Printf("Paid:              %s\n", analytics.FormatUSD(totals.Paid))
	fmt.Printf("Denied:            %s\n", analytics.FormatUSD(totals.Denied))
	return nil
}

func printAlerts(ctx context.Context, svc *core.Service) error {
	state, err := svc.State(ctx)
	if err != nil {
		return err
	}
	alerts := analytics.CredentialingAlerts(state.Providers, time.Now())
	if len(alerts) == 0 {
		fmt.Println("No credentials expiring in the next 30 days.")
		return nil
	}
	for _, alert := range alerts {
		fmt.Printf("[%s] %s: %s\n", alert.Priority, alert.Title, alert.Description)
	}
	return nil
}

func submitReady(ctx context.Context, svc *core.Service, logger *slog.Logger) error {
	affected, _, err := svc.SubmitReadyClaims(ctx)
	if errors.Is(err, core.ErrNoClaimsReady) {
		fmt.Println("No claims are ready to bill.")
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("claims submitted", "count", affected)
	fmt.Printf("Submitted %d claim(s).\n", affected)
	return nil
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "carecore")
	}
	return "."
}
