// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/liquid2/liquid2"
	"github.com/liquid2/liquid2/internal/logging"
	"github.com/liquid2/liquid2/internal/metrics"
)

// batchConfig holds configuration for the batch command.
type batchConfig struct {
	concurrency int
}

// Validate checks that the configuration is valid.
func (cfg *batchConfig) Validate() error {
	if cfg.concurrency < 1 {
		return oops.Code("CONFIG_INVALID").Errorf("concurrency must be at least 1, got %d", cfg.concurrency)
	}
	return nil
}

func newBatchCmd() *cobra.Command {
	cfg := &batchConfig{}

	cmd := &cobra.Command{
		Use:   "batch [files...]",
		Short: "Parse many template files concurrently and report failures",
		Long: `Parse each given file concurrently (bounded by --concurrency) and
report every failure; exits non-zero if any file failed to parse.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, cfg, args)
		},
	}

	cmd.Flags().IntVar(&cfg.concurrency, "concurrency", 8, "maximum concurrent parses")

	return cmd
}

func runBatch(cmd *cobra.Command, cfg *batchConfig, files []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := logging.Setup("liquid2", version, logFormat, nil)

	stopMetrics := maybeStartMetricsServer(cmd.Context(), logger)
	defer stopMetrics()

	var mu sync.Mutex
	var failures []string

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(cfg.concurrency)

	for _, file := range files {
		file := file
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			src, err := os.ReadFile(file)
			if err != nil {
				mu.Lock()
				failures = append(failures, fmt.Sprintf("%s: %v", file, err))
				mu.Unlock()
				return nil
			}
			start := time.Now()
			_, parseErr := liquid2.Parse(string(src))
			metrics.RecordParse(time.Since(start), parseErr)
			if parseErr != nil {
				mu.Lock()
				failures = append(failures, fmt.Sprintf("%s: %v", file, parseErr))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("batch parse: %w", err)
	}

	for _, f := range failures {
		cmd.PrintErrln(f)
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d of %d files failed to parse", len(failures), len(files))
	}
	cmd.Printf("%d files parsed ok\n", len(files))
	return nil
}

// maybeStartMetricsServer starts a background HTTP server exposing
// /metrics when --metrics-addr is set, returning a stop function that is
// always safe to call.
func maybeStartMetricsServer(ctx context.Context, logger *slog.Logger) func() {
	if metricsAddr == "" {
		return func() {}
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: metricsAddr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", slog.String("error", err.Error()))
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}
