// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/liquid2/liquid2"
	"github.com/liquid2/liquid2/errkind"
	"github.com/liquid2/liquid2/internal/logging"
	"github.com/liquid2/liquid2/internal/metrics"
)

// parseConfig holds configuration for the parse command.
type parseConfig struct {
	file  string
	print bool
}

// Validate checks that the configuration is valid.
func (cfg *parseConfig) Validate() error {
	if cfg.file == "" {
		return oops.Code("CONFIG_INVALID").Errorf("file is required")
	}
	return nil
}

func newParseCmd() *cobra.Command {
	cfg := &parseConfig{}

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a Liquid2 template and report success or the first error",
		Long:  `Parse a Liquid2 template file, optionally re-printing it in canonical form.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runParse(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.file, "file", "", "template file to parse")
	cmd.Flags().BoolVar(&cfg.print, "print", false, "print the canonical re-serialization on success")

	return cmd
}

func runParse(cmd *cobra.Command, cfg *parseConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := logging.Setup("liquid2", version, logFormat, nil)

	src, err := os.ReadFile(cfg.file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", cfg.file, err)
	}

	start := time.Now()
	tmpl, parseErr := liquid2.Parse(string(src))
	metrics.RecordParse(time.Since(start), parseErr)

	if parseErr != nil {
		if lerr, ok := asErrkind(parseErr); ok {
			logger.Error("parse failed",
				slog.String("kind", string(lerr.Kind)),
				slog.String("id", lerr.ID.String()),
				slog.Int("line", lerr.Span.Line),
				slog.Int("column", lerr.Span.Column),
			)
		}
		return fmt.Errorf("parsing %s: %w", cfg.file, parseErr)
	}

	if cfg.print {
		cmd.Println(liquid2.Dump(tmpl))
	} else {
		cmd.Println("ok")
	}
	return nil
}

func asErrkind(err error) (*errkind.Error, bool) {
	lerr, ok := err.(*errkind.Error)
	return lerr, ok
}
