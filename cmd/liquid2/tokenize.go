// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package main

import (
	"fmt"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/liquid2/liquid2/internal/exprlex"
	"github.com/liquid2/liquid2/internal/markup"
)

// tokenizeConfig holds configuration for the tokenize command.
type tokenizeConfig struct {
	file string
	expr string
}

// Validate checks that the configuration is valid.
func (cfg *tokenizeConfig) Validate() error {
	if cfg.file == "" && cfg.expr == "" {
		return oops.Code("CONFIG_INVALID").Errorf("one of --file or --expr is required")
	}
	return nil
}

func newTokenizeCmd() *cobra.Command {
	cfg := &tokenizeConfig{}

	cmd := &cobra.Command{
		Use:   "tokenize",
		Short: "Print the scanned item or token stream for a template or expression",
		Long: `With --file, scans a whole template into its flat markup item
stream. With --expr, lexes a single tag/output expression into its
token stream.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTokenize(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.file, "file", "", "template file to scan")
	cmd.Flags().StringVar(&cfg.expr, "expr", "", "single expression to lex")

	return cmd
}

func runTokenize(cmd *cobra.Command, cfg *tokenizeConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.expr != "" {
		toks, err := exprlex.Lex(cfg.expr)
		if err != nil {
			return fmt.Errorf("lexing expression: %w", err)
		}
		for _, tok := range toks {
			cmd.Printf("type=%-4d %q\n", tok.Type, tok.Value)
		}
		return nil
	}

	src, err := os.ReadFile(cfg.file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", cfg.file, err)
	}
	items, err := markup.Scan(string(src))
	if err != nil {
		return fmt.Errorf("scanning %s: %w", cfg.file, err)
	}
	for _, it := range items {
		cmd.Printf("%-8s name=%-12q expr=%q\n", kindLabel(it.Kind), it.Name, it.Expr)
	}
	return nil
}

func kindLabel(k markup.Kind) string {
	switch k {
	case markup.Content:
		return "content"
	case markup.Raw:
		return "raw"
	case markup.Comment:
		return "comment"
	case markup.Output:
		return "output"
	case markup.Tag:
		return "tag"
	case markup.Lines:
		return "lines"
	case markup.EOI:
		return "eoi"
	default:
		return "unknown"
	}
}
