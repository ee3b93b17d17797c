// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package main

import (
	"fmt"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/liquid2/liquid2"
)

// queryConfig holds configuration for the query command.
type queryConfig struct {
	expr   string
	strict bool
}

// Validate checks that the configuration is valid.
func (cfg *queryConfig) Validate() error {
	if cfg.expr == "" {
		return oops.Code("CONFIG_INVALID").Errorf("expr is required")
	}
	return nil
}

func newQueryCmd() *cobra.Command {
	cfg := &queryConfig{}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Parse a JSONPath query and print its canonical form",
		Long: `Parse a JSONPath query, either the Liquid2 shorthand (implicit
first segment allowed) or, with --strict, a full RFC 9535 query
requiring a leading "$".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.expr, "expr", "", "query text to parse")
	cmd.Flags().BoolVar(&cfg.strict, "strict", false, "require strict RFC 9535 form (leading $)")

	return cmd
}

func runQuery(cmd *cobra.Command, cfg *queryConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	parseFn := liquid2.ParseQuery
	if cfg.strict {
		parseFn = liquid2.ParseJSONPathQuery
	}

	q, err := parseFn(cfg.expr)
	if err != nil {
		return fmt.Errorf("parsing query %q: %w", cfg.expr, err)
	}
	cmd.Println(liquid2.DumpQuery(q))
	return nil
}
