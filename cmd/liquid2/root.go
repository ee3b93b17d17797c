// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var (
	logFormat   string
	metricsAddr string
)

const defaultLogFormat = "json"

// NewRootCmd creates the root command for the liquid2 CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liquid2",
		Short: "liquid2 - parse and inspect Liquid2 templates and JSONPath queries",
		Long: `liquid2 parses Liquid2 templates and their embedded JSONPath query
sublanguage, prints the resulting AST back to canonical source, and
dumps a structured view of either for debugging.`,
	}

	cmd.PersistentFlags().StringVar(&logFormat, "log-format", defaultLogFormat, "log format (json or text)")
	cmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "metrics HTTP address (empty = disabled)")

	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newTokenizeCmd())
	cmd.AddCommand(newQueryCmd())
	cmd.AddCommand(newDumpCmd())
	cmd.AddCommand(newBatchCmd())

	return cmd
}
