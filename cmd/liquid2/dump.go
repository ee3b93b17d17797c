// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package main

import (
	"fmt"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/liquid2/liquid2"
	"github.com/liquid2/liquid2/ast"
)

// dumpConfig holds configuration for the dump command.
type dumpConfig struct {
	file   string
	format string
}

// Validate checks that the configuration is valid.
func (cfg *dumpConfig) Validate() error {
	if cfg.file == "" {
		return oops.Code("CONFIG_INVALID").Errorf("file is required")
	}
	if cfg.format != "text" && cfg.format != "yaml" {
		return oops.Code("CONFIG_INVALID").Errorf("format must be 'text' or 'yaml', got %q", cfg.format)
	}
	return nil
}

func newDumpCmd() *cobra.Command {
	cfg := &dumpConfig{}

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Parse a template and dump a debug view of its AST",
		Long: `Parse a template and dump a structured view of its node tree:
"text" prints the canonical re-serialization, "yaml" prints a
shallow per-node summary suitable for diffing across runs.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDump(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.file, "file", "", "template file to dump")
	cmd.Flags().StringVar(&cfg.format, "format", "text", "output format: text or yaml")

	return cmd
}

func runDump(cmd *cobra.Command, cfg *dumpConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	src, err := os.ReadFile(cfg.file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", cfg.file, err)
	}
	tmpl, err := liquid2.Parse(string(src))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", cfg.file, err)
	}

	if cfg.format == "text" {
		cmd.Println(liquid2.Dump(tmpl))
		return nil
	}

	out, err := yaml.Marshal(summarizeTemplate(tmpl))
	if err != nil {
		return fmt.Errorf("marshaling yaml dump: %w", err)
	}
	cmd.Print(string(out))
	return nil
}

// nodeSummary is a shallow, debug-only view of a Node: its Go type name
// and its canonical printed form, deliberately not a full field-by-field
// dump (the AST types are the source of truth; this output is for
// spot-checking a parse, not for round-tripping).
type nodeSummary struct {
	Kind   string `yaml:"kind"`
	Source string `yaml:"source"`
}

func summarizeTemplate(tmpl *ast.Template) []nodeSummary {
	summaries := make([]nodeSummary, 0, len(tmpl.Nodes))
	for _, n := range tmpl.Nodes {
		summaries = append(summaries, nodeSummary{
			Kind:   fmt.Sprintf("%T", n),
			Source: ast.NodeString(n),
		})
	}
	return summaries
}
