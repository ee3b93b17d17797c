// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

// Package markup performs the first parsing pass over a Liquid2 template:
// a flat scan of the source into typed items (content runs, raw blocks,
// comments, output statements, tags, and liquid line-blocks), each
// carrying its whitespace-control markers and a byte span. It does not
// tokenize or validate tag/output expression interiors; that is
// internal/exprlex's and internal/parser's job.
//
// Grounded on original_source/src/markup.rs's Markup enum, which plays
// the same role in the reference implementation: a flat pre-parse pass
// whose items are then assembled into a tree by a second pass.
package markup

import (
	"github.com/liquid2/liquid2/ast"
	"github.com/liquid2/liquid2/errkind"
)

// Kind discriminates which arm of Item is populated.
type Kind int

const (
	Content Kind = iota
	Raw
	Comment
	Output
	Tag
	Lines
	EOI
)

// Item is one flat scan result. Which fields are meaningful depends on
// Kind:
//
//   - Content: Text.
//   - Raw: OpenWS, CloseWS, Text (the verbatim interior).
//   - Comment: OpenWS, CloseWS, HashCount, Text.
//   - Output: OpenWS (both the left and the right marker), Expr.
//   - Tag: OpenWS (both markers), Name, Expr, HasExpr.
//   - Lines: OpenWS (both markers), Statements (one raw expression
//     string per line, comments included verbatim with their leading "#").
//
// CloseWS is left zero for Output, Tag and Lines.
type Item struct {
	Kind Kind

	Text string

	OpenWS  ast.TagWS
	CloseWS ast.TagWS

	HashCount int

	Name    string
	Expr    string
	HasExpr bool

	Statements []string

	Span errkind.Span
}
