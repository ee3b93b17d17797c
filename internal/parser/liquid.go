// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package parser

import (
	"strings"

	"github.com/liquid2/liquid2/ast"
	"github.com/liquid2/liquid2/errkind"
	"github.com/liquid2/liquid2/internal/markup"
)

// parseLiquidTag handles a `{% liquid %}` block (scanned as a markup.Lines
// item): each statement line is converted into a synthetic Tag or Comment
// item with both whitespace markers forced to Minus, and the resulting
// item slice is run through the same block-parsing machinery used for
// ordinary `{% ... %}` tags. This reuses every per-tag parser unchanged,
// matching the line-statement mode's described behaviour: it is the same
// grammar with an implicit "-" on both sides of every line.
func (p *Parser) parseLiquidTag(it markup.Item) (*ast.LiquidTag, error) {
	items := convertStatementsToItems(it.Statements, it.Span)
	sub := &Parser{items: items}
	body, err := sub.parseNodesUntil(nil)
	if err != nil {
		return nil, err
	}
	if !sub.atEOF() {
		return nil, errkind.Syntaxf(sub.peek().Span, "unexpected tag %q in liquid block", sub.peek().Name)
	}
	return &ast.LiquidTag{WS: it.OpenWS, Block: body, Span: it.Span}, nil
}

func convertStatementsToItems(stmts []string, span errkind.Span) []markup.Item {
	forcedWS := ast.TagWS{Left: ast.Minus, Right: ast.Minus}
	items := make([]markup.Item, 0, len(stmts)+1)
	for _, s := range stmts {
		if strings.HasPrefix(s, "#") {
			items = append(items, markup.Item{
				Kind:   markup.Comment,
				OpenWS: forcedWS,
				CloseWS: forcedWS,
				Text:   strings.TrimSpace(strings.TrimPrefix(s, "#")),
				Span:   span,
			})
			continue
		}
		name, expr := splitKeyword(s)
		items = append(items, markup.Item{
			Kind:    markup.Tag,
			OpenWS:  forcedWS,
			Name:    name,
			Expr:    expr,
			HasExpr: expr != "",
			Span:    span,
		})
	}
	items = append(items, markup.Item{Kind: markup.EOI, Span: span})
	return items
}

// splitKeyword splits a line-statement body into its leading bare-word
// tag name and the remainder.
func splitKeyword(s string) (name, rest string) {
	s = strings.TrimSpace(s)
	idx := strings.IndexAny(s, " \t")
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimSpace(s[idx+1:])
}
