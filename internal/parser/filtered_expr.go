// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package parser

import (
	"github.com/liquid2/liquid2/ast"
	"github.com/liquid2/liquid2/errkind"
	"github.com/liquid2/liquid2/internal/exprlex"
)

// parseFilteredExpression parses the body of an output/assign/echo tag:
//
//	primitive [ "|" filter ]* [ "if" bool_expr [ "else" primitive [ "|" filter ]* ] ] [ "||" filter ("|" filter)* ]
func parseFilteredExpression(text string, base int) (*ast.FilteredExpression, error) {
	c, err := exprlex.NewCursor(text, base)
	if err != nil {
		return nil, errkind.Wrap(errkind.Lexer, errkind.Span{Start: base}, err, "tokenizing filtered expression")
	}
	left, err := parsePrimitive(c)
	if err != nil {
		return nil, err
	}
	filters, err := parseFilterChain(c)
	if err != nil {
		return nil, err
	}

	fe := &ast.FilteredExpression{Left: left, Filters: filters}

	if c.IsWord("if") {
		c.Next()
		condExpr, err := parseLogicalChain(c)
		if err != nil {
			return nil, err
		}
		ic := &ast.InlineCondition{Condition: condExpr}
		if c.IsWord("else") {
			c.Next()
			alt, err := parsePrimitive(c)
			if err != nil {
				return nil, err
			}
			altFilters, err := parseFilterChain(c)
			if err != nil {
				return nil, err
			}
			ic.Alternative = alt
			ic.AlternativeFilters = altFilters
		}
		if c.Is("DoublePipe") {
			c.Next()
			tail, err := parseFilterList(c)
			if err != nil {
				return nil, err
			}
			ic.TailFilters = tail
		}
		fe.Condition = ic
	}

	if !c.AtEOF() {
		return nil, errkind.Syntaxf(c.Span(c.Peek()), "unexpected trailing input %q", describe(c.Peek()))
	}
	return fe, nil
}

// parseFilterChain parses a run of "|" filter clauses, returning nil
// (not an empty slice) when none are present.
func parseFilterChain(c *exprlex.Cursor) ([]*ast.Filter, error) {
	var filters []*ast.Filter
	for c.Is("Pipe") {
		c.Next()
		f, err := parseFilter(c)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}

// parseFilterList parses a "filter ( | filter )*" sequence with no
// leading pipe, used for the tail-filter run after "||".
func parseFilterList(c *exprlex.Cursor) ([]*ast.Filter, error) {
	f, err := parseFilter(c)
	if err != nil {
		return nil, err
	}
	filters := []*ast.Filter{f}
	rest, err := parseFilterChain(c)
	if err != nil {
		return nil, err
	}
	return append(filters, rest...), nil
}

func parseFilter(c *exprlex.Cursor) (*ast.Filter, error) {
	nameTok, err := c.Expect("Word")
	if err != nil {
		return nil, err
	}
	filter := &ast.Filter{Name: nameTok.Value, Span: c.Span(nameTok)}
	if c.Is("Colon") {
		c.Next()
		args, err := parseArgumentList(c)
		if err != nil {
			return nil, err
		}
		filter.Args = args
	}
	return filter, nil
}

func parseArgumentList(c *exprlex.Cursor) ([]*ast.CommonArgument, error) {
	arg, err := parseCommonArgument(c)
	if err != nil {
		return nil, err
	}
	args := []*ast.CommonArgument{arg}
	for c.Is("Comma") {
		c.Next()
		arg, err := parseCommonArgument(c)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func parseCommonArgument(c *exprlex.Cursor) (*ast.CommonArgument, error) {
	if c.Is("Word") && c.PeekN(1).Type == exprlex.Symbol("Colon") && !exprlex.Keywords[c.Peek().Value] {
		nameTok := c.Next()
		c.Next() // colon
		val, err := parsePrimitive(c)
		if err != nil {
			return nil, err
		}
		return &ast.CommonArgument{Name: nameTok.Value, Value: val, Span: c.Span(nameTok)}, nil
	}
	val, err := parsePrimitive(c)
	if err != nil {
		return nil, err
	}
	return &ast.CommonArgument{Value: val, Span: val.Span}, nil
}
