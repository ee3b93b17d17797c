// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package parser

import (
	"github.com/liquid2/liquid2/ast"
	"github.com/liquid2/liquid2/errkind"
	"github.com/liquid2/liquid2/internal/exprlex"
)

var comparisonOps = map[string]ast.ComparisonOperator{
	"Eq": ast.Eq, "Ne": ast.Ne, "Ge": ast.Ge, "Gt": ast.Gt, "Le": ast.Le, "Lt": ast.Lt,
}

// parseBooleanExpression parses a full boolean expression from text
// (the condition of an if/unless/elsif tag), requiring the whole text to
// be consumed.
func parseBooleanExpression(text string, base int) (*ast.BooleanExpression, error) {
	c, err := exprlex.NewCursor(text, base)
	if err != nil {
		return nil, errkind.Wrap(errkind.Lexer, errkind.Span{Start: base}, err, "tokenizing boolean expression")
	}
	expr, err := parseLogicalChain(c)
	if err != nil {
		return nil, err
	}
	if !c.AtEOF() {
		return nil, errkind.Syntaxf(c.Span(c.Peek()), "unexpected trailing input %q", describe(c.Peek()))
	}
	return expr, nil
}

// parseLogicalChain parses a left-associative and/or chain with no
// precedence distinction between the two operators, matching Liquid's
// strictly left-to-right boolean expression evaluation.
func parseLogicalChain(c *exprlex.Cursor) (*ast.BooleanExpression, error) {
	left, err := parseBoolTerm(c)
	if err != nil {
		return nil, err
	}
	for c.IsWord("and") || c.IsWord("or") {
		opWord := c.Next().Value
		op := ast.And
		if opWord == "or" {
			op = ast.Or
		}
		right, err := parseBoolTerm(c)
		if err != nil {
			return nil, err
		}
		left = &ast.BooleanExpression{LogicalOp: op, LogicalLeft: left, LogicalRight: right}
	}
	return left, nil
}

func parseBoolTerm(c *exprlex.Cursor) (*ast.BooleanExpression, error) {
	if c.IsWord("not") {
		c.Next()
		inner, err := parseBoolTerm(c)
		if err != nil {
			return nil, err
		}
		return &ast.BooleanExpression{Not: inner}, nil
	}

	left, err := parsePrimitive(c)
	if err != nil {
		return nil, err
	}

	switch {
	case c.IsWord("in"):
		c.Next()
		right, err := parsePrimitive(c)
		if err != nil {
			return nil, err
		}
		return &ast.BooleanExpression{MemberOp: ast.In, MemberLeft: left, MemberRight: right}, nil
	case c.IsWord("contains"):
		c.Next()
		right, err := parsePrimitive(c)
		if err != nil {
			return nil, err
		}
		return &ast.BooleanExpression{MemberOp: ast.Contains, MemberLeft: left, MemberRight: right}, nil
	case c.IsWord("not") && (c.PeekN(1).Value == "in" || c.PeekN(1).Value == "contains"):
		c.Next()
		opWord := c.Next().Value
		right, err := parsePrimitive(c)
		if err != nil {
			return nil, err
		}
		op := ast.NotIn
		if opWord == "contains" {
			op = ast.NotContains
		}
		return &ast.BooleanExpression{MemberOp: op, MemberLeft: left, MemberRight: right}, nil
	}

	if op, ok := comparisonOps[tokenTypeName(c)]; ok {
		c.Next()
		right, err := parsePrimitive(c)
		if err != nil {
			return nil, err
		}
		return &ast.BooleanExpression{CompOp: op, CompLeft: left, CompRight: right}, nil
	}

	return &ast.BooleanExpression{Prim: left}, nil
}

func tokenTypeName(c *exprlex.Cursor) string {
	for _, name := range []string{"Eq", "Ne", "Ge", "Gt", "Le", "Lt"} {
		if c.Is(name) {
			return name
		}
	}
	return ""
}
