// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

// Package parser builds a Liquid2 ast.Template from the flat item stream
// produced by internal/markup, assembling each tag/output expression's
// interior via internal/exprlex's token cursor.
package parser

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/liquid2/liquid2/ast"
	"github.com/liquid2/liquid2/errkind"
	"github.com/liquid2/liquid2/internal/exprlex"
	"github.com/liquid2/liquid2/internal/unescape"
	"github.com/liquid2/liquid2/jsonpath"
)

// parsePrimitive consumes one Primitive: a literal, a parenthesized
// integer range, or a bare word interpreted as an embedded JSONPath
// query (or the true/false/null literals, which take priority over
// query interpretation).
func parsePrimitive(c *exprlex.Cursor) (*ast.Primitive, error) {
	tok := c.Peek()
	span := c.Span(tok)
	switch {
	case c.Is("Number"):
		c.Next()
		return parseNumberPrimitive(tok.Value, span)
	case c.Is("String"):
		c.Next()
		s, err := unescapeExprString(tok.Value, span)
		if err != nil {
			return nil, err
		}
		return &ast.Primitive{Str: &s, Span: span}, nil
	case c.Is("LParen"):
		return parseRangePrimitive(c)
	case c.Is("Word"):
		return parseWordPrimitive(c)
	default:
		return nil, errkind.Syntaxf(span, "expected a value, found %q", describe(tok))
	}
}

func parseWordPrimitive(c *exprlex.Cursor) (*ast.Primitive, error) {
	tok := c.Next()
	span := c.Span(tok)
	switch tok.Value {
	case "true":
		return &ast.Primitive{IsTrue: true, Span: span}, nil
	case "false":
		return &ast.Primitive{IsFalse: true, Span: span}, nil
	default:
		if exprlex.IsNull(tok.Value) {
			return &ast.Primitive{IsNull: true, Span: span}, nil
		}
		q, err := jsonpath.ParseQuery(tok.Value)
		if err != nil {
			return nil, errkind.Wrap(errkind.Syntax, span, err, "invalid path expression")
		}
		return &ast.Primitive{Query: q, Span: span}, nil
	}
}

func parseRangePrimitive(c *exprlex.Cursor) (*ast.Primitive, error) {
	open := c.Next()
	span := c.Span(open)
	startTok, err := c.Expect("Number")
	if err != nil {
		return nil, err
	}
	start, err := parseRangeBound(startTok.Value, c.Span(startTok))
	if err != nil {
		return nil, err
	}
	if _, err := c.Expect("DotDot"); err != nil {
		return nil, err
	}
	stopTok, err := c.Expect("Number")
	if err != nil {
		return nil, err
	}
	stop, err := parseRangeBound(stopTok.Value, c.Span(stopTok))
	if err != nil {
		return nil, err
	}
	closeTok, err := c.Expect("RParen")
	if err != nil {
		return nil, err
	}
	span.End = c.Span(closeTok).End
	return &ast.Primitive{RangeStart: &start, RangeEnd: &stop, Span: span}, nil
}

func parseRangeBound(text string, span errkind.Span) (int64, error) {
	if strings.ContainsAny(text, ".eE") {
		return 0, errkind.Syntaxf(span, "range bounds must be integers, found %q", text)
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, errkind.Wrap(errkind.Syntax, span, err, "invalid range bound")
	}
	return n, nil
}

// parseNumberPrimitive mirrors jsonpath's number-literal assembly: "-0"
// normalizes to integer 0; a fractional part or a negative exponent
// forces the float arm; otherwise the text is parsed as a float64 and
// truncated to int64 (so "1e3" is the integer 1000).
func parseNumberPrimitive(text string, span errkind.Span) (*ast.Primitive, error) {
	if text == "-0" {
		var zero int64
		return &ast.Primitive{Int: &zero, Span: span}, nil
	}
	isFloat := strings.ContainsRune(text, '.')
	if idx := strings.IndexAny(text, "eE"); idx >= 0 && strings.Contains(text[idx:], "-") {
		isFloat = true
	}
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, errkind.Wrap(errkind.Syntax, span, err, "invalid number literal")
		}
		return &ast.Primitive{Float: &f, Span: span}, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, errkind.Wrap(errkind.Syntax, span, err, "invalid number literal")
	}
	n := int64(f)
	return &ast.Primitive{Int: &n, Span: span}, nil
}

// unescapeExprString strips the surrounding quotes from a String token's
// raw text and decodes its escapes, normalizing an escaped single quote
// before delegating, mirroring jsonpath.unescapeQuoted.
func unescapeExprString(raw string, span errkind.Span) (string, error) {
	inner := raw[1 : len(raw)-1]
	if len(raw) > 0 && raw[0] == '\'' {
		inner = strings.ReplaceAll(inner, `\'`, `'`)
	}
	return unescape.String(inner, span)
}

func describe(tok lexer.Token) string {
	if tok.Type == lexer.EOF {
		return "end of input"
	}
	return strings.TrimSpace(tok.Value)
}
