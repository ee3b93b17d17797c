// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package jsonpath

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/liquid2/liquid2/errkind"
	"github.com/liquid2/liquid2/internal/unescape"
)

// indexMax and indexMin bound an I-JSON integer: RFC 9535 requires every
// index, slice bound, and step fit within an inclusive
// [-(2^53)+1, 2^53-1] range.
const (
	indexMax = int64(1)<<53 - 1
	indexMin = -(int64(1) << 53) + 1
)

// ParseQuery parses the embedded query grammar: a query appearing
// directly in Liquid expression position (`{{ product.title }}`,
// `{% if product.tags contains 'sale' %}`), which may omit the leading
// `$` and begin instead with a bare identifier or a bracketed selection.
func ParseQuery(text string) (*Query, error) {
	c, err := newCursor(text, 0)
	if err != nil {
		return nil, wrapLexError(err)
	}
	q, err := parseEmbeddedQuery(c)
	if err != nil {
		return nil, err
	}
	if !c.atEOF() {
		return nil, errkind.Syntaxf(c.span(c.peek()), "unexpected trailing input %q", describeToken(c.peek()))
	}
	return q, nil
}

// ParseJSONPathQuery parses the standalone RFC 9535 form, which always
// begins with `$`.
func ParseJSONPathQuery(text string) (*Query, error) {
	c, err := newCursor(text, 0)
	if err != nil {
		return nil, wrapLexError(err)
	}
	if _, err := c.expect("Dollar"); err != nil {
		return nil, err
	}
	segs, err := parseSegments(c)
	if err != nil {
		return nil, err
	}
	if !c.atEOF() {
		return nil, errkind.Syntaxf(c.span(c.peek()), "unexpected trailing input %q", describeToken(c.peek()))
	}
	return &Query{Segments: segs}, nil
}

func wrapLexError(err error) error {
	return errkind.Wrap(errkind.Lexer, errkind.Span{}, err, "failed to tokenize query")
}

func parseEmbeddedQuery(c *cursor) (*Query, error) {
	var segs []*Segment
	if c.is("Dollar") {
		c.next()
	} else {
		first, err := parseImplicitFirstSegment(c)
		if err != nil {
			return nil, err
		}
		segs = append(segs, first)
	}
	rest, err := parseSegments(c)
	if err != nil {
		return nil, err
	}
	segs = append(segs, rest...)
	return &Query{Segments: segs}, nil
}

func parseImplicitFirstSegment(c *cursor) (*Segment, error) {
	switch {
	case c.is("Ident"):
		tok := c.next()
		name := tok.Value
		span := c.span(tok)
		return &Segment{Selectors: []*Selector{{Name: &name, Span: span}}, Span: span}, nil
	case c.is("LBracket"):
		return parseBracketChildSegment(c)
	default:
		return nil, errkind.Syntaxf(c.span(c.peek()), "expected a query, found %q", describeToken(c.peek()))
	}
}

// parseSegments consumes zero or more trailing `.name`, `.*`, `..name`,
// `..*`, `..[...]`, or `[...]` segments, stopping at the first token that
// cannot start one.
func parseSegments(c *cursor) ([]*Segment, error) {
	var segs []*Segment
	for {
		switch {
		case c.is("DotDot"):
			tok := c.next()
			seg, err := parseSegmentAfterDotDot(c, tok)
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)
		case c.is("Dot"):
			c.next()
			seg, err := parseSegmentAfterDot(c)
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)
		case c.is("LBracket"):
			seg, err := parseBracketChildSegment(c)
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)
		default:
			return segs, nil
		}
	}
}

func parseSegmentAfterDot(c *cursor) (*Segment, error) {
	switch {
	case c.is("Wild"):
		tok := c.next()
		span := c.span(tok)
		return &Segment{Selectors: []*Selector{{Wild: true, Span: span}}, Span: span}, nil
	case c.is("Ident"):
		tok := c.next()
		name := tok.Value
		span := c.span(tok)
		return &Segment{Selectors: []*Selector{{Name: &name, Span: span}}, Span: span}, nil
	default:
		return nil, errkind.Syntaxf(c.span(c.peek()), "expected a member name or '*' after '.', found %q", describeToken(c.peek()))
	}
}

func parseSegmentAfterDotDot(c *cursor, dotdot lexer.Token) (*Segment, error) {
	dotdotSpan := c.span(dotdot)
	switch {
	case c.is("Wild"):
		tok := c.next()
		return &Segment{Recursive: true, Selectors: []*Selector{{Wild: true, Span: c.span(tok)}}, Span: dotdotSpan}, nil
	case c.is("Ident"):
		tok := c.next()
		name := tok.Value
		return &Segment{Recursive: true, Selectors: []*Selector{{Name: &name, Span: c.span(tok)}}, Span: dotdotSpan}, nil
	case c.is("LBracket"):
		sels, err := parseBracketedSelection(c)
		if err != nil {
			return nil, err
		}
		return &Segment{Recursive: true, Selectors: sels, Span: dotdotSpan}, nil
	default:
		return nil, errkind.Syntaxf(c.span(c.peek()), "expected a member name, '*', or bracketed selection after '..', found %q", describeToken(c.peek()))
	}
}

func parseBracketChildSegment(c *cursor) (*Segment, error) {
	start := c.peek()
	sels, err := parseBracketedSelection(c)
	if err != nil {
		return nil, err
	}
	return &Segment{Selectors: sels, Span: c.span(start)}, nil
}

func parseBracketedSelection(c *cursor) ([]*Selector, error) {
	if _, err := c.expect("LBracket"); err != nil {
		return nil, err
	}
	var sels []*Selector
	for {
		sel, err := parseSelector(c)
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)
		if c.is("Comma") {
			c.next()
			continue
		}
		break
	}
	closeTok, err := c.expect("RBracket")
	if err != nil {
		return nil, err
	}
	if len(sels) == 0 {
		return nil, errkind.Syntaxf(c.span(closeTok), "a bracketed selection must have at least one selector")
	}
	return sels, nil
}

func parseSelector(c *cursor) (*Selector, error) {
	switch {
	case c.is("String"):
		tok := c.next()
		name, err := unescapeQuoted(tok.Value, c.span(tok))
		if err != nil {
			return nil, err
		}
		return &Selector{Name: &name, Span: c.span(tok)}, nil
	case c.is("Wild"):
		tok := c.next()
		return &Selector{Wild: true, Span: c.span(tok)}, nil
	case c.is("Quest"):
		qtok := c.next()
		expr, err := parseLogicalOrExpression(c, true)
		if err != nil {
			return nil, err
		}
		return &Selector{Filter: expr, Span: mergeSpan(c.span(qtok), expr.Span)}, nil
	case c.is("Number"):
		return parseIndexOrSliceSelector(c)
	case c.is("Colon"):
		colon := c.peek()
		return parseSliceTail(c, nil, colon)
	case c.is("Ident"):
		return parseSingularQuerySelector(c)
	default:
		return nil, errkind.Syntaxf(c.span(c.peek()), "expected a selector, found %q", describeToken(c.peek()))
	}
}

func parseIndexOrSliceSelector(c *cursor) (*Selector, error) {
	tok := c.next()
	if c.is("Colon") {
		start, err := parseIJSONInt(tok.Value, c.span(tok))
		if err != nil {
			return nil, err
		}
		return parseSliceTail(c, &start, tok)
	}
	idx, err := parseIJSONInt(tok.Value, c.span(tok))
	if err != nil {
		return nil, err
	}
	return &Selector{Index: &idx, Span: c.span(tok)}, nil
}

// parseSliceTail parses `:stop:step` with the cursor positioned at the
// first (unconsumed) colon, given an already-parsed (possibly absent)
// start value.
func parseSliceTail(c *cursor, start *int64, startTok lexer.Token) (*Selector, error) {
	if _, err := c.expect("Colon"); err != nil {
		return nil, err
	}
	var stop *int64
	if c.is("Number") {
		tok := c.next()
		v, err := parseIJSONInt(tok.Value, c.span(tok))
		if err != nil {
			return nil, err
		}
		stop = &v
	}
	var step *int64
	if c.is("Colon") {
		c.next()
		if c.is("Number") {
			tok := c.next()
			v, err := parseIJSONInt(tok.Value, c.span(tok))
			if err != nil {
				return nil, err
			}
			step = &v
		}
	}
	return &Selector{
		Slice: &SliceSelector{Start: start, Stop: stop, Step: step},
		Span:  c.span(startTok),
	}, nil
}

// parseSingularQuerySelector parses a bare dotted identifier path used as
// a computed member accessor inside brackets, e.g. `widget[other.key]`.
func parseSingularQuerySelector(c *cursor) (*Selector, error) {
	firstTok, err := c.expect("Ident")
	if err != nil {
		return nil, err
	}
	name := firstTok.Value
	span := c.span(firstTok)
	segs := []*Segment{{Selectors: []*Selector{{Name: &name, Span: span}}, Span: span}}
	for c.is("Dot") {
		c.next()
		idTok, err := c.expect("Ident")
		if err != nil {
			return nil, err
		}
		nm := idTok.Value
		segs = append(segs, &Segment{Selectors: []*Selector{{Name: &nm, Span: c.span(idTok)}}, Span: c.span(idTok)})
	}
	last := segs[len(segs)-1].Span
	return &Selector{SingularQuery: &Query{Segments: segs}, Span: mergeSpan(span, last)}, nil
}

// --- filter expressions ---

func parseLogicalOrExpression(c *cursor, assertComparedFlag bool) (*FilterExpression, error) {
	left, err := parseLogicalAndExpression(c, assertComparedFlag)
	if err != nil {
		return nil, err
	}
	if assertComparedFlag {
		if err := assertCompared(left); err != nil {
			return nil, err
		}
	}
	for c.is("OrOr") {
		c.next()
		right, err := parseLogicalAndExpression(c, assertComparedFlag)
		if err != nil {
			return nil, err
		}
		if assertComparedFlag {
			if err := assertCompared(right); err != nil {
				return nil, err
			}
		}
		left = &FilterExpression{LogicalOp: Or, Left: left, Right: right, Span: mergeSpan(left.Span, right.Span)}
	}
	return left, nil
}

func parseLogicalAndExpression(c *cursor, assertComparedFlag bool) (*FilterExpression, error) {
	left, err := parseBasicExpression(c, assertComparedFlag)
	if err != nil {
		return nil, err
	}
	if assertComparedFlag {
		if err := assertCompared(left); err != nil {
			return nil, err
		}
	}
	for c.is("AndAnd") {
		c.next()
		right, err := parseBasicExpression(c, assertComparedFlag)
		if err != nil {
			return nil, err
		}
		if assertComparedFlag {
			if err := assertCompared(right); err != nil {
				return nil, err
			}
		}
		left = &FilterExpression{LogicalOp: And, Left: left, Right: right, Span: mergeSpan(left.Span, right.Span)}
	}
	return left, nil
}

var comparisonOperators = map[string]ComparisonOperator{
	"==": Eq, "!=": Ne, ">=": Ge, "<=": Le, ">": Gt, "<": Lt,
}

func comparisonOperatorAt(c *cursor) (ComparisonOperator, bool) {
	tok := c.peek()
	for _, name := range []string{"Eq", "Ne", "Ge", "Le", "Gt", "Lt"} {
		if tok.Type == pathLexer.Symbols()[name] {
			return comparisonOperators[tok.Value], true
		}
	}
	return "", false
}

func parseBasicExpression(c *cursor, assertComparedFlag bool) (*FilterExpression, error) {
	if c.is("Bang") {
		bang := c.next()
		if c.is("LParen") {
			inner, err := parseParenExpression(c)
			if err != nil {
				return nil, err
			}
			return &FilterExpression{Not: inner, Span: mergeSpan(c.span(bang), inner.Span)}, nil
		}
		inner, err := parseComparable(c)
		if err != nil {
			return nil, err
		}
		if inner.IsLiteral() {
			return nil, errkind.Syntaxf(inner.Span, "a literal cannot be negated")
		}
		return &FilterExpression{Not: inner, Span: mergeSpan(c.span(bang), inner.Span)}, nil
	}

	if c.is("LParen") {
		return parseParenExpression(c)
	}

	left, err := parseComparable(c)
	if err != nil {
		return nil, err
	}

	if op, ok := comparisonOperatorAt(c); ok {
		c.next()
		right, err := parseComparable(c)
		if err != nil {
			return nil, err
		}
		if err := assertComparable(left); err != nil {
			return nil, err
		}
		if err := assertComparable(right); err != nil {
			return nil, err
		}
		return &FilterExpression{Left: left, Comparator: op, Right: right, Span: mergeSpan(left.Span, right.Span)}, nil
	}

	switch left.Kind() {
	case KindRelativeQuery, KindRootQuery, KindFunction:
		return left, nil
	default:
		return nil, errkind.Syntaxf(left.Span, "a literal is not a valid expression on its own; it must be compared")
	}
}

func parseParenExpression(c *cursor) (*FilterExpression, error) {
	lp, err := c.expect("LParen")
	if err != nil {
		return nil, err
	}
	inner, err := parseLogicalOrExpression(c, true)
	if err != nil {
		return nil, err
	}
	rp, err := c.expect("RParen")
	if err != nil {
		return nil, err
	}
	inner.Span = mergeSpan(c.span(lp), c.span(rp))
	return inner, nil
}

func parseComparable(c *cursor) (*FilterExpression, error) {
	switch {
	case c.is("Number"):
		return parseNumberLiteral(c)
	case c.is("String"):
		tok := c.next()
		s, err := unescapeQuoted(tok.Value, c.span(tok))
		if err != nil {
			return nil, err
		}
		return &FilterExpression{Str: &s, Span: c.span(tok)}, nil
	case c.isValue("Ident", "true"):
		tok := c.next()
		return &FilterExpression{IsTrue: true, Span: c.span(tok)}, nil
	case c.isValue("Ident", "false"):
		tok := c.next()
		return &FilterExpression{IsFalse: true, Span: c.span(tok)}, nil
	case c.isValue("Ident", "null"):
		tok := c.next()
		return &FilterExpression{IsNull: true, Span: c.span(tok)}, nil
	case c.is("At"):
		tok := c.next()
		segs, err := parseSegments(c)
		if err != nil {
			return nil, err
		}
		return &FilterExpression{RelativeQuery: &Query{Segments: segs}, Span: c.span(tok)}, nil
	case c.is("Dollar"):
		tok := c.next()
		segs, err := parseSegments(c)
		if err != nil {
			return nil, err
		}
		return &FilterExpression{RootQuery: &Query{Segments: segs}, Span: c.span(tok)}, nil
	case c.is("Ident"):
		return parseFunctionExpression(c)
	default:
		return nil, errkind.Syntaxf(c.span(c.peek()), "expected a comparable expression, found %q", describeToken(c.peek()))
	}
}

func parseNumberLiteral(c *cursor) (*FilterExpression, error) {
	tok := c.next()
	text := tok.Value
	span := c.span(tok)
	if text == "-0" {
		var zero int64
		return &FilterExpression{Int: &zero, Span: span}, nil
	}

	isFloat := strings.ContainsRune(text, '.')
	if !isFloat {
		if idx := strings.IndexAny(text, "eE"); idx >= 0 && strings.HasPrefix(text[idx+1:], "-") {
			isFloat = true
		}
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, errkind.Syntaxf(span, "invalid numeric literal %q", text)
	}
	if isFloat {
		return &FilterExpression{Float: &f, Span: span}, nil
	}
	i := int64(f)
	return &FilterExpression{Int: &i, Span: span}, nil
}

func parseFunctionExpression(c *cursor) (*FilterExpression, error) {
	nameTok, err := c.expect("Ident")
	if err != nil {
		return nil, err
	}
	if _, err := c.expect("LParen"); err != nil {
		return nil, err
	}
	var args []*FilterExpression
	if !c.is("RParen") {
		for {
			arg, err := parseFunctionArgument(c)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if c.is("Comma") {
				c.next()
				continue
			}
			break
		}
	}
	closeTok, err := c.expect("RParen")
	if err != nil {
		return nil, err
	}
	span := c.span(nameTok)
	checked, err := assertWellTyped(nameTok.Value, args, mergeSpan(span, c.span(closeTok)))
	if err != nil {
		return nil, err
	}
	return &FilterExpression{FuncName: nameTok.Value, FuncArgs: checked, Span: mergeSpan(span, c.span(closeTok))}, nil
}

func parseFunctionArgument(c *cursor) (*FilterExpression, error) {
	switch {
	case c.is("Number"):
		return parseNumberLiteral(c)
	case c.is("String"):
		tok := c.next()
		s, err := unescapeQuoted(tok.Value, c.span(tok))
		if err != nil {
			return nil, err
		}
		return &FilterExpression{Str: &s, Span: c.span(tok)}, nil
	case c.isValue("Ident", "true"):
		tok := c.next()
		return &FilterExpression{IsTrue: true, Span: c.span(tok)}, nil
	case c.isValue("Ident", "false"):
		tok := c.next()
		return &FilterExpression{IsFalse: true, Span: c.span(tok)}, nil
	case c.isValue("Ident", "null"):
		tok := c.next()
		return &FilterExpression{IsNull: true, Span: c.span(tok)}, nil
	case c.is("At"):
		tok := c.next()
		segs, err := parseSegments(c)
		if err != nil {
			return nil, err
		}
		return &FilterExpression{RelativeQuery: &Query{Segments: segs}, Span: c.span(tok)}, nil
	case c.is("Dollar"):
		tok := c.next()
		segs, err := parseSegments(c)
		if err != nil {
			return nil, err
		}
		return &FilterExpression{RootQuery: &Query{Segments: segs}, Span: c.span(tok)}, nil
	case c.is("Bang"), c.is("LParen"):
		return parseLogicalOrExpression(c, false)
	case c.is("Ident"):
		return parseFunctionExpression(c)
	default:
		return nil, errkind.Syntaxf(c.span(c.peek()), "expected a function argument, found %q", describeToken(c.peek()))
	}
}

func parseIJSONInt(text string, span errkind.Span) (int64, error) {
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, errkind.Syntaxf(span, "index out of range `%s`", text)
	}
	if i < indexMin || i > indexMax {
		return 0, errkind.Syntaxf(span, "index out of range `%s`", text)
	}
	return i, nil
}

// unescapeQuoted strips the surrounding quote characters from a lexed
// String token and decodes its interior. Single-quoted literals use `\'`
// for an embedded quote, which is not a standard JSON escape, so it is
// normalized to a bare `'` before the shared unescape pass.
func unescapeQuoted(raw string, span errkind.Span) (string, error) {
	quote := raw[0]
	inner := raw[1 : len(raw)-1]
	if quote == '\'' {
		inner = strings.ReplaceAll(inner, `\'`, `'`)
	}
	return unescape.String(inner, span)
}

func mergeSpan(a, b errkind.Span) errkind.Span {
	return errkind.Span{Start: a.Start, End: b.End, Line: a.Line, Column: a.Column}
}
