// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package jsonpath

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/liquid2/liquid2/errkind"
)

// cursor is a one-token-lookahead peekable iterator over a lexed token
// stream, per spec design note: "the parser wants one-token lookahead
// with ability to branch on nested rule kinds... implement as a
// peekable iterator; do not rely on backtracking beyond one pair."
type cursor struct {
	tokens []lexer.Token
	pos    int
	base   int // byte offset of the lexed text within the original source
}

var whitespaceType = pathLexer.Symbols()["whitespace"]

func newCursor(text string, base int) (*cursor, error) {
	lx, err := pathLexer.LexString("", text)
	if err != nil {
		return nil, err
	}
	var toks []lexer.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		if tok.Type == lexer.EOF {
			toks = append(toks, tok)
			break
		}
		if tok.Type == whitespaceType {
			continue
		}
		toks = append(toks, tok)
	}
	return &cursor{tokens: toks, base: base}, nil
}

func (c *cursor) peek() lexer.Token {
	return c.tokens[c.pos]
}

func (c *cursor) peekN(n int) lexer.Token {
	idx := c.pos + n
	if idx >= len(c.tokens) {
		return c.tokens[len(c.tokens)-1]
	}
	return c.tokens[idx]
}

func (c *cursor) next() lexer.Token {
	tok := c.tokens[c.pos]
	if c.pos < len(c.tokens)-1 {
		c.pos++
	}
	return tok
}

func (c *cursor) atEOF() bool {
	return c.peek().Type == lexer.EOF
}

func (c *cursor) is(name string) bool {
	return c.peek().Type == pathLexer.Symbols()[name]
}

func (c *cursor) isValue(name, value string) bool {
	return c.is(name) && c.peek().Value == value
}

// span computes the byte span of tok relative to the original source,
// using base as the offset of the lexed substring.
func (c *cursor) span(tok lexer.Token) errkind.Span {
	start := c.base + tok.Pos.Offset
	return errkind.Span{
		Start:  start,
		End:    start + len(tok.Value),
		Line:   tok.Pos.Line,
		Column: tok.Pos.Column,
	}
}

func (c *cursor) expect(name string) (lexer.Token, error) {
	if !c.is(name) {
		return lexer.Token{}, errkind.Syntaxf(c.span(c.peek()), "expected %s, found %q", name, describeToken(c.peek()))
	}
	return c.next(), nil
}

func (c *cursor) expectValue(name, value string) (lexer.Token, error) {
	if !c.isValue(name, value) {
		return lexer.Token{}, errkind.Syntaxf(c.span(c.peek()), "expected %q, found %q", value, describeToken(c.peek()))
	}
	return c.next(), nil
}

func describeToken(tok lexer.Token) string {
	if tok.Type == lexer.EOF {
		return "end of input"
	}
	return strings.TrimSpace(tok.Value)
}
