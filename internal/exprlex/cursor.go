// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package exprlex

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/liquid2/liquid2/errkind"
)

// Cursor is a one-token-lookahead peekable iterator over an expression's
// token stream, mirroring jsonpath's internal cursor type but exported
// for internal/parser to drive.
type Cursor struct {
	tokens []lexer.Token
	pos    int
	base   int
}

// NewCursor lexes text and returns a Cursor over its tokens. base is the
// byte offset of text within the original template source; Span adds it
// to token byte offsets, while Line and Column stay relative to text.
func NewCursor(text string, base int) (*Cursor, error) {
	toks, err := Lex(text)
	if err != nil {
		return nil, err
	}
	return &Cursor{tokens: toks, base: base}, nil
}

func (c *Cursor) Peek() lexer.Token { return c.tokens[c.pos] }

func (c *Cursor) PeekN(n int) lexer.Token {
	idx := c.pos + n
	if idx >= len(c.tokens) {
		return c.tokens[len(c.tokens)-1]
	}
	return c.tokens[idx]
}

func (c *Cursor) Next() lexer.Token {
	tok := c.tokens[c.pos]
	if c.pos < len(c.tokens)-1 {
		c.pos++
	}
	return tok
}

func (c *Cursor) AtEOF() bool { return c.Peek().Type == lexer.EOF }

func (c *Cursor) Is(name string) bool { return c.Peek().Type == Symbol(name) }

func (c *Cursor) IsWord(value string) bool {
	return c.Is("Word") && c.Peek().Value == value
}

func (c *Cursor) Span(tok lexer.Token) errkind.Span {
	start := c.base + tok.Pos.Offset
	return errkind.Span{
		Start:  start,
		End:    start + len(tok.Value),
		Line:   tok.Pos.Line,
		Column: tok.Pos.Column,
	}
}

func (c *Cursor) Expect(name string) (lexer.Token, error) {
	if !c.Is(name) {
		return lexer.Token{}, errkind.Syntaxf(c.Span(c.Peek()), "expected %s, found %q", name, describeToken(c.Peek()))
	}
	return c.Next(), nil
}

func (c *Cursor) ExpectWord(value string) (lexer.Token, error) {
	if !c.IsWord(value) {
		return lexer.Token{}, errkind.Syntaxf(c.Span(c.Peek()), "expected %q, found %q", value, describeToken(c.Peek()))
	}
	return c.Next(), nil
}

func describeToken(tok lexer.Token) string {
	if tok.Type == lexer.EOF {
		return "end of input"
	}
	return strings.TrimSpace(tok.Value)
}
