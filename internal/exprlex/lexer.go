// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

// Package exprlex tokenizes the interior text of a tag or output
// statement (everything between the whitespace-control markers) into the
// flat token stream that internal/parser consumes when assembling
// Primitives, filters, and boolean expressions.
//
// It deliberately does not attempt to disambiguate keywords from
// identifiers, or bare words from JSONPath queries: a Word token covers
// any of those, and internal/parser decides which it is from context.
package exprlex

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// exprLexer tokenizes expression text. Multi-character operators are
// ordered before their single-character prefixes for the same reason
// jsonpath's pathLexer documents: longest match must win.
var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `'(?:[^'\\]|\\.)*'|"(?:[^"\\]|\\.)*"`},
	{Name: "Number", Pattern: `-?(?:0|[1-9][0-9]*)(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?`},
	{Name: "DotDot", Pattern: `\.\.`},
	{Name: "DoublePipe", Pattern: `\|\|`},
	{Name: "Eq", Pattern: `==`},
	{Name: "Ne", Pattern: `!=|<>`},
	{Name: "Ge", Pattern: `>=`},
	{Name: "Le", Pattern: `<=`},
	{Name: "Gt", Pattern: `>`},
	{Name: "Lt", Pattern: `<`},
	{Name: "Pipe", Pattern: `\|`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Colon", Pattern: `:`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Assign", Pattern: `=`},
	// Word covers identifiers, keywords, and dotted/bracketed JSONPath
	// paths alike, with or without a leading "$" root (e.g. "products",
	// "reversed", "product.variants[0].sku", "$['product']['title']").
	{Name: "Word", Pattern: `(?:\$|[a-zA-Z_][a-zA-Z0-9_]*)(?:\.[a-zA-Z_][a-zA-Z0-9_]*|\[[^\]\r\n]*\])*`},
	{Name: "whitespace", Pattern: `[ \t\r\n]+`},
})

var whitespaceType = exprLexer.Symbols()["whitespace"]

// Lex tokenizes text and returns its non-whitespace tokens, terminated by
// an EOF token.
func Lex(text string) ([]lexer.Token, error) {
	lx, err := exprLexer.LexString("", text)
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
			return toks, nil
		}
		if tok.Type == whitespaceType {
			continue
		}
		toks = append(toks, tok)
	}
}

// Symbol returns the token type id for a rule name, for callers that
// need to compare lexer.Token.Type without importing the lexer table
// directly (mirrors jsonpath's pattern of exposing symbol lookups).
func Symbol(name string) lexer.TokenType {
	return exprLexer.Symbols()[name]
}

// Keywords recognized inside a Word token's text. internal/parser
// consults this set when deciding whether a `word:` pair starts a named
// argument (a keyword never does); elsewhere it matches keyword Word
// values directly. "required" is reserved but not
// bound to any construct in this module; "nil" is accepted as a synonym
// for "null".
var Keywords = map[string]bool{
	"true": true, "false": true, "null": true, "nil": true,
	"and": true, "or": true, "not": true, "in": true, "contains": true,
	"if": true, "else": true, "with": true, "as": true, "for": true,
	"required": true,
}

// IsNull reports whether word is a spelling of the null literal.
func IsNull(word string) bool { return word == "null" || word == "nil" }
