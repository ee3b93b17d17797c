// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package exprlex_test

import (
	"testing"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/liquid2/liquid2/internal/exprlex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex_Basics(t *testing.T) {
	toks, err := exprlex.Lex(`product.title | upcase if product.available else "n/a"`)
	require.NoError(t, err)

	var words []string
	for _, tok := range toks {
		if tok.Type == lexer.EOF {
			continue
		}
		words = append(words, tok.Value)
	}
	assert.Equal(t, []string{
		"product.title", "|", "upcase", "if", "product.available",
		"else", `"n/a"`,
	}, words)
}

func TestLex_BracketedPath(t *testing.T) {
	toks, err := exprlex.Lex(`products[0].variants["sku"]`)
	require.NoError(t, err)
	require.Len(t, toks, 2) // Word + EOF
	assert.Equal(t, `products[0].variants["sku"]`, toks[0].Value)
}

func TestLex_Operators(t *testing.T) {
	toks, err := exprlex.Lex(`a >= b and c`)
	require.NoError(t, err)
	require.True(t, len(toks) >= 4)
	assert.Equal(t, ">=", toks[1].Value)
	assert.Equal(t, "and", toks[3].Value)
}

func TestKeywords(t *testing.T) {
	assert.True(t, exprlex.Keywords["contains"])
	assert.False(t, exprlex.Keywords["product"])
}

func TestCursor_ExpectWord(t *testing.T) {
	c, err := exprlex.NewCursor("for x in y", 10)
	require.NoError(t, err)
	tok, err := c.ExpectWord("for")
	require.NoError(t, err)
	assert.Equal(t, "for", tok.Value)
	span := c.Span(tok)
	assert.Equal(t, 10, span.Start)

	_, err = c.ExpectWord("in")
	assert.Error(t, err)
}
