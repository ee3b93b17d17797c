// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package markup_test

import (
	"testing"

	"github.com/liquid2/liquid2/ast"
	"github.com/liquid2/liquid2/internal/markup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(items []markup.Item) []markup.Kind {
	out := make([]markup.Kind, len(items))
	for i, it := range items {
		out[i] = it.Kind
	}
	return out
}

func TestScan_ContentOutputContent(t *testing.T) {
	items, err := markup.Scan("Hello {{ user.name }}!")
	require.NoError(t, err)
	require.Equal(t, []markup.Kind{markup.Content, markup.Output, markup.Content, markup.EOI}, kinds(items))
	assert.Equal(t, "Hello ", items[0].Text)
	assert.Equal(t, "user.name", items[1].Expr)
	assert.Equal(t, "!", items[2].Text)
}

func TestScan_WhitespaceControlMarkers(t *testing.T) {
	items, err := markup.Scan("{{- x -}}")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, ast.Minus, items[0].OpenWS.Left)
	assert.Equal(t, ast.Minus, items[0].OpenWS.Right)
	assert.Equal(t, "x", items[0].Expr)
}

func TestScan_Tag(t *testing.T) {
	items, err := markup.Scan("{% assign x = 1 %}")
	require.NoError(t, err)
	require.Equal(t, markup.Tag, items[0].Kind)
	assert.Equal(t, "assign", items[0].Name)
	assert.Equal(t, "x = 1", items[0].Expr)
}

func TestScan_BareTagNoExpr(t *testing.T) {
	items, err := markup.Scan("{% break %}")
	require.NoError(t, err)
	assert.Equal(t, "break", items[0].Name)
	assert.False(t, items[0].HasExpr)
}

func TestScan_Comment(t *testing.T) {
	items, err := markup.Scan("{## a note ##}")
	require.NoError(t, err)
	require.Equal(t, markup.Comment, items[0].Kind)
	assert.Equal(t, 2, items[0].HashCount)
	assert.Equal(t, " a note ", items[0].Text)
}

func TestScan_Raw(t *testing.T) {
	items, err := markup.Scan("{% raw %}{{ not an output }}{% endraw %}")
	require.NoError(t, err)
	require.Equal(t, markup.Raw, items[0].Kind)
	assert.Equal(t, "{{ not an output }}", items[0].Text)
}

func TestScan_LiquidLines(t *testing.T) {
	items, err := markup.Scan("{% liquid\nassign x = 1\necho x\n%}")
	require.NoError(t, err)
	require.Equal(t, markup.Lines, items[0].Kind)
	assert.Equal(t, []string{"assign x = 1", "echo x"}, items[0].Statements)
}

func TestScan_UnterminatedTag(t *testing.T) {
	_, err := markup.Scan("{% if x")
	assert.Error(t, err)
}

func TestScan_UnterminatedRaw(t *testing.T) {
	_, err := markup.Scan("{% raw %}stuck")
	assert.Error(t, err)
}
