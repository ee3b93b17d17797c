// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package ast_test

import (
	"testing"

	"github.com/liquid2/liquid2/ast"
	"github.com/liquid2/liquid2/errkind"
	"github.com/liquid2/liquid2/jsonpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustQuery(t *testing.T, text string) *jsonpath.Query {
	t.Helper()
	q, err := jsonpath.ParseQuery(text)
	require.NoError(t, err)
	return q
}

func TestPrimitive_String(t *testing.T) {
	i := int64(42)
	f := 1.5
	s := "hi"
	start := int64(1)
	stop := int64(3)

	tests := []struct {
		name string
		prim *ast.Primitive
		want string
	}{
		{"true", &ast.Primitive{IsTrue: true}, "true"},
		{"false", &ast.Primitive{IsFalse: true}, "false"},
		{"null", &ast.Primitive{IsNull: true}, "null"},
		{"int", &ast.Primitive{Int: &i}, "42"},
		{"float", &ast.Primitive{Float: &f}, "1.5"},
		{"string", &ast.Primitive{Str: &s}, `"hi"`},
		{"range", &ast.Primitive{RangeStart: &start, RangeEnd: &stop}, "(1..3)"},
		{"query", &ast.Primitive{Query: mustQuery(t, "product.title")}, "$['product']['title']"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.prim.String())
		})
	}
}

func TestOutputNode_String(t *testing.T) {
	q := mustQuery(t, "product.title")
	n := &ast.OutputNode{
		WS:   ast.TagWS{Left: ast.Minus, Right: ast.Minus},
		Expr: &ast.FilteredExpression{Left: &ast.Primitive{Query: q}},
	}
	assert.Equal(t, "{{- $['product']['title'] -}}", n.String())
}

func TestIfTag_String(t *testing.T) {
	cond := &ast.BooleanExpression{Prim: &ast.Primitive{Query: mustQuery(t, "products")}}
	body := []ast.Node{&ast.ContentNode{Text: "hi"}}
	n := &ast.IfTag{
		Condition: cond,
		Block:     body,
		Span:      errkind.Span{},
	}
	assert.Equal(t, "{% if $['products'] %}hi{% endif %}", n.String())
}

func TestForTag_String_WithLimitAndReversed(t *testing.T) {
	limit := int64(2)
	startVal := int64(1)
	stopVal := int64(3)
	n := &ast.ForTag{
		Name:     "x",
		Iterable: &ast.Primitive{RangeStart: &startVal, RangeEnd: &stopVal},
		Limit:    &ast.Primitive{Int: &limit},
		Reversed: true,
		Block:    []ast.Node{&ast.OutputNode{Expr: &ast.FilteredExpression{Left: &ast.Primitive{Query: mustQuery(t, "x")}}}},
		Else:     &ast.CaseElse{Block: []ast.Node{&ast.ContentNode{Text: "empty"}}},
	}
	assert.Equal(t, "{% for x in (1..3) limit:2 reversed %}{{ $['x'] }}{% else %}empty{% endfor %}", n.String())
}

func TestFilteredExpression_InlineCondition_String(t *testing.T) {
	anon := "anon"
	fe := &ast.FilteredExpression{
		Left: &ast.Primitive{Query: mustQuery(t, "user.name")},
		Condition: &ast.InlineCondition{
			Condition:   &ast.BooleanExpression{Prim: &ast.Primitive{Query: mustQuery(t, "user")}},
			Alternative: &ast.Primitive{Str: &anon},
			TailFilters: []*ast.Filter{{Name: "upcase"}},
		},
	}
	assert.Equal(t, `$['user']['name'] if $['user'] else "anon" || upcase`, fe.String())
}

func TestCommentNode_String(t *testing.T) {
	n := &ast.CommentNode{HashCount: 2, Text: " note "}
	assert.Equal(t, "{## note ##}", n.String())
}

func TestTemplate_String_ConcatenatesNodes(t *testing.T) {
	tmpl := &ast.Template{
		Nodes: []ast.Node{
			&ast.ContentNode{Text: "before "},
			&ast.OutputNode{Expr: &ast.FilteredExpression{Left: &ast.Primitive{Query: mustQuery(t, "x")}}},
			&ast.ContentNode{Text: " after"},
		},
	}
	assert.Equal(t, "before {{ $['x'] }} after", tmpl.String())
}
