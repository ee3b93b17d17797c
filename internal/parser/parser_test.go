// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package parser_test

import (
	"testing"

	"github.com/liquid2/liquid2/ast"
	"github.com/liquid2/liquid2/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOK(t *testing.T, src string) *ast.Template {
	t.Helper()
	tmpl, err := parser.Parse(src)
	require.NoError(t, err)
	return tmpl
}

func TestParse_ContentAndOutput(t *testing.T) {
	tmpl := parseOK(t, "hello {{ $['name'] }}!")
	require.Len(t, tmpl.Nodes, 3)
	assert.IsType(t, &ast.ContentNode{}, tmpl.Nodes[0])
	out, ok := tmpl.Nodes[1].(*ast.OutputNode)
	require.True(t, ok)
	assert.Equal(t, ast.PrimQuery, out.Expr.Left.Kind())
}

func TestParse_IfElse(t *testing.T) {
	tmpl := parseOK(t, "{% if $['a'] %}yes{% else %}no{% endif %}")
	require.Len(t, tmpl.Nodes, 1)
	tag, ok := tmpl.Nodes[0].(*ast.IfTag)
	require.True(t, ok)
	require.NotNil(t, tag.Else)
	assert.Len(t, tag.Block, 1)
	assert.Len(t, tag.Else.Block, 1)
}

func TestParse_IfElsif(t *testing.T) {
	tmpl := parseOK(t, "{% if $['a'] %}a{% elsif $['b'] %}b{% else %}c{% endif %}")
	tag := tmpl.Nodes[0].(*ast.IfTag)
	require.Len(t, tag.Alternatives, 1)
	require.NotNil(t, tag.Else)
}

func TestParse_ForWithLimitOffsetReversed(t *testing.T) {
	tmpl := parseOK(t, "{% for x in (1..5) limit:2 offset:1 reversed %}{{ $['x'] }}{% endfor %}")
	tag := tmpl.Nodes[0].(*ast.ForTag)
	require.NotNil(t, tag.Limit)
	require.NotNil(t, tag.Offset)
	assert.True(t, tag.Reversed)
}

func TestParse_ForElse(t *testing.T) {
	tmpl := parseOK(t, "{% for x in $['items'] %}{{ $['x'] }}{% else %}empty{% endfor %}")
	tag := tmpl.Nodes[0].(*ast.ForTag)
	require.NotNil(t, tag.Else)
}

func TestParse_Capture(t *testing.T) {
	tmpl := parseOK(t, "{% capture greeting %}hi{% endcapture %}")
	tag := tmpl.Nodes[0].(*ast.CaptureTag)
	assert.Equal(t, "greeting", tag.Name)
	assert.Len(t, tag.Block, 1)
}

func TestParse_Case(t *testing.T) {
	tmpl := parseOK(t, "{% case $['x'] %}discarded{% when 1, 2 %}low{% when 3 %}mid{% else %}hi{% endcase %}")
	tag := tmpl.Nodes[0].(*ast.CaseTag)
	require.Len(t, tag.Whens, 2)
	assert.Len(t, tag.Whens[0].Args, 2)
	require.NotNil(t, tag.Default)
}

func TestParse_Assign(t *testing.T) {
	tmpl := parseOK(t, `{% assign name = "world" | upcase %}`)
	tag := tmpl.Nodes[0].(*ast.AssignTag)
	assert.Equal(t, "name", tag.Name)
	require.Len(t, tag.Expr.Filters, 1)
	assert.Equal(t, "upcase", tag.Expr.Filters[0].Name)
}

func TestParse_InlineConditionalExpression(t *testing.T) {
	tmpl := parseOK(t, `{{ $['user'] if $['logged_in'] else "guest" || upcase }}`)
	out := tmpl.Nodes[0].(*ast.OutputNode)
	require.NotNil(t, out.Expr.Condition)
	require.NotNil(t, out.Expr.Condition.Alternative)
	require.Len(t, out.Expr.Condition.TailFilters, 1)
}

func TestParse_BooleanMembership(t *testing.T) {
	tmpl := parseOK(t, `{% if $['tag'] not in $['blocked'] %}ok{% endif %}`)
	tag := tmpl.Nodes[0].(*ast.IfTag)
	assert.Equal(t, ast.BoolMembership, tag.Condition.Kind())
	assert.Equal(t, ast.NotIn, tag.Condition.MemberOp)
}

func TestParse_BooleanAndOrChain(t *testing.T) {
	tmpl := parseOK(t, `{% if $['a'] and $['b'] or $['c'] %}x{% endif %}`)
	tag := tmpl.Nodes[0].(*ast.IfTag)
	assert.Equal(t, ast.BoolLogical, tag.Condition.Kind())
	assert.Equal(t, ast.Or, tag.Condition.LogicalOp)
}

func TestParse_RawBlockNotScanned(t *testing.T) {
	tmpl := parseOK(t, "{% raw %}{{ not an expr %}{% endraw %}")
	raw := tmpl.Nodes[0].(*ast.RawNode)
	assert.Equal(t, "{{ not an expr %}", raw.Text)
}

func TestParse_Comment(t *testing.T) {
	tmpl := parseOK(t, "{## a note ##}")
	c := tmpl.Nodes[0].(*ast.CommentNode)
	assert.Equal(t, 2, c.HashCount)
}

func TestParse_LiquidLines(t *testing.T) {
	tmpl := parseOK(t, "{% liquid\nassign x = 1\nif $['x']\necho x\nendif\n%}")
	tag := tmpl.Nodes[0].(*ast.LiquidTag)
	require.Len(t, tag.Block, 2)
	assign, ok := tag.Block[0].(*ast.AssignTag)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Name)
	ifTag, ok := tag.Block[1].(*ast.IfTag)
	require.True(t, ok)
	require.Len(t, ifTag.Block, 1)
}

func TestParse_TagExtensionBlock(t *testing.T) {
	tmpl := parseOK(t, "{% custom name: 1 %}body{% endcustom %}")
	ext := tmpl.Nodes[0].(*ast.TagExtension)
	assert.Equal(t, "custom", ext.Name)
	require.NotNil(t, ext.CloseWS)
	require.Len(t, ext.Args, 1)
	assert.Equal(t, "name", ext.Args[0].Name)
}

func TestParse_TagExtensionInlineWhenNoTerminator(t *testing.T) {
	tmpl := parseOK(t, "{% custom %}after")
	ext := tmpl.Nodes[0].(*ast.TagExtension)
	assert.Nil(t, ext.CloseWS)
	require.Len(t, tmpl.Nodes, 2)
	assert.IsType(t, &ast.ContentNode{}, tmpl.Nodes[1])
}

func TestParse_RoundTripPrint(t *testing.T) {
	src := "{%- if $['a'] -%}\n  {{ $['b'] | upcase }}\n{%- else -%}\n  none\n{%- endif -%}"
	tmpl := parseOK(t, src)
	printed := tmpl.String()
	reparsed := parseOK(t, printed)
	assert.Equal(t, printed, reparsed.String())
}

func TestParse_LiquidLinesRoundTripPrint(t *testing.T) {
	src := "{% liquid\nassign x = 1\nif $['x']\necho x\nendif\n%}"
	tmpl := parseOK(t, src)
	printed := tmpl.String()
	reparsed := parseOK(t, printed)
	require.Len(t, reparsed.Nodes, 1)
	assert.IsType(t, &ast.LiquidTag{}, reparsed.Nodes[0])
	assert.Equal(t, printed, reparsed.String())
}

func TestParse_UnexpectedEndTag(t *testing.T) {
	_, err := parser.Parse("{% endif %}")
	require.Error(t, err)
}

func TestParse_UnclosedIf(t *testing.T) {
	_, err := parser.Parse("{% if $['a'] %}no end")
	require.Error(t, err)
}
