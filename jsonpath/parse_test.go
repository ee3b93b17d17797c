// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package jsonpath_test

import (
	"testing"

	"github.com/liquid2/liquid2/errkind"
	"github.com/liquid2/liquid2/jsonpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONPathQuery_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"root", "$", "$"},
		{"dot name", "$.store.book", "$['store']['book']"},
		{"bracket name", "$['store']['book']", "$['store']['book']"},
		{"index", "$.store.book[0]", "$['store']['book'][0]"},
		{"wildcard", "$.store.*", "$['store'][*]"},
		{"recursive", "$..price", "$..['price']"},
		{"slice", "$.store.book[1:3]", "$['store']['book'][1:3:1]"},
		{"slice open", "$.store.book[:3]", "$['store']['book'][:3:1]"},
		{"multi select", "$.store.book[0,2]", "$['store']['book'][0, 2]"},
		{"full slice", "$.store.book[1:5:2]", "$['store']['book'][1:5:2]"},
		{"negative index", "$.store.book[-1]", "$['store']['book'][-1]"},
		{"filter exists", "$.store.book[?@.price]", "$['store']['book'][?@['price']]"},
		{"filter comparison", "$.store.book[?@.price < 10]", "$['store']['book'][?@['price'] < 10]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := jsonpath.ParseJSONPathQuery(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.String())

			reparsed, err := jsonpath.ParseJSONPathQuery(q.String())
			require.NoError(t, err, "round-trip should reparse: %s", q.String())
			assert.Equal(t, q.String(), reparsed.String())
		})
	}
}

func TestParseQuery_EmbeddedForm(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare word", "product", "$['product']"},
		{"dotted path", "product.title", "$['product']['title']"},
		{"bracket first", "[0]", "$[0]"},
		{"indexed then dotted", "products[0].title", "$['products'][0]['title']"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := jsonpath.ParseQuery(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.String())
		})
	}
}

func TestParseQuery_AsWord(t *testing.T) {
	q, err := jsonpath.ParseQuery("product")
	require.NoError(t, err)
	word, ok := q.AsWord()
	assert.True(t, ok)
	assert.Equal(t, "product", word)

	q, err = jsonpath.ParseQuery("product.title")
	require.NoError(t, err)
	_, ok = q.AsWord()
	assert.False(t, ok)
}

func TestQuery_IsSingular(t *testing.T) {
	singular, err := jsonpath.ParseJSONPathQuery("$.a.b[0]")
	require.NoError(t, err)
	assert.True(t, singular.IsSingular())

	nonSingular, err := jsonpath.ParseJSONPathQuery("$.a[*]")
	require.NoError(t, err)
	assert.False(t, nonSingular.IsSingular())

	recursive, err := jsonpath.ParseJSONPathQuery("$..a")
	require.NoError(t, err)
	assert.False(t, recursive.IsSingular())
}

func TestParseJSONPathQuery_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind errkind.Kind
	}{
		{"missing root", "store.book", errkind.Syntax},
		{"empty brackets", "$[]", errkind.Syntax},
		{"unclosed bracket", "$['a'", errkind.Syntax},
		{"index out of range", "$[9007199254740992]", errkind.Syntax},
		{"unknown function", "$[?nope(@.a)]", errkind.Name},
		{"non singular comparison operand", "$[?@.a[*] == 1]", errkind.Type},
		{"bare value function must be compared", "$[?length(@.a)]", errkind.Type},
		{"bare literal test", "$[?1]", errkind.Syntax},
		{"trailing garbage", "$.a extra", errkind.Syntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := jsonpath.ParseJSONPathQuery(tt.in)
			require.Error(t, err)
			kind, ok := errkind.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestParseJSONPathQuery_FilterLogical(t *testing.T) {
	q, err := jsonpath.ParseJSONPathQuery("$.books[?@.price < 10 && @.category == 'fiction']")
	require.NoError(t, err)
	assert.Equal(t, "$['books'][?(@['price'] < 10 && @['category'] == \"fiction\")]", q.String())
}

func TestParseJSONPathQuery_FunctionCall(t *testing.T) {
	q, err := jsonpath.ParseJSONPathQuery("$[?count(@.*) > 2]")
	require.NoError(t, err)
	assert.Equal(t, "$[?count(@[*]) > 2]", q.String())
}

func TestParseJSONPathQuery_SingularQuerySelector(t *testing.T) {
	q, err := jsonpath.ParseJSONPathQuery("$.widget[other.key]")
	require.NoError(t, err)
	assert.Equal(t, "$['widget'][$['other']['key']]", q.String())
}

func FuzzParseJSONPathQuery(f *testing.F) {
	seeds := []string{
		"$",
		"$.store.book[0].title",
		"$..price",
		"$.store.book[?@.price < 10]",
		"$[?count(@.*) > 2 && @.a == 'x']",
		"$[1:5:2]",
		"$['a', 'b', 0]",
		"$[?@.a]",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, in string) {
		assert.NotPanics(t, func() {
			_, _ = jsonpath.ParseJSONPathQuery(in)
		})
	})
}
