// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package unescape_test

import (
	"testing"

	"github.com/liquid2/liquid2/errkind"
	"github.com/liquid2/liquid2/internal/unescape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString_Simple(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no escapes", `hello world`, "hello world"},
		{"quote", `a\"b`, `a"b`},
		{"backslash", `a\\b`, `a\b`},
		{"solidus", `a\/b`, "a/b"},
		{"backspace", `a\bb`, "a\bb"},
		{"formfeed", `a\fb`, "a\fb"},
		{"newline", `a\nb`, "a\nb"},
		{"carriage return", `a\rb`, "a\rb"},
		{"tab", `a\tb`, "a\tb"},
		{"unicode bmp", `a\u0041\u0042b`, "aABb"},
		{"unicode surrogate pair", `\uD83D\uDE00`, "\U0001F600"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := unescape.String(tt.in, errkind.Span{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestString_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unterminated escape", `a\`},
		{"unknown escape", `a\qb`},
		{"low surrogate alone", `\uDE00`},
		{"high surrogate unfollowed", `\uD83Dx`},
		{"high surrogate followed by non-escape", `\uD83D\n`},
		{"control char below 0x20", "\\u0001"},
		{"incomplete hex", `\u12`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := unescape.String(tt.in, errkind.Span{})
			require.Error(t, err)
			kind, ok := errkind.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, errkind.Syntax, kind)
		})
	}
}
