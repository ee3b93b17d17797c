// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

// Package unescape decodes JSON-style string escapes, including UTF-16
// surrogate pairs, from the interior of a quoted template or JSONPath
// string literal. The algorithm follows original_source/src/unescape.rs
// byte-for-byte, re-expressed over runes so the decoded output is
// well-formed UTF-8 by construction.
package unescape

import (
	"strconv"
	"strings"

	"github.com/liquid2/liquid2/errkind"
)

// String decodes the interior of a single- or double-quoted string
// literal (outer quotes already stripped by the caller). span is the
// byte span of the literal's interior in the original source, used only
// for diagnostics.
func String(value string, span errkind.Span) (string, error) {
	runes := []rune(value)
	n := len(runes)
	var b strings.Builder
	b.Grow(len(value))

	i := 0
	for i < n {
		c := runes[i]
		if c != '\\' {
			b.WriteRune(c)
			i++
			continue
		}
		i++
		if i >= n {
			return "", errkind.Syntaxf(span, "unterminated escape sequence")
		}
		switch runes[i] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case '/':
			b.WriteByte('/')
		case 'b':
			b.WriteByte(0x08)
		case 'f':
			b.WriteByte(0x0C)
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'u':
			cp, next, err := decodeUnicodeEscape(runes, i, span)
			if err != nil {
				return "", err
			}
			if cp < 0x20 {
				return "", errkind.Syntaxf(span, "control character U+%04X not allowed in string literal", cp)
			}
			b.WriteRune(rune(cp))
			i = next + 1
			continue
		default:
			return "", errkind.Syntaxf(span, "unknown escape sequence \\%c", runes[i])
		}
		i++
	}

	return b.String(), nil
}

// decodeUnicodeEscape decodes a \uXXXX escape starting at runes[i] == 'u',
// including a following low-surrogate \uYYYY when runes[i] decodes to a
// high surrogate. It returns the decoded code point and the index of the
// last rune consumed (the final hex digit, or the low surrogate's final
// hex digit).
func decodeUnicodeEscape(runes []rune, i int, span errkind.Span) (uint32, int, error) {
	if i+4 >= len(runes) {
		return 0, i, errkind.Syntaxf(span, "incomplete \\u escape sequence")
	}
	hi, err := parseHex4(runes[i+1:i+5], span)
	if err != nil {
		return 0, i, err
	}

	if isLowSurrogate(hi) {
		return 0, i, errkind.Syntaxf(span, "unexpected low surrogate U+%04X without preceding high surrogate", hi)
	}

	if !isHighSurrogate(hi) {
		return hi, i + 4, nil
	}

	// High surrogate: must be followed immediately by \uYYYY in the low
	// surrogate range.
	rest := i + 5
	if rest+1 >= len(runes) || runes[rest] != '\\' || runes[rest+1] != 'u' {
		return 0, i, errkind.Syntaxf(span, "high surrogate U+%04X not followed by a low surrogate escape", hi)
	}
	if rest+5 >= len(runes) {
		return 0, i, errkind.Syntaxf(span, "incomplete \\u escape sequence")
	}
	lo, err := parseHex4(runes[rest+2:rest+6], span)
	if err != nil {
		return 0, i, err
	}
	if !isLowSurrogate(lo) {
		return 0, i, errkind.Syntaxf(span, "invalid low surrogate U+%04X", lo)
	}

	cp := 0x10000 + (((hi & 0x3FF) << 10) | (lo & 0x3FF))
	return cp, rest + 5, nil
}

func parseHex4(digits []rune, span errkind.Span) (uint32, error) {
	v, err := strconv.ParseUint(string(digits), 16, 32)
	if err != nil {
		return 0, errkind.Syntaxf(span, "invalid hex digits %q in \\u escape", string(digits))
	}
	return uint32(v), nil
}

func isHighSurrogate(cp uint32) bool {
	return cp >= 0xD800 && cp <= 0xDBFF
}

func isLowSurrogate(cp uint32) bool {
	return cp >= 0xDC00 && cp <= 0xDFFF
}
