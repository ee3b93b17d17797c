// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package markup

import (
	"strings"

	"github.com/liquid2/liquid2/ast"
	"github.com/liquid2/liquid2/errkind"
)

// delim identifies which opening sequence was found.
type delim int

const (
	delimNone delim = iota
	delimOutput
	delimTag
	delimComment
)

// findDelim returns the earliest occurrence at or after from of "{{",
// "{%", or "{#", and which one it is.
func findDelim(src string, from int) (delim, int) {
	best := -1
	bestKind := delimNone
	for _, d := range []struct {
		kind delim
		sep  string
	}{
		{delimOutput, "{{"},
		{delimTag, "{%"},
		{delimComment, "{#"},
	} {
		if idx := strings.Index(src[from:], d.sep); idx >= 0 {
			abs := from + idx
			if best == -1 || abs < best {
				best = abs
				bestKind = d.kind
			}
		}
	}
	return bestKind, best
}

func markAt(src string, i int) (ast.WSMark, int) {
	if i < len(src) {
		switch src[i] {
		case '+', '-', '~':
			return ast.MarkFromByte(src[i]), i + 1
		}
	}
	return ast.Default, i
}

func lineColumn(src string, offset int) (line, column int) {
	line = 1
	lastNL := -1
	for i := 0; i < offset && i < len(src); i++ {
		if src[i] == '\n' {
			line++
			lastNL = i
		}
	}
	column = offset - lastNL
	return
}

func spanOf(src string, start, end int) errkind.Span {
	line, col := lineColumn(src, start)
	return errkind.Span{Start: start, End: end, Line: line, Column: col}
}

// Scan walks src and returns its flat item sequence, terminated by an
// item with Kind == EOI.
func Scan(src string) ([]Item, error) {
	var items []Item
	pos := 0
	for pos < len(src) {
		kind, idx := findDelim(src, pos)
		if idx < 0 {
			if pos < len(src) {
				items = append(items, Item{Kind: Content, Text: src[pos:], Span: spanOf(src, pos, len(src))})
			}
			pos = len(src)
			break
		}
		if idx > pos {
			items = append(items, Item{Kind: Content, Text: src[pos:idx], Span: spanOf(src, pos, idx)})
		}
		var item Item
		var next int
		var err error
		switch kind {
		case delimOutput:
			item, next, err = scanOutput(src, idx)
		case delimComment:
			item, next, err = scanComment(src, idx)
		case delimTag:
			item, next, err = scanTag(src, idx)
		}
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		pos = next
	}
	items = append(items, Item{Kind: EOI, Span: spanOf(src, len(src), len(src))})
	return items, nil
}

func scanOutput(src string, start int) (Item, int, error) {
	i := start + 2
	leftWS, i := markAt(src, i)
	end := strings.Index(src[i:], "}}")
	if end < 0 {
		return Item{}, 0, errkind.Syntaxf(spanOf(src, start, start+2), "unterminated output statement")
	}
	end += i
	body := src[i:end]
	rightWS := ast.Default
	trimmed := strings.TrimRight(body, " \t\r\n")
	if n := len(trimmed); n > 0 {
		switch trimmed[n-1] {
		case '+', '-', '~':
			rightWS = ast.MarkFromByte(trimmed[n-1])
			trimmed = strings.TrimRight(trimmed[:n-1], " \t\r\n")
		}
	}
	item := Item{
		Kind:    Output,
		OpenWS:  ast.TagWS{Left: leftWS, Right: rightWS},
		Expr:    strings.TrimSpace(trimmed),
		HasExpr: true,
		Span:    spanOf(src, start, end+2),
	}
	return item, end + 2, nil
}

func scanComment(src string, start int) (Item, int, error) {
	i := start + 1
	hashCount := 0
	for i < len(src) && src[i] == '#' {
		hashCount++
		i++
	}
	leftWS, i := markAt(src, i)
	closer := strings.Repeat("#", hashCount) + "}"
	end := strings.Index(src[i:], closer)
	if end < 0 {
		return Item{}, 0, errkind.Syntaxf(spanOf(src, start, i), "unterminated comment")
	}
	end += i
	body := src[i:end]
	rightWS := ast.Default
	if n := len(body); n > 0 {
		switch body[n-1] {
		case '+', '-', '~':
			rightWS = ast.MarkFromByte(body[n-1])
			body = body[:n-1]
		}
	}
	item := Item{
		Kind:      Comment,
		OpenWS:    ast.TagWS{Left: leftWS},
		CloseWS:   ast.TagWS{Right: rightWS},
		HashCount: hashCount,
		Text:      body,
		Span:      spanOf(src, start, end+hashCount+1),
	}
	return item, end + hashCount + 1, nil
}

// scanTag handles "{% ... %}", special-casing "raw" (verbatim interior,
// no nested scanning) and "liquid" (line-statement block).
func scanTag(src string, start int) (Item, int, error) {
	i := start + 2
	leftWS, i := markAt(src, i)
	for i < len(src) && isSpace(src[i]) {
		i++
	}
	nameStart := i
	for i < len(src) && isWordByte(src[i]) {
		i++
	}
	name := src[nameStart:i]
	if name == "" {
		return Item{}, 0, errkind.Syntaxf(spanOf(src, start, i), "expected tag name")
	}

	if name == "raw" {
		return scanRaw(src, start, i, leftWS)
	}

	closeIdx := strings.Index(src[i:], "%}")
	if closeIdx < 0 {
		return Item{}, 0, errkind.Syntaxf(spanOf(src, start, i), "unterminated tag %q", name)
	}
	closeIdx += i
	body := src[i:closeIdx]
	rightWS := ast.Default
	trimmed := strings.TrimRight(body, " \t\r\n")
	if n := len(trimmed); n > 0 {
		switch trimmed[n-1] {
		case '+', '-', '~':
			rightWS = ast.MarkFromByte(trimmed[n-1])
			trimmed = strings.TrimRight(trimmed[:n-1], " \t\r\n")
		}
	}
	expr := strings.TrimSpace(trimmed)

	if name == "liquid" {
		stmts := splitLines(expr)
		item := Item{
			Kind:       Lines,
			OpenWS:     ast.TagWS{Left: leftWS, Right: rightWS},
			Statements: stmts,
			Span:       spanOf(src, start, closeIdx+2),
		}
		return item, closeIdx + 2, nil
	}

	item := Item{
		Kind:    Tag,
		OpenWS:  ast.TagWS{Left: leftWS, Right: rightWS},
		Name:    name,
		Expr:    expr,
		HasExpr: expr != "",
		Span:    spanOf(src, start, closeIdx+2),
	}
	return item, closeIdx + 2, nil
}

func scanRaw(src string, start, afterName int, openLeftWS ast.WSMark) (Item, int, error) {
	i := afterName
	for i < len(src) && isSpace(src[i]) {
		i++
	}
	openRightWS, i := markAt(src, i)
	closeIdx := strings.Index(src[i:], "%}")
	if closeIdx < 0 {
		return Item{}, 0, errkind.Syntaxf(spanOf(src, start, i), "unterminated raw tag")
	}
	bodyStart := closeIdx + i + 2

	search := bodyStart
	for {
		rel := strings.Index(src[search:], "{%")
		if rel < 0 {
			return Item{}, 0, errkind.Syntaxf(spanOf(src, start, bodyStart), "unterminated raw block, missing endraw")
		}
		candidate := search + rel
		j := candidate + 2
		closeLeftWS, j := markAt(src, j)
		for j < len(src) && isSpace(src[j]) {
			j++
		}
		if !strings.HasPrefix(src[j:], "endraw") {
			search = candidate + 2
			continue
		}
		j += len("endraw")
		for j < len(src) && isSpace(src[j]) {
			j++
		}
		closeRightWS, j := markAt(src, j)
		endClose := strings.Index(src[j:], "%}")
		if endClose < 0 {
			return Item{}, 0, errkind.Syntaxf(spanOf(src, candidate, j), "unterminated endraw tag")
		}
		endClose += j
		text := src[bodyStart:candidate]
		item := Item{
			Kind:    Raw,
			OpenWS:  ast.TagWS{Left: openLeftWS, Right: openRightWS},
			CloseWS: ast.TagWS{Left: closeLeftWS, Right: closeRightWS},
			Text:    text,
			Span:    spanOf(src, start, endClose+2),
		}
		return item, endClose + 2, nil
	}
}

func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	var out []string
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' }

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
