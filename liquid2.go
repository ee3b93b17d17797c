// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

// Package liquid2 parses Liquid2 templates, the embedded JSONPath query
// sublanguage they use for variable access, and prints either back to
// canonical source form.
//
// Example usage:
//
//	tmpl, err := liquid2.Parse(`{{ $['user']['name'] | upcase }}`)
//	if err != nil {
//		var lerr *errkind.Error
//		if errors.As(err, &lerr) {
//			log.Printf("%s: %s", lerr.Kind, lerr.Span)
//		}
//		return err
//	}
//	fmt.Println(tmpl.String())
package liquid2

import (
	"github.com/liquid2/liquid2/ast"
	"github.com/liquid2/liquid2/errkind"
	"github.com/liquid2/liquid2/internal/parser"
	"github.com/liquid2/liquid2/internal/unescape"
	"github.com/liquid2/liquid2/jsonpath"
)

// Parse parses src as a Liquid2 template and returns its AST.
func Parse(src string) (*ast.Template, error) {
	return parser.Parse(src)
}

// ParseQuery parses text as an embedded JSONPath query: either a
// leading "$"-rooted absolute query, or, when "$" is omitted, a query
// with an implicit first segment (the shorthand Liquid2 allows inside
// tag and output expressions).
func ParseQuery(text string) (*jsonpath.Query, error) {
	return jsonpath.ParseQuery(text)
}

// ParseJSONPathQuery parses text as a strict RFC 9535 JSONPath query,
// requiring the leading "$".
func ParseJSONPathQuery(text string) (*jsonpath.Query, error) {
	return jsonpath.ParseJSONPathQuery(text)
}

// UnescapeString decodes the interior of a single- or double-quoted
// string literal (the caller strips the outer quote characters first).
func UnescapeString(value string) (string, error) {
	return unescape.String(value, errkind.Span{})
}

// Dump renders tmpl back to its canonical Liquid2 source form.
func Dump(tmpl *ast.Template) string {
	return tmpl.String()
}

// DumpQuery renders q back to its canonical JSONPath source form.
func DumpQuery(q *jsonpath.Query) string {
	return q.String()
}
