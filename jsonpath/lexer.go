// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package jsonpath

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// pathLexer tokenizes JSONPath query text. Ordering matters: longer
// patterns must come before shorter ones sharing a prefix (">=" before
// ">", ".." before ".", "&&"/"||" before their absence).
var pathLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `'(?:[^'\\]|\\.)*'|"(?:[^"\\]|\\.)*"`},
	{Name: "Number", Pattern: `-?(?:0|[1-9][0-9]*)(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?`},
	{Name: "DotDot", Pattern: `\.\.`},
	{Name: "AndAnd", Pattern: `&&`},
	{Name: "OrOr", Pattern: `\|\|`},
	{Name: "Eq", Pattern: `==`},
	{Name: "Ne", Pattern: `!=`},
	{Name: "Ge", Pattern: `>=`},
	{Name: "Le", Pattern: `<=`},
	{Name: "Gt", Pattern: `>`},
	{Name: "Lt", Pattern: `<`},
	{Name: "Bang", Pattern: `!`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "Dollar", Pattern: `\$`},
	{Name: "At", Pattern: `@`},
	{Name: "LBracket", Pattern: `\[`},
	{Name: "RBracket", Pattern: `\]`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Quest", Pattern: `\?`},
	{Name: "Wild", Pattern: `\*`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "whitespace", Pattern: `[ \t\r\n]+`},
})
