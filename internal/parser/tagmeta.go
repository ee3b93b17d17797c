// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package parser

// tagInfo describes one built-in tag: whether it opens a block, and
// (for block tags) the set of alternative-branch/terminator names that
// stop its body accumulation.
type tagInfo struct {
	block bool
	ends  map[string]bool
}

func endSet(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// builtinTags is immutable after init; consulted read-only by every
// Parser, never mutated at runtime.
var builtinTags = map[string]tagInfo{
	"assign":    {block: false},
	"capture":   {block: true, ends: endSet("endcapture")},
	"case":      {block: true, ends: endSet("when", "else", "endcase")},
	"cycle":     {block: false},
	"decrement": {block: false},
	"increment": {block: false},
	"echo":      {block: false},
	"for":       {block: true, ends: endSet("else", "endfor")},
	"break":     {block: false},
	"continue":  {block: false},
	"if":        {block: true, ends: endSet("elsif", "else", "endif")},
	"unless":    {block: true, ends: endSet("elsif", "else", "endunless")},
	"include":   {block: false},
	"render":    {block: false},
}
