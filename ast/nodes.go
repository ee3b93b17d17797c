// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package ast

import "github.com/liquid2/liquid2/errkind"

func (*ContentNode) isNode()   {}
func (*OutputNode) isNode()    {}
func (*RawNode) isNode()       {}
func (*CommentNode) isNode()   {}
func (*AssignTag) isNode()     {}
func (*CaptureTag) isNode()    {}
func (*CaseTag) isNode()       {}
func (*CycleTag) isNode()      {}
func (*DecrementTag) isNode()  {}
func (*IncrementTag) isNode()  {}
func (*EchoTag) isNode()       {}
func (*ForTag) isNode()        {}
func (*BreakTag) isNode()      {}
func (*ContinueTag) isNode()   {}
func (*IfTag) isNode()         {}
func (*UnlessTag) isNode()     {}
func (*IncludeTag) isNode()    {}
func (*RenderTag) isNode()     {}
func (*LiquidTag) isNode()     {}
func (*TagExtension) isNode()  {}

// ContentNode is verbatim template text between tags/outputs.
type ContentNode struct {
	Text string
	Span errkind.Span
}

// OutputNode is a `{{ expr }}` node.
type OutputNode struct {
	WS   TagWS
	Expr *FilteredExpression
	Span errkind.Span
}

// RawNode is a `{% raw %}...{% endraw %}` block; its interior text is
// never re-scanned.
type RawNode struct {
	OpenWS, CloseWS TagWS
	Text            string
	Span            errkind.Span
}

// CommentNode is a `{# ... #}` comment; HashCount preserves the number
// of `#` characters used to delimit it.
type CommentNode struct {
	WS        TagWS
	HashCount int
	Text      string
	Span      errkind.Span
}

// AssignTag is `{% assign name = filtered_expression %}`.
type AssignTag struct {
	WS   TagWS
	Name string
	Expr *FilteredExpression
	Span errkind.Span
}

// CaptureTag is `{% capture name %}...{% endcapture %}`.
type CaptureTag struct {
	OpenWS, CloseWS TagWS
	Name            string
	Block           []Node
	Span            errkind.Span
}

// CaseWhen is one `{% when arg[, arg...] %}` clause of a CaseTag.
type CaseWhen struct {
	WS    TagWS
	Args  []*Primitive
	Block []Node
	Span  errkind.Span
}

// CaseElse is the optional `{% else %}` arm of a CaseTag or ForTag.
type CaseElse struct {
	WS    TagWS
	Block []Node
	Span  errkind.Span
}

// CaseTag is `{% case arg %}...{% when ... %}...[{% else %}...]{% endcase %}`.
// Content between the opening tag and the first `when` is parsed but
// discarded: the printer cannot recover it (spec design note).
type CaseTag struct {
	OpenWS, CloseWS TagWS
	Arg             *Primitive
	Whens           []*CaseWhen
	Default         *CaseElse
	Span            errkind.Span
}

// CycleTag is `{% cycle ["group":] a, b, c %}`.
type CycleTag struct {
	WS    TagWS
	Group *string
	Args  []*Primitive
	Span  errkind.Span
}

// DecrementTag is `{% decrement name %}`.
type DecrementTag struct {
	WS   TagWS
	Name string
	Span errkind.Span
}

// IncrementTag is `{% increment name %}`.
type IncrementTag struct {
	WS   TagWS
	Name string
	Span errkind.Span
}

// EchoTag is `{% echo filtered_expression %}`.
type EchoTag struct {
	WS   TagWS
	Expr *FilteredExpression
	Span errkind.Span
}

// ForTag is `{% for name in iterable [limit:][offset:][reversed] %}...
// [{% else %}...]{% endfor %}`.
type ForTag struct {
	OpenWS, CloseWS TagWS
	Name            string
	Iterable        *Primitive
	Limit           *Primitive
	Offset          *Primitive
	Reversed        bool
	Block           []Node
	Else            *CaseElse
	Span            errkind.Span
}

// BreakTag is `{% break %}`.
type BreakTag struct {
	WS   TagWS
	Span errkind.Span
}

// ContinueTag is `{% continue %}`.
type ContinueTag struct {
	WS   TagWS
	Span errkind.Span
}

// IfBranch is one `{% elsif cond %}` arm.
type IfBranch struct {
	WS        TagWS
	Condition *BooleanExpression
	Block     []Node
	Span      errkind.Span
}

// IfTag is `{% if cond %}...[{% elsif ... %}...]*[{% else %}...]{% endif %}`.
type IfTag struct {
	OpenWS, CloseWS TagWS
	Condition       *BooleanExpression
	Block           []Node
	Alternatives    []*IfBranch
	Else            *CaseElse
	Span            errkind.Span
}

// UnlessTag mirrors IfTag with inverted entry condition semantics (the
// condition's truthiness meaning is a rendering concern, not a parse-time
// one; the shape is identical).
type UnlessTag struct {
	OpenWS, CloseWS TagWS
	Condition       *BooleanExpression
	Block           []Node
	Alternatives    []*IfBranch
	Else            *CaseElse
	Span            errkind.Span
}

// IncludeTag is `{% include target [with|for P [as alias]] [, args] %}`.
type IncludeTag struct {
	WS       TagWS
	Target   *Primitive
	Repeat   bool
	Variable *Primitive
	Alias    string
	Args     []*CommonArgument
	Span     errkind.Span
}

// RenderTag mirrors IncludeTag; Liquid keeps them as distinct tags with
// identical argument shape but different scoping semantics at render
// time (out of scope here).
type RenderTag struct {
	WS       TagWS
	Target   *Primitive
	Repeat   bool
	Variable *Primitive
	Alias    string
	Args     []*CommonArgument
	Span     errkind.Span
}

// LiquidTag is `{% liquid ... %}`: a container whose body is parsed in
// line-statement mode (see internal/markup).
type LiquidTag struct {
	WS    TagWS
	Block []Node
	Span  errkind.Span
}

// TagExtension is the generic fallback for any tag name not in the
// built-in registry: name, a common-argument list, and an optional block
// terminated by `end<name>`. CloseWS is nil for a non-block extension.
type TagExtension struct {
	OpenWS  TagWS
	CloseWS *TagWS
	Name    string
	Args    []*CommonArgument
	Block   []Node
	// Tags is never set by internal/parser, so it is nil in parsed
	// trees; tags nested inside an extension's block are parsed into
	// Block like any other node.
	Tags []Node
	Span errkind.Span
}
