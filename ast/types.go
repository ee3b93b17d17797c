// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

// Package ast defines the Liquid2 template AST: Template and its Node
// variants, the expression sublanguage (Primitive, BooleanExpression,
// FilteredExpression, InlineCondition), and the canonical printer that
// re-serializes a parsed tree to source form.
//
// Node is implemented as a closed interface rather than a single
// tagged-union struct: with roughly twenty structurally distinct tag
// shapes, a Go interface with an unexported marker method (following
// text/template/parse's own Node design) reads more naturally than one
// struct carrying every tag's fields as optional pointers.
package ast

import (
	"github.com/liquid2/liquid2/errkind"
	"github.com/liquid2/liquid2/jsonpath"
)

// WSMark is one whitespace-control marker: the literal character found
// at a tag boundary, or its absence.
type WSMark int

const (
	Default WSMark = iota
	Plus
	Minus
	Smart
)

// MarkFromByte decodes the single character (if any) following `{{`/`{%`
// or preceding `}}`/`%}` into a WSMark.
func MarkFromByte(b byte) WSMark {
	switch b {
	case '+':
		return Plus
	case '-':
		return Minus
	case '~':
		return Smart
	default:
		return Default
	}
}

// TagWS is the (left, right) whitespace-control pair every inline node
// carries; block nodes carry one TagWS per boundary (opening, closing).
type TagWS struct {
	Left  WSMark
	Right WSMark
}

// Template is an ordered sequence of top-level Nodes.
type Template struct {
	Nodes []Node
}

// Node is any element of a Template or tag block: content, an output
// expression, a raw block, a comment, one of the built-in tags, or a
// TagExtension. Only types defined in this package implement Node.
type Node interface {
	isNode()
}

// --- expression sublanguage ---

// PrimitiveKind discriminates which arm of Primitive is populated.
type PrimitiveKind int

const (
	PrimTrue PrimitiveKind = iota
	PrimFalse
	PrimNull
	PrimInteger
	PrimFloat
	PrimString
	PrimRange
	PrimQuery
)

// Primitive is the leaf expression type: literals, a range, or a
// JSONPath query. Exactly one field beyond IsTrue/IsFalse/IsNull is set
// per Kind().
type Primitive struct {
	IsTrue  bool
	IsFalse bool
	IsNull  bool
	Int     *int64
	Float   *float64
	Str     *string

	RangeStart *int64
	RangeEnd   *int64

	Query *jsonpath.Query

	Span errkind.Span
}

// Kind reports which arm of Primitive is populated.
func (p *Primitive) Kind() PrimitiveKind {
	switch {
	case p.IsTrue:
		return PrimTrue
	case p.IsFalse:
		return PrimFalse
	case p.IsNull:
		return PrimNull
	case p.RangeStart != nil:
		return PrimRange
	case p.Float != nil:
		return PrimFloat
	case p.Int != nil:
		return PrimInteger
	case p.Str != nil:
		return PrimString
	case p.Query != nil:
		return PrimQuery
	default:
		return PrimNull
	}
}

// BooleanOperator is the closed And/Or enum for Logical boolean
// expressions.
type BooleanOperator string

const (
	And BooleanOperator = "and"
	Or  BooleanOperator = "or"
)

// ComparisonOperator is the closed comparison enum for Comparison
// boolean expressions.
type ComparisonOperator string

const (
	Eq ComparisonOperator = "=="
	Ne ComparisonOperator = "!="
	Ge ComparisonOperator = ">="
	Gt ComparisonOperator = ">"
	Le ComparisonOperator = "<="
	Lt ComparisonOperator = "<"
)

// MembershipOperator is the closed membership enum for Membership
// boolean expressions.
type MembershipOperator string

const (
	In          MembershipOperator = "in"
	NotIn       MembershipOperator = "not in"
	Contains    MembershipOperator = "contains"
	NotContains MembershipOperator = "not contains"
)

// BooleanExpressionKind discriminates which arm of BooleanExpression is
// populated.
type BooleanExpressionKind int

const (
	BoolPrimitive BooleanExpressionKind = iota
	BoolNot
	BoolLogical
	BoolComparison
	BoolMembership
)

// BooleanExpression is the tagged union of boolean-context expressions:
// a bare truthy Primitive, a negation, a Logical (And/Or) combination of
// two BooleanExpressions, or a Comparison/Membership between two
// Primitives.
type BooleanExpression struct {
	Prim *Primitive

	Not *BooleanExpression

	LogicalOp    BooleanOperator
	LogicalLeft  *BooleanExpression
	LogicalRight *BooleanExpression

	CompOp    ComparisonOperator
	CompLeft  *Primitive
	CompRight *Primitive

	MemberOp    MembershipOperator
	MemberLeft  *Primitive
	MemberRight *Primitive

	Span errkind.Span
}

// Kind reports which arm of BooleanExpression is populated.
func (b *BooleanExpression) Kind() BooleanExpressionKind {
	switch {
	case b.Not != nil:
		return BoolNot
	case b.LogicalOp != "":
		return BoolLogical
	case b.CompOp != "":
		return BoolComparison
	case b.MemberOp != "":
		return BoolMembership
	default:
		return BoolPrimitive
	}
}

// CommonArgument is a positional (Name == "") or named (`name: value`)
// argument, used by filters, include/render, and tag extensions.
type CommonArgument struct {
	Name  string
	Value *Primitive
	Span  errkind.Span
}

// Filter is one `| name[: args]` pipeline stage.
type Filter struct {
	Name string
	Args []*CommonArgument
	Span errkind.Span
}

// InlineCondition is the `if cond [else alt] [|| tail_filters]` suffix
// attachable to a FilteredExpression.
type InlineCondition struct {
	Condition          *BooleanExpression
	Alternative        *Primitive
	AlternativeFilters []*Filter
	TailFilters        []*Filter
	Span               errkind.Span
}

// FilteredExpression is the body of an output, assign, or echo tag: a
// primitive, an optional filter chain, and an optional inline
// conditional.
type FilteredExpression struct {
	Left      *Primitive
	Filters   []*Filter
	Condition *InlineCondition
	Span      errkind.Span
}
