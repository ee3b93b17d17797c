// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

// Package jsonpath implements the RFC 9535-style JSONPath query
// sublanguage embedded in Liquid2 expressions: a query parser, the
// "embedded" and "standalone" entry grammars, and the static type checker
// for filter-selector expressions (Nodes/Logical/Value).
//
// The AST shape follows original_source/src/query.rs: a Query is an
// ordered list of Segments, each a Child or Recursive segment holding one
// or more Selectors. FilterExpression is a recursive tagged union boxed
// at its recursive arms, per spec design note on self-recursive sum
// types.
package jsonpath

import "github.com/liquid2/liquid2/errkind"

// Query is an ordered sequence of Segments, as produced by ParseQuery or
// ParseJSONPathQuery.
type Query struct {
	Segments []*Segment
}

// IsEmpty reports whether the query has no segments.
func (q *Query) IsEmpty() bool {
	return q == nil || len(q.Segments) == 0
}

// IsSingular reports whether the query can resolve to at most one node:
// every segment must be a Child segment with exactly one selector that is
// a Name or an Index.
func (q *Query) IsSingular() bool {
	if q == nil {
		return false
	}
	for _, seg := range q.Segments {
		if seg.Recursive {
			return false
		}
		if len(seg.Selectors) != 1 {
			return false
		}
		sel := seg.Selectors[0]
		if sel.Name == nil && sel.Index == nil {
			return false
		}
	}
	return true
}

// AsWord returns (name, true) iff the query consists of exactly one Child
// segment holding exactly one Name selector, e.g. the query for bare
// `product` rather than `product.title` or `product[0]`.
func (q *Query) AsWord() (string, bool) {
	if q == nil || len(q.Segments) != 1 {
		return "", false
	}
	seg := q.Segments[0]
	if seg.Recursive || len(seg.Selectors) != 1 {
		return "", false
	}
	if seg.Selectors[0].Name == nil {
		return "", false
	}
	return *seg.Selectors[0].Name, true
}

// Segment is one `[...]` (Child) or `..[...]` (Recursive) step of a
// Query.
type Segment struct {
	Recursive bool
	Selectors []*Selector
	Span      errkind.Span
}

// Selector is a tagged union over the six selector kinds the Data Model
// names: Name, Index, Slice, Wild, Filter, and SingularQuery (a nested
// query used as a computed member accessor, e.g. `widget[other.key]`).
// Exactly one field is non-nil.
type Selector struct {
	Name          *string
	Index         *int64
	Slice         *SliceSelector
	Wild          bool
	Filter        *FilterExpression
	SingularQuery *Query
	Span          errkind.Span
}

// SliceSelector is `start:stop:step`, each component optional.
type SliceSelector struct {
	Start *int64
	Stop  *int64
	Step  *int64
}

// LogicalOperator is the closed And/Or enum for Logical filter
// expressions.
type LogicalOperator string

const (
	And LogicalOperator = "&&"
	Or  LogicalOperator = "||"
)

// ComparisonOperator is the closed comparison enum for Comparison filter
// expressions.
type ComparisonOperator string

const (
	Eq ComparisonOperator = "=="
	Ne ComparisonOperator = "!="
	Ge ComparisonOperator = ">="
	Gt ComparisonOperator = ">"
	Le ComparisonOperator = "<="
	Lt ComparisonOperator = "<"
)

// FilterExpression is the JSONPath filter sublanguage's tagged union.
// Every node carries its own Span. Recursive arms (Not, Logical,
// Comparison) hold owned pointers to the same type, the idiomatic Go
// equivalent of a boxed recursive enum variant.
type FilterExpression struct {
	// Literals. IsTrue/IsFalse/IsNull discriminate their literal kind
	// from an unset expression; Str/Int/Float carry the literal's value.
	IsTrue  bool
	IsFalse bool
	IsNull  bool
	Str     *string
	Int     *int64
	Float   *float64

	// Recursive forms.
	Not        *FilterExpression
	LogicalOp  LogicalOperator
	Left       *FilterExpression
	Right      *FilterExpression
	Comparator ComparisonOperator

	// Queries.
	RelativeQuery *Query // `@...`
	RootQuery     *Query // `$...`

	// Function call.
	FuncName string
	FuncArgs []*FilterExpression

	Span errkind.Span
}

// Kind enumerates which arm of FilterExpression is populated, to avoid
// scattering `switch { case x.Foo != nil: }` chains across both the
// printer and the type checker.
type Kind int

const (
	KindTrue Kind = iota
	KindFalse
	KindNull
	KindString
	KindInt
	KindFloat
	KindNot
	KindLogical
	KindComparison
	KindRelativeQuery
	KindRootQuery
	KindFunction
)

// Kind reports which arm of the tagged union fe represents.
func (fe *FilterExpression) Kind() Kind {
	switch {
	case fe.IsTrue:
		return KindTrue
	case fe.IsFalse:
		return KindFalse
	case fe.IsNull:
		return KindNull
	case fe.Str != nil:
		return KindString
	case fe.Int != nil:
		return KindInt
	case fe.Float != nil:
		return KindFloat
	case fe.Not != nil:
		return KindNot
	case fe.LogicalOp != "":
		return KindLogical
	case fe.Comparator != "":
		return KindComparison
	case fe.RelativeQuery != nil:
		return KindRelativeQuery
	case fe.RootQuery != nil:
		return KindRootQuery
	case fe.FuncName != "":
		return KindFunction
	default:
		return KindNull
	}
}

// IsLiteral reports whether fe is one of the scalar literal kinds.
func (fe *FilterExpression) IsLiteral() bool {
	switch fe.Kind() {
	case KindTrue, KindFalse, KindNull, KindString, KindInt, KindFloat:
		return true
	default:
		return false
	}
}
