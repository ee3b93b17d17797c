// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package jsonpath

import (
	"strconv"
	"strings"
)

// String renders q in canonical JSONPath form: always rooted at `$`,
// regardless of whether it was parsed via ParseQuery's implicit-root
// shorthand or ParseJSONPathQuery's explicit `$`.
func (q *Query) String() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, seg := range q.Segments {
		b.WriteString(seg.String())
	}
	return b.String()
}

func (seg *Segment) String() string {
	var b strings.Builder
	if seg.Recursive {
		b.WriteString("..")
	}
	b.WriteByte('[')
	for i, sel := range seg.Selectors {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(sel.String())
	}
	b.WriteByte(']')
	return b.String()
}

func (sel *Selector) String() string {
	switch {
	case sel.Name != nil:
		return "'" + *sel.Name + "'"
	case sel.Index != nil:
		return strconv.FormatInt(*sel.Index, 10)
	case sel.Slice != nil:
		return sel.Slice.String()
	case sel.Wild:
		return "*"
	case sel.Filter != nil:
		return "?" + sel.Filter.String()
	case sel.SingularQuery != nil:
		return sel.SingularQuery.String()
	default:
		return ""
	}
}

func (s *SliceSelector) String() string {
	start, stop, step := "", "", "1"
	if s.Start != nil {
		start = strconv.FormatInt(*s.Start, 10)
	}
	if s.Stop != nil {
		stop = strconv.FormatInt(*s.Stop, 10)
	}
	if s.Step != nil {
		step = strconv.FormatInt(*s.Step, 10)
	}
	return start + ":" + stop + ":" + step
}

func (op LogicalOperator) String() string {
	return string(op)
}

func (op ComparisonOperator) String() string {
	return string(op)
}

// String renders fe in canonical form. Logical expressions are always
// parenthesized; comparisons, tests, and function calls are not.
func (fe *FilterExpression) String() string {
	switch fe.Kind() {
	case KindTrue:
		return "true"
	case KindFalse:
		return "false"
	case KindNull:
		return "null"
	case KindString:
		return `"` + *fe.Str + `"`
	case KindInt:
		return strconv.FormatInt(*fe.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(*fe.Float, 'g', -1, 64)
	case KindNot:
		return "!" + fe.Not.String()
	case KindLogical:
		return "(" + fe.Left.String() + " " + fe.LogicalOp.String() + " " + fe.Right.String() + ")"
	case KindComparison:
		return fe.Left.String() + " " + fe.Comparator.String() + " " + fe.Right.String()
	case KindRelativeQuery:
		return "@" + joinSegments(fe.RelativeQuery.Segments)
	case KindRootQuery:
		return "$" + joinSegments(fe.RootQuery.Segments)
	case KindFunction:
		args := make([]string, len(fe.FuncArgs))
		for i, a := range fe.FuncArgs {
			args[i] = a.String()
		}
		return fe.FuncName + "(" + strings.Join(args, ", ") + ")"
	default:
		return ""
	}
}

func joinSegments(segs []*Segment) string {
	var b strings.Builder
	for _, seg := range segs {
		b.WriteString(seg.String())
	}
	return b.String()
}
