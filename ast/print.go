// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package ast

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

func (m WSMark) String() string {
	switch m {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Smart:
		return "~"
	default:
		return ""
	}
}

func tagOpen(name, expr string, ws TagWS) string {
	var b strings.Builder
	b.WriteString("{%")
	b.WriteString(ws.Left.String())
	b.WriteByte(' ')
	b.WriteString(name)
	if expr != "" {
		b.WriteByte(' ')
		b.WriteString(expr)
	}
	b.WriteByte(' ')
	b.WriteString(ws.Right.String())
	b.WriteString("%}")
	return b.String()
}

func tagClose(name string, ws TagWS) string {
	return tagOpen(name, "", ws)
}

func blockString(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(NodeString(n))
	}
	return b.String()
}

// NodeString renders n in canonical form. It is the dispatch point used
// by every Node's own String() method and by Template.String().
func NodeString(n Node) string {
	switch v := n.(type) {
	case *ContentNode:
		return v.String()
	case *OutputNode:
		return v.String()
	case *RawNode:
		return v.String()
	case *CommentNode:
		return v.String()
	case *AssignTag:
		return v.String()
	case *CaptureTag:
		return v.String()
	case *CaseTag:
		return v.String()
	case *CycleTag:
		return v.String()
	case *DecrementTag:
		return v.String()
	case *IncrementTag:
		return v.String()
	case *EchoTag:
		return v.String()
	case *ForTag:
		return v.String()
	case *BreakTag:
		return v.String()
	case *ContinueTag:
		return v.String()
	case *IfTag:
		return v.String()
	case *UnlessTag:
		return v.String()
	case *IncludeTag:
		return v.String()
	case *RenderTag:
		return v.String()
	case *LiquidTag:
		return v.String()
	case *TagExtension:
		return v.String()
	default:
		return ""
	}
}

// String renders t by concatenating its nodes' canonical forms.
func (t *Template) String() string {
	return blockString(t.Nodes)
}

// Fprint writes t's canonical form to w through a buffered writer,
// propagating the first I/O error encountered.
func Fprint(w io.Writer, t *Template) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(t.String()); err != nil {
		return err
	}
	return bw.Flush()
}

func (n *ContentNode) String() string { return n.Text }

func (n *OutputNode) String() string {
	return "{{" + n.WS.Left.String() + " " + n.Expr.String() + " " + n.WS.Right.String() + "}}"
}

func (n *RawNode) String() string {
	return tagOpen("raw", "", n.OpenWS) + n.Text + tagClose("endraw", n.CloseWS)
}

func (n *CommentNode) String() string {
	hashes := strings.Repeat("#", n.HashCount)
	return "{" + hashes + n.WS.Left.String() + n.Text + n.WS.Right.String() + hashes + "}"
}

func (n *AssignTag) String() string {
	return tagOpen("assign", n.Name+" = "+n.Expr.String(), n.WS)
}

func (n *CaptureTag) String() string {
	return tagOpen("capture", n.Name, n.OpenWS) + blockString(n.Block) + tagClose("endcapture", n.CloseWS)
}

func (n *CaseWhen) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return tagOpen("when", strings.Join(args, ", "), n.WS) + blockString(n.Block)
}

func (n *CaseElse) String() string {
	return tagOpen("else", "", n.WS) + blockString(n.Block)
}

func (n *CaseTag) String() string {
	var b strings.Builder
	b.WriteString(tagOpen("case", n.Arg.String(), n.OpenWS))
	for _, w := range n.Whens {
		b.WriteString(w.String())
	}
	if n.Default != nil {
		b.WriteString(n.Default.String())
	}
	b.WriteString(tagClose("endcase", n.CloseWS))
	return b.String()
}

func (n *CycleTag) String() string {
	var expr strings.Builder
	if n.Group != nil {
		expr.WriteString(strconv.Quote(*n.Group))
		expr.WriteString(": ")
	}
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	expr.WriteString(strings.Join(args, ", "))
	return tagOpen("cycle", expr.String(), n.WS)
}

func (n *DecrementTag) String() string { return tagOpen("decrement", n.Name, n.WS) }
func (n *IncrementTag) String() string { return tagOpen("increment", n.Name, n.WS) }

func (n *EchoTag) String() string { return tagOpen("echo", n.Expr.String(), n.WS) }

func (n *ForTag) String() string {
	var expr strings.Builder
	expr.WriteString(n.Name)
	expr.WriteString(" in ")
	expr.WriteString(n.Iterable.String())
	if n.Limit != nil {
		expr.WriteString(" limit:")
		expr.WriteString(n.Limit.String())
	}
	if n.Offset != nil {
		expr.WriteString(" offset:")
		expr.WriteString(n.Offset.String())
	}
	if n.Reversed {
		expr.WriteString(" reversed")
	}
	var b strings.Builder
	b.WriteString(tagOpen("for", expr.String(), n.OpenWS))
	b.WriteString(blockString(n.Block))
	if n.Else != nil {
		b.WriteString(n.Else.String())
	}
	b.WriteString(tagClose("endfor", n.CloseWS))
	return b.String()
}

func (n *BreakTag) String() string    { return tagOpen("break", "", n.WS) }
func (n *ContinueTag) String() string { return tagOpen("continue", "", n.WS) }

func (n *IfBranch) String() string {
	return tagOpen("elsif", n.Condition.String(), n.WS) + blockString(n.Block)
}

func (n *IfTag) String() string {
	var b strings.Builder
	b.WriteString(tagOpen("if", n.Condition.String(), n.OpenWS))
	b.WriteString(blockString(n.Block))
	for _, alt := range n.Alternatives {
		b.WriteString(alt.String())
	}
	if n.Else != nil {
		b.WriteString(n.Else.String())
	}
	b.WriteString(tagClose("endif", n.CloseWS))
	return b.String()
}

func (n *UnlessTag) String() string {
	var b strings.Builder
	b.WriteString(tagOpen("unless", n.Condition.String(), n.OpenWS))
	b.WriteString(blockString(n.Block))
	for _, alt := range n.Alternatives {
		b.WriteString(alt.String())
	}
	if n.Else != nil {
		b.WriteString(n.Else.String())
	}
	b.WriteString(tagClose("endunless", n.CloseWS))
	return b.String()
}

func includeRenderExpr(target *Primitive, repeat bool, variable *Primitive, alias string, args []*CommonArgument) string {
	var b strings.Builder
	b.WriteString(target.String())
	if variable != nil {
		if repeat {
			b.WriteString(" for ")
		} else {
			b.WriteString(" with ")
		}
		b.WriteString(variable.String())
		if alias != "" {
			b.WriteString(" as ")
			b.WriteString(alias)
		}
	}
	for _, a := range args {
		b.WriteString(", ")
		b.WriteString(a.String())
	}
	return b.String()
}

func (n *IncludeTag) String() string {
	return tagOpen("include", includeRenderExpr(n.Target, n.Repeat, n.Variable, n.Alias, n.Args), n.WS)
}

func (n *RenderTag) String() string {
	return tagOpen("render", includeRenderExpr(n.Target, n.Repeat, n.Variable, n.Alias, n.Args), n.WS)
}

func (n *LiquidTag) String() string {
	var b strings.Builder
	b.WriteString("{%")
	b.WriteString(n.WS.Left.String())
	b.WriteString(" liquid\n")
	for _, stmt := range n.Block {
		b.WriteString(lineForm(stmt))
		b.WriteByte('\n')
	}
	b.WriteString(n.WS.Right.String())
	b.WriteString("%}")
	return b.String()
}

// lineForm renders a Node the way it appears inside a `{% liquid %}`
// line-statement block: the tag's name and expression with no `{% %}`
// delimiters and no whitespace-control markers (line mode forces both
// to Minus, which carries no printable effect between adjacent lines).
// Block tags render their nested statements recursively, one per line.
func lineForm(n Node) string {
	switch v := n.(type) {
	case *AssignTag:
		return "assign " + v.Name + " = " + v.Expr.String()
	case *EchoTag:
		return "echo " + v.Expr.String()
	case *DecrementTag:
		return "decrement " + v.Name
	case *IncrementTag:
		return "increment " + v.Name
	case *BreakTag:
		return "break"
	case *ContinueTag:
		return "continue"
	case *CaptureTag:
		return lineBlock("capture "+v.Name, v.Block, "endcapture")
	case *IfTag:
		var b strings.Builder
		b.WriteString(lineBlock("if "+v.Condition.String(), v.Block, ""))
		for _, alt := range v.Alternatives {
			b.WriteByte('\n')
			b.WriteString(lineBlock("elsif "+alt.Condition.String(), alt.Block, ""))
		}
		if v.Else != nil {
			b.WriteByte('\n')
			b.WriteString(lineBlock("else", v.Else.Block, ""))
		}
		b.WriteString("\nendif")
		return b.String()
	case *UnlessTag:
		var b strings.Builder
		b.WriteString(lineBlock("unless "+v.Condition.String(), v.Block, ""))
		for _, alt := range v.Alternatives {
			b.WriteByte('\n')
			b.WriteString(lineBlock("elsif "+alt.Condition.String(), alt.Block, ""))
		}
		if v.Else != nil {
			b.WriteByte('\n')
			b.WriteString(lineBlock("else", v.Else.Block, ""))
		}
		b.WriteString("\nendunless")
		return b.String()
	case *ForTag:
		expr := v.Name + " in " + v.Iterable.String()
		if v.Limit != nil {
			expr += " limit:" + v.Limit.String()
		}
		if v.Offset != nil {
			expr += " offset:" + v.Offset.String()
		}
		if v.Reversed {
			expr += " reversed"
		}
		var b strings.Builder
		b.WriteString(lineBlock("for "+expr, v.Block, ""))
		if v.Else != nil {
			b.WriteByte('\n')
			b.WriteString(lineBlock("else", v.Else.Block, ""))
		}
		b.WriteString("\nendfor")
		return b.String()
	case *CaseTag:
		var b strings.Builder
		b.WriteString("case " + v.Arg.String())
		for _, w := range v.Whens {
			args := make([]string, len(w.Args))
			for i, a := range w.Args {
				args[i] = a.String()
			}
			b.WriteByte('\n')
			b.WriteString(lineBlock("when "+strings.Join(args, ", "), w.Block, ""))
		}
		if v.Default != nil {
			b.WriteByte('\n')
			b.WriteString(lineBlock("else", v.Default.Block, ""))
		}
		b.WriteString("\nendcase")
		return b.String()
	case *CommentNode:
		return "# " + v.Text
	default:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(NodeString(n), "{%"), "%}"))
		return strings.TrimSpace(strings.Trim(s, "+-~"))
	}
}

func lineBlock(header string, block []Node, closer string) string {
	var b strings.Builder
	b.WriteString(header)
	for _, stmt := range block {
		b.WriteByte('\n')
		b.WriteString(lineForm(stmt))
	}
	if closer != "" {
		b.WriteString("\n" + closer)
	}
	return b.String()
}

func (n *TagExtension) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	var b strings.Builder
	b.WriteString(tagOpen(n.Name, strings.Join(args, ", "), n.OpenWS))
	b.WriteString(blockString(n.Block))
	if n.CloseWS != nil {
		b.WriteString(tagClose("end"+n.Name, *n.CloseWS))
	}
	return b.String()
}

// --- expression sublanguage printer ---

func (p *Primitive) String() string {
	switch p.Kind() {
	case PrimTrue:
		return "true"
	case PrimFalse:
		return "false"
	case PrimNull:
		return "null"
	case PrimInteger:
		return strconv.FormatInt(*p.Int, 10)
	case PrimFloat:
		return strconv.FormatFloat(*p.Float, 'g', -1, 64)
	case PrimString:
		return strconv.Quote(*p.Str)
	case PrimRange:
		stop := ""
		if p.RangeEnd != nil {
			stop = strconv.FormatInt(*p.RangeEnd, 10)
		}
		return "(" + strconv.FormatInt(*p.RangeStart, 10) + ".." + stop + ")"
	case PrimQuery:
		return p.Query.String()
	default:
		return ""
	}
}

func (a *CommonArgument) String() string {
	if a.Name == "" {
		return a.Value.String()
	}
	return a.Name + ": " + a.Value.String()
}

func (f *Filter) String() string {
	if len(f.Args) == 0 {
		return f.Name
	}
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = a.String()
	}
	return f.Name + ": " + strings.Join(args, ", ")
}

func filterChain(filters []*Filter) string {
	var b strings.Builder
	for _, f := range filters {
		b.WriteString(" | ")
		b.WriteString(f.String())
	}
	return b.String()
}

func (ic *InlineCondition) String() string {
	var b strings.Builder
	b.WriteString("if ")
	b.WriteString(ic.Condition.String())
	if ic.Alternative != nil {
		b.WriteString(" else ")
		b.WriteString(ic.Alternative.String())
		b.WriteString(filterChain(ic.AlternativeFilters))
	}
	if len(ic.TailFilters) > 0 {
		b.WriteString(" ||")
		for i, f := range ic.TailFilters {
			if i > 0 {
				b.WriteString(" |")
			}
			b.WriteByte(' ')
			b.WriteString(f.String())
		}
	}
	return b.String()
}

func (fe *FilteredExpression) String() string {
	var b strings.Builder
	b.WriteString(fe.Left.String())
	b.WriteString(filterChain(fe.Filters))
	if fe.Condition != nil {
		b.WriteByte(' ')
		b.WriteString(fe.Condition.String())
	}
	return b.String()
}

func (be *BooleanExpression) String() string {
	switch be.Kind() {
	case BoolNot:
		return "not " + be.Not.String()
	case BoolLogical:
		return be.LogicalLeft.String() + " " + string(be.LogicalOp) + " " + be.LogicalRight.String()
	case BoolComparison:
		return be.CompLeft.String() + " " + string(be.CompOp) + " " + be.CompRight.String()
	case BoolMembership:
		return be.MemberLeft.String() + " " + string(be.MemberOp) + " " + be.MemberRight.String()
	default:
		return be.Prim.String()
	}
}
