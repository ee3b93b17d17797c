// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package parser

import (
	"github.com/liquid2/liquid2/ast"
	"github.com/liquid2/liquid2/errkind"
	"github.com/liquid2/liquid2/internal/exprlex"
	"github.com/liquid2/liquid2/internal/markup"
)

// Parser walks a markup.Item stream and builds an ast.Template, matching
// block tags against their alternative-branch and terminator names via
// parseNodesUntil and the per-tag end-matching calls below.
type Parser struct {
	items []markup.Item
	pos   int
}

// Parse scans src and parses it into a Template.
func Parse(src string) (*ast.Template, error) {
	items, err := markup.Scan(src)
	if err != nil {
		return nil, err
	}
	p := &Parser{items: items}
	nodes, err := p.parseNodesUntil(nil)
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		return nil, errkind.Syntaxf(p.peek().Span, "unexpected tag %q", p.peek().Name)
	}
	return &ast.Template{Nodes: nodes}, nil
}

func (p *Parser) peek() markup.Item { return p.items[p.pos] }

func (p *Parser) next() markup.Item {
	it := p.items[p.pos]
	if p.pos < len(p.items)-1 {
		p.pos++
	}
	return it
}

func (p *Parser) atEOF() bool { return p.peek().Kind == markup.EOI }

func (p *Parser) isTerminator(names map[string]bool) bool {
	it := p.peek()
	return it.Kind == markup.Tag && names[it.Name]
}

// parseNodesUntil accumulates nodes until the head item is EOI or a Tag
// item whose name is in names (the terminator is left unconsumed).
func (p *Parser) parseNodesUntil(names map[string]bool) ([]ast.Node, error) {
	var nodes []ast.Node
	for {
		if p.atEOF() || p.isTerminator(names) {
			return nodes, nil
		}
		node, err := p.parseOne()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
}

func (p *Parser) parseOne() (ast.Node, error) {
	it := p.next()
	switch it.Kind {
	case markup.Content:
		return &ast.ContentNode{Text: it.Text, Span: it.Span}, nil
	case markup.Raw:
		return &ast.RawNode{OpenWS: it.OpenWS, CloseWS: it.CloseWS, Text: it.Text, Span: it.Span}, nil
	case markup.Comment:
		return &ast.CommentNode{WS: ast.TagWS{Left: it.OpenWS.Left, Right: it.CloseWS.Right}, HashCount: it.HashCount, Text: it.Text, Span: it.Span}, nil
	case markup.Output:
		expr, err := parseFilteredExpression(it.Expr, exprBase(it))
		if err != nil {
			return nil, err
		}
		return &ast.OutputNode{WS: it.OpenWS, Expr: expr, Span: it.Span}, nil
	case markup.Lines:
		return p.parseLiquidTag(it)
	case markup.Tag:
		return p.parseTag(it)
	default:
		return nil, errkind.Syntaxf(it.Span, "unexpected item")
	}
}

// exprBase returns the byte offset an item's Expr text begins at within
// the original source, used as the base for nested span computation.
// Items built from markup.Scan store Expr already trimmed of surrounding
// whitespace, so this is an approximation anchored at the item's own
// span start; precise enough for diagnostics without re-deriving the
// exact trim offset.
func exprBase(it markup.Item) int { return it.Span.Start }

func (p *Parser) parseTag(it markup.Item) (ast.Node, error) {
	info, ok := builtinTags[it.Name]
	if !ok {
		return p.parseExtension(it)
	}
	if !info.block {
		return parseInlineTag(it)
	}
	switch it.Name {
	case "capture":
		return p.parseCapture(it)
	case "case":
		return p.parseCase(it)
	case "for":
		return p.parseFor(it)
	case "if":
		return p.parseIf(it, "endif")
	case "unless":
		return p.parseUnless(it, "endunless")
	default:
		return nil, errkind.Syntaxf(it.Span, "unhandled block tag %q", it.Name)
	}
}

func parseInlineTag(it markup.Item) (ast.Node, error) {
	switch it.Name {
	case "assign":
		return parseAssignTag(it)
	case "cycle":
		return parseCycleTag(it)
	case "decrement":
		return parseSimpleIdentTag(it, false)
	case "increment":
		return parseSimpleIdentTag(it, true)
	case "echo":
		return parseEchoTag(it)
	case "break":
		return &ast.BreakTag{WS: it.OpenWS, Span: it.Span}, nil
	case "continue":
		return &ast.ContinueTag{WS: it.OpenWS, Span: it.Span}, nil
	case "include":
		return parseIncludeOrRender(it, false)
	case "render":
		return parseIncludeOrRender(it, true)
	default:
		return nil, errkind.Syntaxf(it.Span, "unhandled inline tag %q", it.Name)
	}
}

func parseAssignTag(it markup.Item) (*ast.AssignTag, error) {
	c, err := exprlex.NewCursor(it.Expr, exprBase(it))
	if err != nil {
		return nil, errkind.Wrap(errkind.Lexer, it.Span, err, "tokenizing assign tag")
	}
	nameTok, err := c.Expect("Word")
	if err != nil {
		return nil, err
	}
	assignTok, err := c.Expect("Assign")
	if err != nil {
		return nil, err
	}
	restOffset := assignTok.Pos.Offset + len(assignTok.Value)
	rest := it.Expr[restOffset:]
	expr, err := parseFilteredExpression(rest, exprBase(it)+restOffset)
	if err != nil {
		return nil, err
	}
	return &ast.AssignTag{WS: it.OpenWS, Name: nameTok.Value, Expr: expr, Span: it.Span}, nil
}

func parseEchoTag(it markup.Item) (*ast.EchoTag, error) {
	expr, err := parseFilteredExpression(it.Expr, exprBase(it))
	if err != nil {
		return nil, err
	}
	return &ast.EchoTag{WS: it.OpenWS, Expr: expr, Span: it.Span}, nil
}

func parseSimpleIdentTag(it markup.Item, increment bool) (ast.Node, error) {
	c, err := exprlex.NewCursor(it.Expr, exprBase(it))
	if err != nil {
		return nil, errkind.Wrap(errkind.Lexer, it.Span, err, "tokenizing tag")
	}
	nameTok, err := c.Expect("Word")
	if err != nil {
		return nil, err
	}
	if !c.AtEOF() {
		return nil, errkind.Syntaxf(c.Span(c.Peek()), "unexpected trailing input %q", describe(c.Peek()))
	}
	if increment {
		return &ast.IncrementTag{WS: it.OpenWS, Name: nameTok.Value, Span: it.Span}, nil
	}
	return &ast.DecrementTag{WS: it.OpenWS, Name: nameTok.Value, Span: it.Span}, nil
}

func parseCycleTag(it markup.Item) (*ast.CycleTag, error) {
	c, err := exprlex.NewCursor(it.Expr, exprBase(it))
	if err != nil {
		return nil, errkind.Wrap(errkind.Lexer, it.Span, err, "tokenizing cycle tag")
	}
	var group *string
	if (c.Is("String") || c.Is("Word")) && c.PeekN(1).Type == exprlex.Symbol("Colon") {
		tok := c.Next()
		c.Next()
		g := tok.Value
		if len(g) > 0 && (g[0] == '\'' || g[0] == '"') {
			s, err := unescapeExprString(g, c.Span(tok))
			if err != nil {
				return nil, err
			}
			g = s
		}
		group = &g
	}
	var args []*ast.Primitive
	for {
		arg, err := parsePrimitive(c)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !c.Is("Comma") {
			break
		}
		c.Next()
	}
	if !c.AtEOF() {
		return nil, errkind.Syntaxf(c.Span(c.Peek()), "unexpected trailing input %q", describe(c.Peek()))
	}
	return &ast.CycleTag{WS: it.OpenWS, Group: group, Args: args, Span: it.Span}, nil
}

func parseIncludeOrRender(it markup.Item, render bool) (ast.Node, error) {
	c, err := exprlex.NewCursor(it.Expr, exprBase(it))
	if err != nil {
		return nil, errkind.Wrap(errkind.Lexer, it.Span, err, "tokenizing tag")
	}
	target, err := parsePrimitive(c)
	if err != nil {
		return nil, err
	}
	var variable *ast.Primitive
	repeat := false
	alias := ""
	switch {
	case c.IsWord("with"):
		c.Next()
		repeat = false
		if variable, err = parsePrimitive(c); err != nil {
			return nil, err
		}
	case c.IsWord("for"):
		c.Next()
		repeat = true
		if variable, err = parsePrimitive(c); err != nil {
			return nil, err
		}
	}
	if variable != nil && c.IsWord("as") {
		c.Next()
		aliasTok, err := c.Expect("Word")
		if err != nil {
			return nil, err
		}
		alias = aliasTok.Value
	}
	var args []*ast.CommonArgument
	if c.Is("Comma") {
		c.Next()
		args, err = parseArgumentList(c)
		if err != nil {
			return nil, err
		}
	}
	if !c.AtEOF() {
		return nil, errkind.Syntaxf(c.Span(c.Peek()), "unexpected trailing input %q", describe(c.Peek()))
	}
	if render {
		return &ast.RenderTag{WS: it.OpenWS, Target: target, Repeat: repeat, Variable: variable, Alias: alias, Args: args, Span: it.Span}, nil
	}
	return &ast.IncludeTag{WS: it.OpenWS, Target: target, Repeat: repeat, Variable: variable, Alias: alias, Args: args, Span: it.Span}, nil
}

func (p *Parser) parseCapture(it markup.Item) (*ast.CaptureTag, error) {
	c, err := exprlex.NewCursor(it.Expr, exprBase(it))
	if err != nil {
		return nil, errkind.Wrap(errkind.Lexer, it.Span, err, "tokenizing capture tag")
	}
	nameTok, err := c.Expect("Word")
	if err != nil {
		return nil, err
	}
	body, err := p.parseNodesUntil(endSet("endcapture"))
	if err != nil {
		return nil, err
	}
	endItem, err := p.expectTag("endcapture")
	if err != nil {
		return nil, err
	}
	return &ast.CaptureTag{OpenWS: it.OpenWS, CloseWS: endItem.OpenWS, Name: nameTok.Value, Block: body, Span: mergeSpan(it.Span, endItem.Span)}, nil
}

func (p *Parser) expectTag(name string) (markup.Item, error) {
	if p.atEOF() || !(p.peek().Kind == markup.Tag && p.peek().Name == name) {
		return markup.Item{}, errkind.Syntaxf(p.peek().Span, "expected %q, unclosed block", name)
	}
	return p.next(), nil
}

func (p *Parser) parseIf(it markup.Item, endName string) (*ast.IfTag, error) {
	cond, err := parseBooleanExpression(it.Expr, exprBase(it))
	if err != nil {
		return nil, err
	}
	ends := endSet("elsif", "else", endName)
	body, err := p.parseNodesUntil(ends)
	if err != nil {
		return nil, err
	}
	var alternatives []*ast.IfBranch
	for p.peek().Kind == markup.Tag && p.peek().Name == "elsif" {
		branch := p.next()
		branchCond, err := parseBooleanExpression(branch.Expr, exprBase(branch))
		if err != nil {
			return nil, err
		}
		branchBody, err := p.parseNodesUntil(ends)
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, &ast.IfBranch{WS: branch.OpenWS, Condition: branchCond, Block: branchBody, Span: branch.Span})
	}
	var elseArm *ast.CaseElse
	if p.peek().Kind == markup.Tag && p.peek().Name == "else" {
		elseItem := p.next()
		elseBody, err := p.parseNodesUntil(endSet(endName))
		if err != nil {
			return nil, err
		}
		elseArm = &ast.CaseElse{WS: elseItem.OpenWS, Block: elseBody, Span: elseItem.Span}
	}
	endItem, err := p.expectTag(endName)
	if err != nil {
		return nil, err
	}
	return &ast.IfTag{OpenWS: it.OpenWS, CloseWS: endItem.OpenWS, Condition: cond, Block: body, Alternatives: alternatives, Else: elseArm, Span: mergeSpan(it.Span, endItem.Span)}, nil
}

func (p *Parser) parseUnless(it markup.Item, endName string) (ast.Node, error) {
	ifLike, err := p.parseIf(it, endName)
	if err != nil {
		return nil, err
	}
	return &ast.UnlessTag{
		OpenWS: ifLike.OpenWS, CloseWS: ifLike.CloseWS,
		Condition: ifLike.Condition, Block: ifLike.Block,
		Alternatives: ifLike.Alternatives, Else: ifLike.Else,
		Span: ifLike.Span,
	}, nil
}

func (p *Parser) parseFor(it markup.Item) (*ast.ForTag, error) {
	c, err := exprlex.NewCursor(it.Expr, exprBase(it))
	if err != nil {
		return nil, errkind.Wrap(errkind.Lexer, it.Span, err, "tokenizing for tag")
	}
	nameTok, err := c.Expect("Word")
	if err != nil {
		return nil, err
	}
	if _, err := c.ExpectWord("in"); err != nil {
		return nil, err
	}
	iterable, err := parsePrimitive(c)
	if err != nil {
		return nil, err
	}
	var limit, offset *ast.Primitive
	reversed := false
	for !c.AtEOF() {
		switch {
		case c.IsWord("limit"):
			c.Next()
			if _, err := c.Expect("Colon"); err != nil {
				return nil, err
			}
			if limit, err = parsePrimitive(c); err != nil {
				return nil, err
			}
		case c.IsWord("offset"):
			c.Next()
			if _, err := c.Expect("Colon"); err != nil {
				return nil, err
			}
			if offset, err = parsePrimitive(c); err != nil {
				return nil, err
			}
		case c.IsWord("reversed"):
			c.Next()
			reversed = true
		default:
			return nil, errkind.Syntaxf(c.Span(c.Peek()), "unknown for-loop argument %q", describe(c.Peek()))
		}
	}
	body, err := p.parseNodesUntil(endSet("else", "endfor"))
	if err != nil {
		return nil, err
	}
	var elseArm *ast.CaseElse
	if p.peek().Kind == markup.Tag && p.peek().Name == "else" {
		elseItem := p.next()
		elseBody, err := p.parseNodesUntil(endSet("endfor"))
		if err != nil {
			return nil, err
		}
		elseArm = &ast.CaseElse{WS: elseItem.OpenWS, Block: elseBody, Span: elseItem.Span}
	}
	endItem, err := p.expectTag("endfor")
	if err != nil {
		return nil, err
	}
	return &ast.ForTag{
		OpenWS: it.OpenWS, CloseWS: endItem.OpenWS,
		Name: nameTok.Value, Iterable: iterable, Limit: limit, Offset: offset, Reversed: reversed,
		Block: body, Else: elseArm, Span: mergeSpan(it.Span, endItem.Span),
	}, nil
}

func (p *Parser) parseCase(it markup.Item) (*ast.CaseTag, error) {
	c, err := exprlex.NewCursor(it.Expr, exprBase(it))
	if err != nil {
		return nil, errkind.Wrap(errkind.Lexer, it.Span, err, "tokenizing case tag")
	}
	arg, err := parsePrimitive(c)
	if err != nil {
		return nil, err
	}
	if !c.AtEOF() {
		return nil, errkind.Syntaxf(c.Span(c.Peek()), "unexpected trailing input %q", describe(c.Peek()))
	}

	ends := endSet("when", "else", "endcase")
	// content between `case` and the first `when` is parsed but discarded.
	if _, err := p.parseNodesUntil(ends); err != nil {
		return nil, err
	}

	var whens []*ast.CaseWhen
	for p.peek().Kind == markup.Tag && p.peek().Name == "when" {
		whenItem := p.next()
		wc, err := exprlex.NewCursor(whenItem.Expr, exprBase(whenItem))
		if err != nil {
			return nil, errkind.Wrap(errkind.Lexer, whenItem.Span, err, "tokenizing when tag")
		}
		args, err := parsePrimitiveList(wc)
		if err != nil {
			return nil, err
		}
		body, err := p.parseNodesUntil(ends)
		if err != nil {
			return nil, err
		}
		whens = append(whens, &ast.CaseWhen{WS: whenItem.OpenWS, Args: args, Block: body, Span: whenItem.Span})
	}
	var def *ast.CaseElse
	if p.peek().Kind == markup.Tag && p.peek().Name == "else" {
		elseItem := p.next()
		body, err := p.parseNodesUntil(endSet("endcase"))
		if err != nil {
			return nil, err
		}
		def = &ast.CaseElse{WS: elseItem.OpenWS, Block: body, Span: elseItem.Span}
	}
	endItem, err := p.expectTag("endcase")
	if err != nil {
		return nil, err
	}
	return &ast.CaseTag{OpenWS: it.OpenWS, CloseWS: endItem.OpenWS, Arg: arg, Whens: whens, Default: def, Span: mergeSpan(it.Span, endItem.Span)}, nil
}

func parsePrimitiveList(c *exprlex.Cursor) ([]*ast.Primitive, error) {
	var args []*ast.Primitive
	for {
		arg, err := parsePrimitive(c)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !c.Is("Comma") {
			break
		}
		c.Next()
	}
	if !c.AtEOF() {
		return nil, errkind.Syntaxf(c.Span(c.Peek()), "unexpected trailing input %q", describe(c.Peek()))
	}
	return args, nil
}

// parseExtension parses any tag whose name is not in builtinTags: a
// common-argument list followed by an optional block closed by
// "end"+name. If the lookahead finds no matching end tag (the stream
// runs out, or it stops at an error such as an enclosing block's end
// tag), the extension is treated as inline and the lookahead is
// discarded without consuming anything beyond the opening tag. A tag
// whose name begins with "end" that reaches this point closes no open
// block and is a SyntaxError.
func (p *Parser) parseExtension(it markup.Item) (*ast.TagExtension, error) {
	if len(it.Name) >= 3 && it.Name[:3] == "end" {
		return nil, errkind.Syntaxf(it.Span, "unexpected tag %q", it.Name)
	}
	var args []*ast.CommonArgument
	if it.HasExpr {
		c, err := exprlex.NewCursor(it.Expr, exprBase(it))
		if err != nil {
			return nil, errkind.Wrap(errkind.Lexer, it.Span, err, "tokenizing tag extension arguments")
		}
		args, err = parseArgumentList(c)
		if err != nil {
			return nil, err
		}
		if !c.AtEOF() {
			return nil, errkind.Syntaxf(c.Span(c.Peek()), "unexpected trailing input %q", describe(c.Peek()))
		}
	}

	endName := "end" + it.Name
	save := p.pos
	body, err := p.parseNodesUntil(endSet(endName))
	if err == nil && p.peek().Kind == markup.Tag && p.peek().Name == endName {
		endItem := p.next()
		closeWS := endItem.OpenWS
		return &ast.TagExtension{OpenWS: it.OpenWS, CloseWS: &closeWS, Name: it.Name, Args: args, Block: body, Span: mergeSpan(it.Span, endItem.Span)}, nil
	}
	p.pos = save
	return &ast.TagExtension{OpenWS: it.OpenWS, Name: it.Name, Args: args, Span: it.Span}, nil
}

func mergeSpan(a, b errkind.Span) errkind.Span {
	return errkind.Span{Start: a.Start, End: b.End, Line: a.Line, Column: a.Column}
}
