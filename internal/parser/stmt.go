package parser

import (
	"lu/internal/ast"
	"lu/internal/diag"
	"lu/internal/token"
)

// statement — самый низкий приоритет. Пустое выражение даёт Blank.
func (p *Parser) statement() (*ast.Node, bool) {
	if p.at_or(token.Semicolon, token.Newline) {
		n := p.blank()
		p.advance()
		return n, true
	}
	switch p.lx.Peek().Kind {
	case token.KwRet:
		return p.jumpStatement(ast.Return)
	case token.KwBr:
		return p.jumpStatement(ast.Branch)
	}
	return p.expressionStatement()
}

// jumpStatement parses `ret [@label] [expr]` and `br [@label] [cond]`.
// The single child is the value (or condition), Blank when absent.
func (p *Parser) jumpStatement(kind ast.Kind) (*ast.Node, bool) {
	kw := p.advance()
	label := ""
	if tok, ok := p.accept(token.Label); ok {
		label = tok.Text
	}
	sub := p.blank()
	if !p.atEndOfExpr() {
		e, ok := p.expression()
		if !ok {
			return nil, false
		}
		sub = e
	}
	if kind == ast.Branch && label == "" && sub.Kind == ast.Blank {
		p.err(diag.SynExpectLabelOrJump, "expected a label or a condition after 'br'")
		return nil, false
	}
	n := p.node(kind, label, kw.Span, sub)
	if !p.expectEndOfExpr() {
		return nil, false
	}
	return n, true
}

func (p *Parser) expressionStatement() (*ast.Node, bool) {
	e, ok := p.expression()
	if !ok {
		return nil, false
	}
	if !p.expectEndOfExpr() {
		return nil, false
	}
	return e, true
}

// block parses `{ stmt* }`, or falls through to call.
func (p *Parser) block() (*ast.Node, bool) {
	open, ok := p.accept(token.LBrace)
	if !ok {
		return p.call()
	}
	p.depth++
	defer func() { p.depth-- }()

	var subs []*ast.Node
	for {
		p.skipNewlines()
		if _, ok := p.accept(token.RBrace); ok {
			break
		}
		if p.at(token.EOF) {
			p.report(diag.SynUnclosedBrace, diag.SevError, p.diagnosticSpan(), "expected closing '}' after '"+p.lastText()+"'")
			return nil, false
		}
		s, ok := p.statement()
		if !ok {
			return nil, false
		}
		if s.Kind != ast.Blank {
			subs = append(subs, s)
		}
	}
	return p.node(ast.Block, "", open.Span, subs...), true
}
