package parser

import (
	"lu/internal/ast"
	"lu/internal/diag"
	"lu/internal/token"
)

func (p *Parser) expression() (*ast.Node, bool) {
	return p.tuple()
}

// tuple — неявный кортеж через запятую, минимум два элемента.
func (p *Parser) tuple() (*ast.Node, bool) {
	first, ok := p.assignment()
	if !ok {
		return nil, false
	}
	if !p.at(token.Comma) {
		return first, true
	}
	subs := []*ast.Node{first}
	for {
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
		e, ok := p.assignment()
		if !ok {
			return nil, false
		}
		subs = append(subs, e)
	}
	return p.node(ast.Tuple, "", first.Span, subs...), true
}

func isAssignOp(k token.Kind) bool {
	return k == token.Assign || k == token.LeftArrow || k == token.ColonAssign
}

// assignment is right-associative: `a = b = c` is `a = (b = c)`.
func (p *Parser) assignment() (*ast.Node, bool) {
	lhs, ok := p.function()
	if !ok {
		return nil, false
	}
	if !isAssignOp(p.lx.Peek().Kind) {
		return lhs, true
	}
	p.advance()
	if !ast.Assignable(lhs) {
		p.report(diag.SynInvalidTarget, diag.SevError, lhs.Span, "expected an assignable target before '"+p.lastText()+"'")
		return nil, false
	}
	rhs, ok := p.assignment()
	if !ok {
		return nil, false
	}
	return p.node(ast.Assign, "", lhs.Span, lhs, rhs), true
}

// function parses `params -> body`; any assignable expression serves as
// the parameter list.
func (p *Parser) function() (*ast.Node, bool) {
	params, ok := p.block()
	if !ok {
		return nil, false
	}
	if _, ok := p.accept(token.Arrow); !ok {
		return params, true
	}
	if !ast.Assignable(params) {
		p.report(diag.SynInvalidTarget, diag.SevError, params.Span, "expected an assignable target before '->'")
		return nil, false
	}
	body, ok := p.function()
	if !ok {
		return nil, false
	}
	return p.node(ast.Function, "", params.Span, params, body), true
}

func (p *Parser) call() (*ast.Node, bool) {
	callee, ok := p.primary()
	if !ok {
		return nil, false
	}
	open, ok := p.accept(token.LParen)
	if !ok {
		return callee, true
	}
	args, ok := p.parenTuple(open)
	if !ok {
		return nil, false
	}
	return p.node(ast.Call, "", callee.Span, callee, args), true
}

func (p *Parser) primary() (*ast.Node, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.StringLit, token.IntLit, token.DecimalLit, token.KwTrue, token.KwFalse:
		p.advance()
		return p.literal(tok), true
	case token.Ident:
		p.advance()
		return p.variable(tok)
	case token.Intrinsic:
		p.advance()
		return p.node(ast.Intrinsic, tok.Text, tok.Span), true
	case token.LParen:
		p.advance()
		return p.parenTuple(tok)
	}
	p.err(diag.SynExpectExpression, "expected primary-expr after '"+p.lastText()+"'")
	return nil, false
}

// variable — идентификатор уже съеден; `: type` делает его объявлением.
func (p *Parser) variable(name token.Token) (*ast.Node, bool) {
	if _, ok := p.accept(token.Colon); !ok {
		return p.node(ast.Variable, name.Text, name.Span), true
	}
	typ, ok := p.kind()
	if !ok {
		return nil, false
	}
	return p.node(ast.TypedVariable, name.Text, name.Span, typ), true
}

// parenTuple — открывающая скобка уже съедена. В скобках допускается
// от нуля элементов; переводы строк внутри игнорируются.
func (p *Parser) parenTuple(open token.Token) (*ast.Node, bool) {
	var subs []*ast.Node
	p.skipNewlines()
	if !p.at(token.RParen) {
		for {
			p.skipNewlines()
			e, ok := p.assignment()
			if !ok {
				return nil, false
			}
			subs = append(subs, e)
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
		}
	}
	p.skipNewlines()
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected closing ')' after '"+p.lastText()+"'"); !ok {
		return nil, false
	}
	return p.node(ast.Tuple, "", open.Span, subs...), true
}

func (p *Parser) literal(tok token.Token) *ast.Node {
	switch tok.Kind {
	case token.StringLit:
		return p.node(ast.StringLit, unescape(tok.Text[1:len(tok.Text)-1]), tok.Span)
	case token.IntLit:
		return p.node(ast.IntegerLit, tok.Text, tok.Span)
	case token.DecimalLit:
		return p.node(ast.DecimalLit, tok.Text, tok.Span)
	case token.KwTrue:
		return p.node(ast.TrueLit, tok.Text, tok.Span)
	default:
		return p.node(ast.FalseLit, tok.Text, tok.Span)
	}
}
