package parser

import (
	"lu/internal/ast"
	"lu/internal/diag"
	"lu/internal/token"
)

// kind parses a type expression: `name`, `(params)` or `a -> b`.
func (p *Parser) kind() (*ast.Node, bool) {
	return p.functionKind()
}

func (p *Parser) functionKind() (*ast.Node, bool) {
	params, ok := p.primaryKind()
	if !ok {
		return nil, false
	}
	if _, ok := p.accept(token.Arrow); !ok {
		return params, true
	}
	result, ok := p.functionKind()
	if !ok {
		return nil, false
	}
	return p.node(ast.FunctionType, "", params.Span, params, result), true
}

func (p *Parser) primaryKind() (*ast.Node, bool) {
	if tok, ok := p.accept(token.Ident); ok {
		return p.node(ast.NamedType, tok.Text, tok.Span), true
	}
	if open, ok := p.accept(token.LParen); ok {
		return p.parenTupleKind(open)
	}
	p.err(diag.SynExpectType, "expected a type after '"+p.lastText()+"'")
	return nil, false
}

// param — `type` или `name: type`.
func (p *Parser) param() (*ast.Node, bool) {
	lhs, ok := p.kind()
	if !ok {
		return nil, false
	}
	if _, ok := p.accept(token.Colon); !ok {
		return lhs, true
	}
	if lhs.Kind != ast.NamedType {
		p.report(diag.SynExpectIdentifier, diag.SevError, lhs.Span, "expected an identifier before ':'")
		return nil, false
	}
	typ, ok := p.kind()
	if !ok {
		return nil, false
	}
	return p.node(ast.Param, lhs.Text, lhs.Span, typ), true
}

// defaultParam — param, за которым может идти `= block`.
func (p *Parser) defaultParam() (*ast.Node, bool) {
	target, ok := p.param()
	if !ok {
		return nil, false
	}
	if _, ok := p.accept(token.Assign, token.LeftArrow); !ok {
		return target, true
	}
	deflt, ok := p.block()
	if !ok {
		return nil, false
	}
	return p.node(ast.DefaultParam, "", target.Span, target, deflt), true
}

func (p *Parser) parenTupleKind(open token.Token) (*ast.Node, bool) {
	var subs []*ast.Node
	p.skipNewlines()
	if !p.at(token.RParen) {
		for {
			p.skipNewlines()
			e, ok := p.defaultParam()
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
	return p.node(ast.TupleType, "", open.Span, subs...), true
}
