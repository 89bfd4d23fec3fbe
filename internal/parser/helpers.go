package parser

import (
	"lu/internal/diag"
	"lu/internal/source"
	"lu/internal/token"
)

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// accept съедает токен, если он одного из видов kinds.
func (p *Parser) accept(kinds ...token.Kind) (token.Token, bool) {
	if p.at_or(kinds...) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем false.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, msg)
	return token.Token{Kind: token.Invalid, Span: p.diagnosticSpan()}, false
}

// expectEndOfExpr consumes `;` or a newline. EOF and a closing brace of
// an enclosing block terminate without being consumed.
func (p *Parser) expectEndOfExpr() bool {
	if p.atEndOfExpr() {
		if p.at_or(token.Semicolon, token.Newline) {
			p.advance()
		}
		return true
	}
	p.err(diag.SynUnexpectedToken, "expected terminating ';' or newline after '"+p.lastText()+"'")
	return false
}

// diagnosticSpan — span для диагностики: следующий токен, а на EOF
// позиция сразу после последнего съеденного.
func (p *Parser) diagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

func (p *Parser) lastText() string {
	return p.lx.Text(p.lastSpan)
}

// err репортит ошибку на текущем токене. Если лексер уже отдал на этом
// месте Invalid, он сам всё сообщил: второй диагностики не будет.
func (p *Parser) err(code diag.Code, msg string) {
	if p.at(token.Invalid) {
		p.advance()
		return
	}
	p.report(code, diag.SevError, p.diagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if sev >= diag.SevError {
		p.errors++
	}
	if p.opts.Logger == nil {
		return
	}
	if sev >= diag.SevError && p.opts.MaxErrors != 0 && p.errors > p.opts.MaxErrors {
		return
	}
	p.opts.Logger.Report(code, sev, sp, msg, nil)
}
