// Package parser builds the lu syntax tree from a token stream.
package parser

import (
	"slices"

	"lu/internal/ast"
	"lu/internal/diag"
	"lu/internal/lexer"
	"lu/internal/source"
	"lu/internal/token"
)

type Options struct {
	// MaxErrors caps reported syntax errors; 0 means no cap.
	MaxErrors uint
	// Logger receives lexical and syntax diagnostics and decides whether
	// an error stops the parse. A nil Logger never stops it.
	Logger diag.Logger
}

type Result struct {
	Tree   *ast.Tree
	Status diag.Status
	Errors uint
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	file     source.FileID
	opts     Options
	lastSpan source.Span // span последнего съеденного токена
	errors   uint
	depth    int // вложенность блоков
}

// ParseFile разбирает один файл из fs целиком.
func ParseFile(fs *source.FileSet, id source.FileID, opts Options) Result {
	file := fs.Get(id)
	var rep diag.Reporter
	if opts.Logger != nil {
		rep = opts.Logger
	}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	p := Parser{
		lx:       lx,
		file:     id,
		opts:     opts,
		lastSpan: source.Span{File: id},
	}
	tree := &ast.Tree{File: id}
	status := p.parseUnits(tree)
	if lx.Errors() > 0 {
		status = diag.StatusFail
	}
	return Result{Tree: tree, Status: status, Errors: p.errors + lx.Errors()}
}

// parseUnits — основной цикл верхнего уровня. Пустые выражения
// отбрасываются; после ошибки либо останавливаемся, либо
// прокручиваем до конца выражения.
func (p *Parser) parseUnits(tree *ast.Tree) diag.Status {
	status := diag.StatusOK
	for !p.at(token.EOF) {
		n, ok := p.statement()
		if ok {
			if n.Kind != ast.Blank {
				tree.Units = append(tree.Units, n)
			}
			continue
		}
		status = diag.StatusFail
		if p.isFatal() || p.enough() {
			break
		}
		p.sync()
	}
	return status
}

// sync skips tokens up to and including the next end of expression.
func (p *Parser) sync() {
	for !p.at(token.EOF) {
		if p.at_or(token.Semicolon, token.Newline) {
			p.advance()
			return
		}
		p.advance()
	}
}

func (p *Parser) isFatal() bool {
	return p.opts.Logger != nil && p.opts.Logger.IsFatal(diag.SevError)
}

func (p *Parser) enough() bool {
	return p.opts.MaxErrors != 0 && p.errors >= p.opts.MaxErrors
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) at_or(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// atEndOfExpr — `;`, перевод строки, EOF, а внутри блока ещё и `}`.
func (p *Parser) atEndOfExpr() bool {
	if p.lx.Peek().IsEndOfExpr() {
		return true
	}
	return p.depth > 0 && p.at(token.RBrace)
}

func (p *Parser) skipNewlines() {
	for p.at(token.Newline) {
		p.advance()
	}
}

func (p *Parser) node(kind ast.Kind, text string, start source.Span, children ...*ast.Node) *ast.Node {
	return &ast.Node{Kind: kind, Text: text, Span: start.Cover(p.lastSpan), Children: children}
}

func (p *Parser) blank() *ast.Node {
	sp := p.lx.Peek().Span
	sp.End = sp.Start
	return &ast.Node{Kind: ast.Blank, Span: sp}
}
