package lexer

import (
	"lu/internal/diag"
	"lu/internal/source"
)

// Options configure a Lexer.
type Options struct {
	// Reporter receives lexical diagnostics. It may be nil, in which case
	// errors are dropped and lexing continues.
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.errors++
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
