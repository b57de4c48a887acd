package lexer

import (
	"whilec/internal/diag"
	"whilec/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil: ошибки глотаем, но лексим дальше
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
