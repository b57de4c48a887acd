package parser

import (
	"slices"

	"whilec/internal/ast"
	"whilec/internal/diag"
	"whilec/internal/lexer"
	"whilec/internal/source"
	"whilec/internal/symbols"
	"whilec/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error limit has been reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Result of parsing one file. Program is never nil; on errors it holds
// whatever could be recovered.
type Result struct {
	Program *ast.Program
	Symbols *symbols.Table
	Errors  uint
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	fs       *source.FileSet
	syms     *symbols.Table
	opts     Options
	lastSpan source.Span
}

// ParseFile parses a whole program: header, declarations and body.
// Declarations are entered into a fresh symbol table.
func ParseFile(fs *source.FileSet, lx *lexer.Lexer, opts Options) Result {
	p := Parser{
		lx:   lx,
		fs:   fs,
		syms: symbols.NewTable(),
		opts: opts,
	}
	prog := p.parseProgram()
	return Result{Program: prog, Symbols: p.syms, Errors: p.opts.CurrentErrors}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseProgram: "program" IDENT { decl } "begin" stmts "end" EOF
func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	start := p.lx.Peek().Span

	if _, ok := p.expect(token.KwProgram, diag.SynExpectKeyword, "expected 'program'"); ok {
		if name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected program name"); ok {
			prog.Name = name.Text
		}
	}

	for p.atOr(token.KwNatural, token.KwBoolean) {
		if decl, ok := p.parseDecl(); ok {
			prog.Decls = append(prog.Decls, decl)
		}
	}

	if _, ok := p.expect(token.KwBegin, diag.SynExpectKeyword, "expected 'begin' after declarations"); !ok {
		p.resyncUntil(token.KwBegin)
		if p.at(token.KwBegin) {
			p.advance()
		}
	}
	prog.Body = p.parseStmts()
	p.expect(token.KwEnd, diag.SynExpectKeyword, "expected 'end'")

	if !p.at(token.EOF) {
		p.report(diag.SynTrailingInput, diag.SevError, p.lx.Peek().Span, "unexpected input after 'end'")
	}
	prog.Span = start.Cover(p.lastSpan)
	return prog
}

// parseDecl: ("natural" | "boolean") IDENT ";"
func (p *Parser) parseDecl() (ast.Decl, bool) {
	typTok := p.advance()
	typ := symbols.Natural
	if typTok.Kind == token.KwBoolean {
		typ = symbols.Boolean
	}
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected variable name after '"+typTok.Text+"'")
	if !ok {
		p.resyncUntil(token.Semicolon, token.KwNatural, token.KwBoolean, token.KwBegin)
		if p.at(token.Semicolon) {
			p.advance()
		}
		return ast.Decl{}, false
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after declaration")

	decl := ast.Decl{Name: name.Text, Type: typ, Span: typTok.Span.Cover(name.Span)}
	prev, fresh := p.syms.Declare(symbols.Symbol{
		Line: p.fs.Line(name.Span),
		Name: name.Text,
		Type: typ,
		Span: name.Span,
	})
	if !fresh {
		diag.ReportError(p.opts.Reporter, diag.SemaRedeclared, name.Span, "variable %q is already declared", name.Text).
			WithNote(prev.Span, "previous declaration here").
			Emit()
		p.opts.CurrentErrors++
		return decl, false
	}
	return decl, true
}
