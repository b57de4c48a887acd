package parser

import (
	"whilec/internal/ast"
	"whilec/internal/diag"
	"whilec/internal/token"
)

// stmtTerminators close a statement list.
var stmtTerminators = []token.Kind{token.KwEnd, token.KwElse, token.KwEndif, token.KwDone, token.EOF}

// parseStmts: { stmt [";"] }
func (p *Parser) parseStmts() []ast.Stmt {
	var out []ast.Stmt
	for !p.atOr(stmtTerminators...) {
		if !p.lx.Peek().IsStmtStart() {
			tok := p.lx.Peek()
			p.report(diag.SynUnexpectedToken, diag.SevError, tok.Span, "unexpected '"+tok.Text+"', expected statement")
			p.advance()
			p.resyncStmt()
			continue
		}
		stmt, ok := p.parseStmt()
		if ok {
			out = append(out, stmt)
		} else {
			p.resyncStmt()
		}
		if p.at(token.Semicolon) {
			p.advance()
		}
	}
	return out
}

// resyncStmt прокручивает до ';' или начала следующего оператора.
func (p *Parser) resyncStmt() {
	for !p.atOr(stmtTerminators...) && !p.at(token.Semicolon) && !p.lx.Peek().IsStmtStart() {
		p.advance()
	}
}

func (p *Parser) parseStmt() (ast.Stmt, bool) {
	switch p.lx.Peek().Kind {
	case token.Ident:
		return p.parseAssign()
	case token.KwRead:
		return p.parseRead()
	case token.KwWrite:
		return p.parseWrite()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	default:
		p.err(diag.SynUnexpectedToken, "expected statement")
		return ast.Stmt{}, false
	}
}

// IDENT ":=" expr
func (p *Parser) parseAssign() (ast.Stmt, bool) {
	name := p.advance()
	if _, ok := p.expect(token.Assign, diag.SynExpectAssignToken, "expected ':=' after '"+name.Text+"'"); !ok {
		return ast.Stmt{}, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return ast.Stmt{}, false
	}
	return ast.Stmt{
		Kind: ast.StmtAssign,
		Span: name.Span.Cover(value.Span),
		Data: ast.AssignData{Name: name.Text, NameSpan: name.Span, Value: value},
	}, true
}

// "read" "(" IDENT ")"
func (p *Parser) parseRead() (ast.Stmt, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'read'"); !ok {
		return ast.Stmt{}, false
	}
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected variable name in 'read'")
	if !ok {
		return ast.Stmt{}, false
	}
	closing, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
	if !ok {
		return ast.Stmt{}, false
	}
	return ast.Stmt{
		Kind: ast.StmtRead,
		Span: kw.Span.Cover(closing.Span),
		Data: ast.ReadData{Name: name.Text, NameSpan: name.Span},
	}, true
}

// "write" "(" expr ")"
func (p *Parser) parseWrite() (ast.Stmt, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'write'"); !ok {
		return ast.Stmt{}, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return ast.Stmt{}, false
	}
	closing, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
	if !ok {
		return ast.Stmt{}, false
	}
	return ast.Stmt{
		Kind: ast.StmtWrite,
		Span: kw.Span.Cover(closing.Span),
		Data: ast.WriteData{Value: value},
	}, true
}

// "if" expr "then" stmts [ "else" stmts ] "endif"
func (p *Parser) parseIf() (ast.Stmt, bool) {
	kw := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return ast.Stmt{}, false
	}
	if _, ok := p.expect(token.KwThen, diag.SynExpectKeyword, "expected 'then' after condition"); !ok {
		return ast.Stmt{}, false
	}
	then := p.parseStmts()
	var els []ast.Stmt
	if p.at(token.KwElse) {
		p.advance()
		els = p.parseStmts()
	}
	closing, ok := p.expect(token.KwEndif, diag.SynExpectKeyword, "expected 'endif'")
	if !ok {
		return ast.Stmt{}, false
	}
	return ast.Stmt{
		Kind: ast.StmtIf,
		Span: kw.Span.Cover(closing.Span),
		Data: ast.IfData{Cond: cond, Then: then, Else: els},
	}, true
}

// "while" expr "do" stmts "done"
func (p *Parser) parseWhile() (ast.Stmt, bool) {
	kw := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return ast.Stmt{}, false
	}
	if _, ok := p.expect(token.KwDo, diag.SynExpectKeyword, "expected 'do' after condition"); !ok {
		return ast.Stmt{}, false
	}
	body := p.parseStmts()
	closing, ok := p.expect(token.KwDone, diag.SynExpectKeyword, "expected 'done'")
	if !ok {
		return ast.Stmt{}, false
	}
	return ast.Stmt{
		Kind: ast.StmtWhile,
		Span: kw.Span.Cover(closing.Span),
		Data: ast.WhileData{Cond: cond, Body: body},
	}, true
}
