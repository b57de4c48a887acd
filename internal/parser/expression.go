package parser

import (
	"strconv"

	"whilec/internal/ast"
	"whilec/internal/diag"
	"whilec/internal/token"
)

func (p *Parser) parseExpr() (*ast.Expr, bool) {
	return p.parseBinaryExpr(precOr)
}

// parseBinaryExpr implements precedence climbing.
func (p *Parser) parseBinaryExpr(minPrec int) (*ast.Expr, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return nil, false
	}
	for {
		op, prec := binaryOp(p.lx.Peek().Kind)
		if prec == 0 || prec < minPrec {
			return left, true
		}
		p.advance()
		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return nil, false
		}
		left = ast.Binary(op, left, right)
	}
}

func (p *Parser) parseUnaryExpr() (*ast.Expr, bool) {
	if p.at(token.KwNot) {
		kw := p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return nil, false
		}
		return ast.Not(operand, kw.Span), true
	}
	return p.parsePrimary()
}

// primary = NUMBER | "true" | "false" | IDENT | "(" expr ")"
func (p *Parser) parsePrimary() (*ast.Expr, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.NatLit:
		p.advance()
		v, err := strconv.ParseUint(tok.Text, 10, 32)
		if err != nil {
			p.report(diag.SynNumberOverflow, diag.SevError, tok.Span, "natural literal "+tok.Text+" does not fit in 32 bits")
			return ast.Number(0, tok.Span), true
		}
		return ast.Number(uint32(v), tok.Span), true
	case token.KwTrue, token.KwFalse:
		p.advance()
		return ast.Bool(tok.Kind == token.KwTrue, tok.Span), true
	case token.Ident:
		p.advance()
		return ast.Ident(tok.Text, tok.Span), true
	case token.LParen:
		open := p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
			p.report(diag.SynUnclosedParen, diag.SevInfo, open.Span, "parenthesis opened here")
			return nil, false
		}
		return inner, true
	default:
		p.err(diag.SynExpectExpression, "expected expression")
		return nil, false
	}
}
