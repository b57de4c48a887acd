package ast

import "whilec/internal/source"

func Assign(name string, value *Expr, sp source.Span) Stmt {
	return Stmt{Kind: StmtAssign, Span: sp, Data: AssignData{Name: name, NameSpan: sp, Value: value}}
}

func Read(name string, sp source.Span) Stmt {
	return Stmt{Kind: StmtRead, Span: sp, Data: ReadData{Name: name, NameSpan: sp}}
}

func Write(value *Expr, sp source.Span) Stmt {
	return Stmt{Kind: StmtWrite, Span: sp, Data: WriteData{Value: value}}
}

func If(cond *Expr, then, els []Stmt, sp source.Span) Stmt {
	return Stmt{Kind: StmtIf, Span: sp, Data: IfData{Cond: cond, Then: then, Else: els}}
}

func While(cond *Expr, body []Stmt, sp source.Span) Stmt {
	return Stmt{Kind: StmtWhile, Span: sp, Data: WhileData{Cond: cond, Body: body}}
}
