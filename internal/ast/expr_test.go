package ast_test

import (
	"strings"
	"testing"

	"whilec/internal/ast"
	"whilec/internal/source"
)

func TestCloneIsDeep(t *testing.T) {
	var sp source.Span
	orig := ast.Binary("<", ast.Ident("x", sp), ast.Not(ast.Bool(true, sp), sp))
	clone := orig.Clone()
	if clone.String() != orig.String() {
		t.Fatalf("clone = %s, orig = %s", clone, orig)
	}
	cb := clone.Data.(ast.BinaryData)
	ob := orig.Data.(ast.BinaryData)
	if cb.Left == ob.Left || cb.Right == ob.Right {
		t.Fatal("clone shares child nodes with the original")
	}
	if cb.Right.Data.(ast.NotData).Operand == ob.Right.Data.(ast.NotData).Operand {
		t.Fatal("nested operand shared")
	}
}

func TestExprString(t *testing.T) {
	var sp source.Span
	tests := []struct {
		e    *ast.Expr
		want string
	}{
		{ast.Number(42, sp), "42"},
		{ast.Bool(false, sp), "false"},
		{ast.Binary("+", ast.Number(1, sp), ast.Binary("*", ast.Ident("a", sp), ast.Number(2, sp))), "(1 + (a * 2))"},
		{ast.Not(ast.Binary("and", ast.Ident("p", sp), ast.Ident("q", sp)), sp), "not (p and q)"},
	}
	for _, tt := range tests {
		if got := tt.e.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDump(t *testing.T) {
	var sp source.Span
	prog := &ast.Program{
		Name: "p",
		Body: []ast.Stmt{
			ast.While(ast.Bool(true, sp), []ast.Stmt{ast.Write(ast.Number(1, sp), sp)}, sp),
		},
	}
	var sb strings.Builder
	if err := ast.Dump(&sb, prog); err != nil {
		t.Fatal(err)
	}
	want := "Program p\n└─ While true\n   └─ Body\n      └─ Write 1\n"
	if sb.String() != want {
		t.Errorf("dump:\n%s\nwant:\n%s", sb.String(), want)
	}
}
