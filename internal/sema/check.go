package sema

import (
	"whilec/internal/ast"
	"whilec/internal/diag"
	"whilec/internal/source"
	"whilec/internal/symbols"
)

// Options configure a semantic pass over a program.
type Options struct {
	Reporter diag.Reporter
	Symbols  *symbols.Table
}

// Result summarises the pass. OK is false when any error was reported.
type Result struct {
	OK     bool
	Errors int
}

// Check verifies declarations and types of every statement in prog.
func Check(prog *ast.Program, opts Options) Result {
	tc := typeChecker{reporter: opts.Reporter, syms: opts.Symbols}
	if tc.syms == nil {
		tc.syms = symbols.NewTable()
	}
	tc.stmts(prog.Body)
	return Result{OK: tc.errors == 0, Errors: tc.errors}
}

type typeChecker struct {
	reporter diag.Reporter
	syms     *symbols.Table
	errors   int
}

func (tc *typeChecker) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	tc.errors++
	diag.ReportError(tc.reporter, code, sp, format, args...).Emit()
}

func (tc *typeChecker) stmts(list []ast.Stmt) {
	for i := range list {
		tc.stmt(&list[i])
	}
}

func (tc *typeChecker) stmt(s *ast.Stmt) {
	switch d := s.Data.(type) {
	case ast.AssignData:
		value := tc.expr(d.Value)
		sym, ok := tc.lookup(d.Name, d.NameSpan)
		if ok && value != symbols.Undefined && value != sym.Type {
			tc.errorf(diag.SemaTypeMismatch, s.Span, "cannot assign %s value to %s variable %q", value, sym.Type, d.Name)
		}
	case ast.ReadData:
		tc.lookup(d.Name, d.NameSpan)
	case ast.WriteData:
		tc.expr(d.Value)
	case ast.IfData:
		tc.condition(d.Cond, "if")
		tc.stmts(d.Then)
		tc.stmts(d.Else)
	case ast.WhileData:
		tc.condition(d.Cond, "while")
		tc.stmts(d.Body)
	default:
		tc.errorf(diag.SemaInfo, s.Span, "unsupported statement %v", s.Kind)
	}
}

func (tc *typeChecker) lookup(name string, sp source.Span) (symbols.Symbol, bool) {
	sym, ok := tc.syms.Lookup(name)
	if !ok {
		tc.errorf(diag.SemaUndefined, sp, "undefined variable %q", name)
	}
	return sym, ok
}

func (tc *typeChecker) condition(cond *ast.Expr, what string) {
	if t := tc.expr(cond); t != symbols.Undefined && t != symbols.Boolean {
		tc.errorf(diag.SemaConditionNotBool, cond.Span, "%s condition must be boolean, got %s", what, t)
	}
}

// expr returns Undefined for ill-typed subtrees so that one mistake
// does not cascade into errors on every enclosing node.
func (tc *typeChecker) expr(e *ast.Expr) symbols.Type {
	switch d := e.Data.(type) {
	case ast.NumberData:
		return symbols.Natural
	case ast.BoolData:
		return symbols.Boolean
	case ast.IdentData:
		sym, ok := tc.lookup(d.Name, e.Span)
		if !ok {
			return symbols.Undefined
		}
		return sym.Type
	case ast.NotData:
		t := tc.expr(d.Operand)
		if t == symbols.Undefined {
			return symbols.Undefined
		}
		if t != symbols.Boolean {
			tc.errorf(diag.SemaOperandType, d.Operand.Span, "operand of 'not' must be boolean, got %s", t)
			return symbols.Undefined
		}
		return symbols.Boolean
	case ast.BinaryData:
		return tc.binary(e, d)
	default:
		tc.errorf(diag.SemaInfo, e.Span, "unsupported expression %v", e.Kind)
		return symbols.Undefined
	}
}

func (tc *typeChecker) binary(e *ast.Expr, d ast.BinaryData) symbols.Type {
	left := tc.expr(d.Left)
	right := tc.expr(d.Right)
	sig, ok := binarySignatures[d.Op]
	if !ok {
		tc.errorf(diag.SemaInfo, e.Span, "unknown operator %q", d.Op)
		return symbols.Undefined
	}
	if left == symbols.Undefined || right == symbols.Undefined {
		return symbols.Undefined
	}
	if sig.operand == symbols.Undefined {
		if left != right {
			tc.errorf(diag.SemaTypeMismatch, e.Span, "operands of '%s' have different types: %s and %s", d.Op, left, right)
			return symbols.Undefined
		}
		return sig.result
	}
	bad := false
	for _, side := range []struct {
		t  symbols.Type
		sp source.Span
	}{{left, d.Left.Span}, {right, d.Right.Span}} {
		if side.t != sig.operand {
			tc.errorf(diag.SemaOperandType, side.sp, "operand of '%s' must be %s, got %s", d.Op, sig.operand, side.t)
			bad = true
		}
	}
	if bad {
		return symbols.Undefined
	}
	return sig.result
}
