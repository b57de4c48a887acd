// Package testkit holds structural checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"whilec/internal/ast"
	"whilec/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed program:
// 1) prog.Span is non-empty and within file content bounds
// 2) every statement and expression span is non-empty and points at sf
// 3) every node span is contained in its parent's span
func CheckSpanInvariants(prog *ast.Program, sf *source.File) error {
	if prog == nil || sf == nil {
		return fmt.Errorf("nil program or file")
	}
	if prog.Span.End <= prog.Span.Start {
		return fmt.Errorf("program span is empty: %v", prog.Span)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if prog.Span.End > lenContent {
		return fmt.Errorf("program span end beyond content: %d > %d", prog.Span.End, lenContent)
	}
	c := spanChecker{file: sf.ID}
	for i := range prog.Decls {
		if err := c.node(prog.Decls[i].Span, prog.Span, "decl "+prog.Decls[i].Name); err != nil {
			return err
		}
	}
	return c.stmts(prog.Body, prog.Span)
}

type spanChecker struct {
	file source.FileID
}

func (c spanChecker) node(sp, parent source.Span, what string) error {
	switch {
	case sp.End <= sp.Start:
		return fmt.Errorf("empty %s span: %v", what, sp)
	case sp.File != c.file:
		return fmt.Errorf("%s span points to different file id: got=%d want=%d", what, sp.File, c.file)
	case sp.Start < parent.Start || sp.End > parent.End:
		return fmt.Errorf("%s span %v escapes parent %v", what, sp, parent)
	}
	return nil
}

func (c spanChecker) stmts(list []ast.Stmt, parent source.Span) error {
	for i := range list {
		if err := c.stmt(&list[i], parent); err != nil {
			return err
		}
	}
	return nil
}

func (c spanChecker) stmt(s *ast.Stmt, parent source.Span) error {
	if err := c.node(s.Span, parent, s.Kind.String()); err != nil {
		return err
	}
	switch d := s.Data.(type) {
	case ast.AssignData:
		return c.expr(d.Value, s.Span)
	case ast.WriteData:
		return c.expr(d.Value, s.Span)
	case ast.IfData:
		if err := c.expr(d.Cond, s.Span); err != nil {
			return err
		}
		if err := c.stmts(d.Then, s.Span); err != nil {
			return err
		}
		return c.stmts(d.Else, s.Span)
	case ast.WhileData:
		if err := c.expr(d.Cond, s.Span); err != nil {
			return err
		}
		return c.stmts(d.Body, s.Span)
	}
	return nil
}

func (c spanChecker) expr(e *ast.Expr, parent source.Span) error {
	if e == nil {
		return fmt.Errorf("nil expression inside %v", parent)
	}
	if err := c.node(e.Span, parent, "expr "+e.Kind.String()); err != nil {
		return err
	}
	switch d := e.Data.(type) {
	case ast.BinaryData:
		if err := c.expr(d.Left, e.Span); err != nil {
			return err
		}
		return c.expr(d.Right, e.Span)
	case ast.NotData:
		return c.expr(d.Operand, e.Span)
	}
	return nil
}
