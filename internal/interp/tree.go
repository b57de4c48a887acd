package interp

import (
	"context"
	"fmt"

	"whilec/internal/ast"
	"whilec/internal/symbols"
)

// RunProgram executes prog by walking its statements.
func RunProgram(ctx context.Context, prog *ast.Program, syms *symbols.Table, opts Options) error {
	m := newMachine(ctx, syms, opts)
	return m.stmts(prog.Body)
}

func (m *machine) stmts(list []ast.Stmt) error {
	for i := range list {
		if err := m.stmt(&list[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *machine) stmt(s *ast.Stmt) error {
	if err := m.step(); err != nil {
		return err
	}
	switch d := s.Data.(type) {
	case ast.AssignData:
		return m.assign(d.Name, d.Value)
	case ast.ReadData:
		return m.read(d.Name)
	case ast.WriteData:
		return m.write(d.Value)
	case ast.IfData:
		c, err := m.eval(d.Cond)
		if err != nil {
			return err
		}
		if c != 0 {
			return m.stmts(d.Then)
		}
		return m.stmts(d.Else)
	case ast.WhileData:
		for {
			c, err := m.eval(d.Cond)
			if err != nil {
				return err
			}
			if c == 0 {
				return nil
			}
			if err := m.stmts(d.Body); err != nil {
				return err
			}
			if err := m.step(); err != nil {
				return err
			}
		}
	default:
		panic(fmt.Errorf("interp: cannot execute %v statement", s.Kind))
	}
}
