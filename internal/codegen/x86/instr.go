package x86

import (
	"fmt"
	"strings"

	"whilec/internal/ast"
	"whilec/internal/cfg"
	"whilec/internal/symbols"
)

// blockWriter emits the instructions of a single block. id is the block's
// label, which also serves as key for constant masking.
type blockWriter struct {
	e  *Emitter
	id uint32
	sb strings.Builder
}

func (w *blockWriter) line(s string) {
	w.sb.WriteString(s)
	w.sb.WriteByte('\n')
}

func (w *blockWriter) linef(format string, args ...any) {
	fmt.Fprintf(&w.sb, format, args...)
	w.sb.WriteByte('\n')
}

func (w *blockWriter) label(ref cfg.BlockRef) cfg.BlockID {
	return w.e.g.ID(ref)
}

func (w *blockWriter) instr(in *cfg.Instr) {
	switch in.Kind {
	case cfg.InstrExpr:
		w.expr(in.Expr)
	case cfg.InstrAssign:
		w.expr(in.Assign.Value)
		w.linef("mov [var_%s],%s", in.Assign.Name, register(w.e.syms.TypeOf(in.Assign.Name)))
	case cfg.InstrRead:
		ty := w.e.syms.TypeOf(in.Read.Name)
		w.linef("call read_%s", ty)
		w.linef("mov [var_%s],%s", in.Read.Name, register(ty))
	case cfg.InstrWrite:
		w.write(in.Write.Value)
	case cfg.InstrCAssign:
		w.cassign(&in.CAssign)
	case cfg.InstrSelector:
		w.expr(in.Selector.Cond)
		w.line("cmp al,1")
		w.linef("je bb_%d", w.label(in.Selector.True))
		w.linef("jmp bb_%d", w.label(in.Selector.False))
	case cfg.InstrJump:
		w.linef("jmp bb_%d", w.label(in.Jump.Target))
	case cfg.InstrSwitcher:
		w.switcher(&in.Switcher)
	default:
		panic(fmt.Errorf("x86: unexpected instruction %s in bb_%d", in.Kind, w.id))
	}
}

func (w *blockWriter) write(value *ast.Expr) {
	ty := typeOf(w.e.syms, value)
	w.expr(value)
	if ty == symbols.Boolean {
		w.line("and eax,1")
	}
	w.line("push eax")
	w.linef("call write_%s", ty)
	w.line("add esp,4")
}

func (w *blockWriter) cassign(c *cfg.CAssignInstr) {
	w.expr(c.Cond)
	if !w.e.opts.MaskConstants {
		w.line("cmp al,1")
		w.linef("mov eax,%d", c.FalseValue)
		w.linef("mov ebx, %d", c.TrueValue)
		w.line("cmove eax, ebx")
		w.linef("mov [var_%s], eax", c.Var)
		return
	}
	// условие переживает декодирование в dl
	w.line("mov edx,eax")
	w.masked(c.FalseValue)
	w.line("push eax")
	w.masked(c.TrueValue)
	w.line("mov ebx,eax")
	w.line("pop eax")
	w.line("cmp dl,1")
	w.line("cmove eax, ebx")
	w.linef("mov [var_%s], eax", c.Var)
}

// switcher is a linear compare chain; the last case falls through to nothing.
func (w *blockWriter) switcher(s *cfg.SwitcherInstr) {
	if len(s.Cases) == 0 {
		panic(fmt.Errorf("x86: switcher on %s in bb_%d has no cases", s.Var, w.id))
	}
	w.linef("mov eax,[var_%s]", s.Var)
	for _, c := range s.Cases {
		w.linef("mov ecx, %d", c.Value)
		w.line("cmp eax,ecx")
		w.linef("je bb_%d", w.label(c.Target))
	}
}

func register(ty symbols.Type) string {
	if ty == symbols.Boolean {
		return "al"
	}
	return "eax"
}

// namesOf lists the variables referenced by the instructions of bb.
func namesOf(bb *cfg.Block) []string {
	var names []string
	var walk func(*ast.Expr)
	walk = func(e *ast.Expr) {
		if e == nil {
			return
		}
		switch d := e.Data.(type) {
		case ast.IdentData:
			names = append(names, d.Name)
		case ast.BinaryData:
			walk(d.Left)
			walk(d.Right)
		case ast.NotData:
			walk(d.Operand)
		}
	}
	for i := range bb.Instrs {
		in := &bb.Instrs[i]
		switch in.Kind {
		case cfg.InstrExpr:
			walk(in.Expr)
		case cfg.InstrAssign:
			names = append(names, in.Assign.Name)
			walk(in.Assign.Value)
		case cfg.InstrRead:
			names = append(names, in.Read.Name)
		case cfg.InstrWrite:
			walk(in.Write.Value)
		case cfg.InstrCAssign:
			names = append(names, in.CAssign.Var)
			walk(in.CAssign.Cond)
		case cfg.InstrSelector:
			walk(in.Selector.Cond)
		case cfg.InstrSwitcher:
			names = append(names, in.Switcher.Var)
		}
	}
	return names
}
